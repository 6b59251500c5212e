package course

import (
	"TUReviews/internal/delivery/http/controllers/middleware"
	"TUReviews/internal/i18n"
	"TUReviews/internal/models"
	"TUReviews/pkg/logger"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ManagementService interface {
	AddCourse(ctx context.Context, in models.NewCourse) (models.Course, error)
}

type ManagementHandler struct {
	log     logger.Log
	service ManagementService
}

func NewManagementHandler(log logger.Log, s ManagementService) *ManagementHandler {
	return &ManagementHandler{
		log:     log,
		service: s,
	}
}

type addCourseRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Faculty   string `json:"faculty"`
	Professor string `json:"professor"`
}

func (h *ManagementHandler) AddCourse(c *gin.Context) {
	var input addCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": middleware.T(c, i18n.EmptyCourse)})
		return
	}
	course, err := h.service.AddCourse(c.Request.Context(), models.NewCourse{
		Name:      input.Name,
		Code:      input.Code,
		Faculty:   input.Faculty,
		Professor: input.Professor,
	})
	if err != nil {
		respondError(c, h.log, err, i18n.AddCourseFailed)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": middleware.T(c, i18n.CourseAdded),
		"course":  course,
	})
}
