package navigation

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/delivery/http/controllers/middleware"
	"TUReviews/internal/i18n"
	"TUReviews/internal/service/navigation"
	"TUReviews/pkg/logger"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CourseChecker interface {
	Exists(ctx context.Context, id int64) error
}

type Handler struct {
	log     logger.Log
	courses CourseChecker
}

func NewHandler(log logger.Log, courses CourseChecker) *Handler {
	return &Handler{
		log:     log,
		courses: courses,
	}
}

type transitionRequest struct {
	State *navigation.State `json:"state"`
	Event navigation.Event  `json:"event"`
}

// Transition moves the client from the posted state along the posted event.
// A missing state starts from the home view.
func (h *Handler) Transition(c *gin.Context) {
	var input transitionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from := navigation.Initial()
	if input.State != nil {
		from = *input.State
	}

	next, err := navigation.Transition(from, input.Event)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": from})
		return
	}

	if input.Event.Type == navigation.EventOpenCourse {
		if err := h.courses.Exists(c.Request.Context(), next.CourseID); err != nil {
			if errors.Is(err, app_errors.ErrCourseNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": middleware.T(c, i18n.CourseNotFound), "state": from})
				return
			}
			h.log.ErrorErr("navigation: course lookup failed", err, "course_id", next.CourseID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": middleware.T(c, i18n.LoadFailed), "state": from})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"state": next})
}
