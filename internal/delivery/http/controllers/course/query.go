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

type QueryService interface {
	Courses(ctx context.Context) ([]models.CourseCard, error)
	Search(ctx context.Context, query string) ([]models.CourseCard, error)
	Profile(ctx context.Context, id int64) (models.CourseProfile, error)
	Home(ctx context.Context) (models.HomePage, error)
}

type QueryHandler struct {
	log     logger.Log
	service QueryService
}

func NewQueryHandler(log logger.Log, s QueryService) *QueryHandler {
	return &QueryHandler{
		log:     log,
		service: s,
	}
}

// noRating fills in the localized placeholder for unrated courses.
func noRating(c *gin.Context, cards []models.CourseCard) {
	for i := range cards {
		if !cards[i].Rated {
			cards[i].AvgRating = middleware.T(c, i18n.NoRating)
		}
	}
}

func (h *QueryHandler) ListCourses(c *gin.Context) {
	var (
		cards []models.CourseCard
		err   error
	)
	if q := c.Query("query"); q != "" {
		cards, err = h.service.Search(c.Request.Context(), q)
	} else {
		cards, err = h.service.Courses(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.log, err, i18n.LoadFailed)
		return
	}
	noRating(c, cards)
	c.JSON(http.StatusOK, gin.H{
		"total":   len(cards),
		"courses": cards,
	})
}

func (h *QueryHandler) CourseProfile(c *gin.Context) {
	id, ok := paramID(c, "course_id")
	if !ok {
		return
	}
	profile, err := h.service.Profile(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, i18n.LoadFailed)
		return
	}
	cards := []models.CourseCard{profile.CourseCard}
	noRating(c, cards)
	profile.CourseCard = cards[0]
	c.JSON(http.StatusOK, profile)
}

func (h *QueryHandler) Home(c *gin.Context) {
	home, err := h.service.Home(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, i18n.LoadFailed)
		return
	}
	noRating(c, home.Popular)
	c.JSON(http.StatusOK, home)
}
