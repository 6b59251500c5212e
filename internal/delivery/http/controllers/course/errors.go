package course

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/delivery/http/controllers/middleware"
	"TUReviews/internal/i18n"
	"TUReviews/pkg/logger"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var knownErrors = []struct {
	err    error
	status int
	key    i18n.Key
}{
	{app_errors.ErrToxicReview, http.StatusUnprocessableEntity, i18n.ReviewRejected},
	{app_errors.ErrInvalidRating, http.StatusBadRequest, i18n.InvalidRating},
	{app_errors.ErrEmptyReview, http.StatusBadRequest, i18n.EmptyReview},
	{app_errors.ErrEmptyCourseField, http.StatusBadRequest, i18n.EmptyCourse},
	{app_errors.ErrCourseNotFound, http.StatusNotFound, i18n.CourseNotFound},
	{app_errors.ErrReviewNotFound, http.StatusNotFound, i18n.ReviewNotFound},
}

// respondError writes the localized notice for err. Errors the client cannot
// act on become a 500 with the fallback notice.
func respondError(c *gin.Context, log logger.Log, err error, fallback i18n.Key) {
	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			c.JSON(k.status, gin.H{"error": middleware.T(c, k.key)})
			return
		}
	}
	_ = c.Error(err)
	log.ErrorErr("request failed", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": middleware.T(c, fallback)})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
