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

type ReviewService interface {
	SubmitReview(ctx context.Context, in models.NewReview) (models.Review, error)
	MarkHelpful(ctx context.Context, reviewID int64) (models.Review, error)
	Report(ctx context.Context, reviewID int64) (models.Review, error)
}

type ReviewHandler struct {
	log     logger.Log
	service ReviewService
}

func NewReviewHandler(log logger.Log, s ReviewService) *ReviewHandler {
	return &ReviewHandler{
		log:     log,
		service: s,
	}
}

type submitReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	courseID, ok := paramID(c, "course_id")
	if !ok {
		return
	}
	var input submitReviewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Debug("malformed review body", logger.Err(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": middleware.T(c, i18n.InvalidRating)})
		return
	}

	review, err := h.service.SubmitReview(c.Request.Context(), models.NewReview{
		CourseID: courseID,
		Rating:   input.Rating,
		Text:     input.Text,
	})
	if err != nil {
		respondError(c, h.log, err, i18n.SubmitFailed)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": middleware.T(c, i18n.ReviewSubmitted),
		"review":  review,
	})
}

func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	h.increment(c, h.service.MarkHelpful, i18n.VoteThanks, i18n.VoteFailed)
}

func (h *ReviewHandler) Report(c *gin.Context) {
	h.increment(c, h.service.Report, i18n.ReportReceived, i18n.ReportFailed)
}

func (h *ReviewHandler) increment(c *gin.Context, op func(context.Context, int64) (models.Review, error), done, failed i18n.Key) {
	reviewID, ok := paramID(c, "review_id")
	if !ok {
		return
	}
	review, err := op(c.Request.Context(), reviewID)
	if err != nil {
		respondError(c, h.log, err, failed)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": middleware.T(c, done),
		"review":  review,
	})
}
