package review

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/models"
	"TUReviews/internal/service/moderation"
	"TUReviews/pkg/logger"
	"context"
	"strings"
)

type reviewRepo interface {
	CreateReview(ctx context.Context, in models.NewReview) (models.Review, error)
	IncrementHelpful(ctx context.Context, reviewID int64) (models.Review, error)
	IncrementReported(ctx context.Context, reviewID int64) (models.Review, error)
}

type gate interface {
	Check(ctx context.Context, text string) moderation.Verdict
}

type ReviewService struct {
	log        logger.Log
	reviewRepo reviewRepo
	gate       gate
}

func NewReviewService(log logger.Log, r reviewRepo, g gate) *ReviewService {
	return &ReviewService{
		log:        log,
		reviewRepo: r,
		gate:       g,
	}
}

// SubmitReview validates the review, runs it through the moderation gate once
// and stores it only when the gate accepts it.
func (s *ReviewService) SubmitReview(ctx context.Context, in models.NewReview) (models.Review, error) {
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return models.Review{}, app_errors.ErrInvalidRating
	}
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return models.Review{}, app_errors.ErrEmptyReview
	}

	verdict := s.gate.Check(ctx, in.Text)
	if !verdict.Accepted() {
		return models.Review{}, app_errors.ErrToxicReview
	}

	review, err := s.reviewRepo.CreateReview(ctx, in)
	if err != nil {
		return models.Review{}, err
	}
	s.log.Info("review submitted",
		"review_id", review.ID,
		"course_id", review.CourseID,
		"moderation_failed_open", verdict.FailedOpen,
	)
	return review, nil
}

func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID int64) (models.Review, error) {
	return s.reviewRepo.IncrementHelpful(ctx, reviewID)
}

// Report counts one more report against the review. Hiding follows from the
// count on the next read.
func (s *ReviewService) Report(ctx context.Context, reviewID int64) (models.Review, error) {
	r, err := s.reviewRepo.IncrementReported(ctx, reviewID)
	if err != nil {
		return models.Review{}, err
	}
	s.log.Info("review reported", "review_id", r.ID, "reported_times", r.ReportedTimes)
	return r, nil
}
