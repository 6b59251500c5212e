package postgres

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewPostgres struct {
	db *pgxpool.Pool
}

func NewReviewPostgres(db *pgxpool.Pool) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

const reviewColumns = `id, course_id, rating, text, helpful_votes, reported_times, created_at`

func (r *ReviewPostgres) CreateReview(ctx context.Context, in models.NewReview) (models.Review, error) {
	query := `
		INSERT INTO reviews (course_id, rating, text)
		VALUES ($1, $2, $3)
		RETURNING ` + reviewColumns
	review, err := scanReview(r.db.QueryRow(ctx, query, in.CourseID, in.Rating, in.Text))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return models.Review{}, app_errors.ErrCourseNotFound
		}
		return models.Review{}, fmt.Errorf("insert review: %w", err)
	}
	return review, nil
}

func (r *ReviewPostgres) IncrementHelpful(ctx context.Context, reviewID int64) (models.Review, error) {
	return r.increment(ctx, `UPDATE reviews SET helpful_votes = helpful_votes + 1 WHERE id = $1 RETURNING `+reviewColumns, reviewID)
}

func (r *ReviewPostgres) IncrementReported(ctx context.Context, reviewID int64) (models.Review, error) {
	return r.increment(ctx, `UPDATE reviews SET reported_times = reported_times + 1 WHERE id = $1 RETURNING `+reviewColumns, reviewID)
}

// increment runs a single-row counter update; the database serializes
// concurrent updates of the same row.
func (r *ReviewPostgres) increment(ctx context.Context, query string, reviewID int64) (models.Review, error) {
	review, err := scanReview(r.db.QueryRow(ctx, query, reviewID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Review{}, app_errors.ErrReviewNotFound
		}
		return models.Review{}, err
	}
	return review, nil
}

func scanReview(row pgx.Row) (models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.CourseID, &rv.Rating, &rv.Text, &rv.HelpfulVotes, &rv.ReportedTimes, &rv.CreatedAt)
	return rv, err
}

func collectReview(row pgx.CollectableRow) (models.Review, error) {
	return scanReview(row)
}
