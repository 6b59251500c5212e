package postgres

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type courseDB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CoursePostgres struct {
	db courseDB
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

const courseColumns = `id, name, code, faculty, professor, created_at`

// Reads that span courses and reviews see one consistent snapshot.
var snapshotTx = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// Courses loads every course together with all of its reviews, hidden ones included.
func (r *CoursePostgres) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := pgx.BeginTxFunc(ctx, r.db, snapshotTx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id`)
		if err != nil {
			return fmt.Errorf("select courses: %w", err)
		}
		courses, err = pgx.CollectRows(rows, collectCourse)
		if err != nil {
			return fmt.Errorf("scan courses: %w", err)
		}

		rows, err = tx.Query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id`)
		if err != nil {
			return fmt.Errorf("select reviews: %w", err)
		}
		reviews, err := pgx.CollectRows(rows, collectReview)
		if err != nil {
			return fmt.Errorf("scan reviews: %w", err)
		}

		byCourse := make(map[int64][]models.Review, len(courses))
		for _, rv := range reviews {
			byCourse[rv.CourseID] = append(byCourse[rv.CourseID], rv)
		}
		for i := range courses {
			courses[i].Reviews = byCourse[courses[i].ID]
			if courses[i].Reviews == nil {
				courses[i].Reviews = []models.Review{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CoursePostgres) Course(ctx context.Context, id int64) (models.Course, error) {
	var course models.Course
	err := pgx.BeginTxFunc(ctx, r.db, snapshotTx, func(tx pgx.Tx) error {
		var err error
		course, err = scanCourse(tx.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return app_errors.ErrCourseNotFound
			}
			return err
		}

		rows, err := tx.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE course_id = $1 ORDER BY id`, id)
		if err != nil {
			return fmt.Errorf("select reviews: %w", err)
		}
		course.Reviews, err = pgx.CollectRows(rows, collectReview)
		if err != nil {
			return fmt.Errorf("scan reviews: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *CoursePostgres) CreateCourse(ctx context.Context, in models.NewCourse) (models.Course, error) {
	query := `
		INSERT INTO courses (name, code, faculty, professor)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + courseColumns
	course, err := scanCourse(r.db.QueryRow(ctx, query, in.Name, in.Code, in.Faculty, in.Professor))
	if err != nil {
		return models.Course{}, fmt.Errorf("insert course: %w", err)
	}
	course.Reviews = []models.Review{}
	return course, nil
}

func scanCourse(row pgx.Row) (models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Faculty, &c.Professor, &c.CreatedAt)
	return c, err
}

func collectCourse(row pgx.CollectableRow) (models.Course, error) {
	return scanCourse(row)
}
