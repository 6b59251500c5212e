package management

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/models"
	"TUReviews/internal/storage/memory"
	"TUReviews/pkg/logger"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	indexed []models.Course
	err     error
}

func (f *fakeIndex) Index(_ context.Context, c models.Course) error {
	f.indexed = append(f.indexed, c)
	return f.err
}

func TestAddCourse(t *testing.T) {
	store := memory.New()
	idx := &fakeIndex{}
	svc := NewCourseManagementService(logger.Discard(), store, idx)

	c, err := svc.AddCourse(context.Background(), models.NewCourse{Name: " Calculus 1 ", Code: "MA111", Professor: "Dr. Somchai"})

	require.NoError(t, err)
	assert.Equal(t, "Calculus 1", c.Name)
	assert.Equal(t, "", c.Faculty)
	require.Len(t, idx.indexed, 1)
	assert.Equal(t, c.ID, idx.indexed[0].ID)

	courses, _ := store.Courses(context.Background())
	assert.Len(t, courses, 1)
}

func TestAddCourseRequiresNameAndCode(t *testing.T) {
	store := memory.New()
	svc := NewCourseManagementService(logger.Discard(), store, nil)

	_, err := svc.AddCourse(context.Background(), models.NewCourse{Name: "Calculus 1", Code: "  "})
	assert.ErrorIs(t, err, app_errors.ErrEmptyCourseField)
	_, err = svc.AddCourse(context.Background(), models.NewCourse{Code: "MA111"})
	assert.ErrorIs(t, err, app_errors.ErrEmptyCourseField)

	courses, _ := store.Courses(context.Background())
	assert.Empty(t, courses)
}

func TestAddCourseIndexFailureIsNotFatal(t *testing.T) {
	svc := NewCourseManagementService(logger.Discard(), memory.New(), &fakeIndex{err: errors.New("cluster down")})

	c, err := svc.AddCourse(context.Background(), models.NewCourse{Name: "Physics", Code: "SC133"})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
}
