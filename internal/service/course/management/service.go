package management

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/models"
	"TUReviews/pkg/logger"
	"context"
	"strings"
)

type courseRepo interface {
	CreateCourse(ctx context.Context, in models.NewCourse) (models.Course, error)
}

type searchIndex interface {
	Index(ctx context.Context, course models.Course) error
}

type CourseManagementService struct {
	log        logger.Log
	courseRepo courseRepo
	index      searchIndex
}

// index may be nil when no search cluster is configured.
func NewCourseManagementService(log logger.Log, c courseRepo, index searchIndex) *CourseManagementService {
	return &CourseManagementService{
		log:        log,
		courseRepo: c,
		index:      index,
	}
}

func (s *CourseManagementService) AddCourse(ctx context.Context, in models.NewCourse) (models.Course, error) {
	in = models.NewCourse{
		Name:      strings.TrimSpace(in.Name),
		Code:      strings.TrimSpace(in.Code),
		Faculty:   strings.TrimSpace(in.Faculty),
		Professor: strings.TrimSpace(in.Professor),
	}
	if in.Name == "" || in.Code == "" {
		return models.Course{}, app_errors.ErrEmptyCourseField
	}

	course, err := s.courseRepo.CreateCourse(ctx, in)
	if err != nil {
		return models.Course{}, err
	}
	s.log.Info("course added", "course_id", course.ID, "code", course.Code)

	if s.index != nil {
		if err := s.index.Index(ctx, course); err != nil {
			s.log.ErrorErr("failed to index course", err, "course_id", course.ID)
		}
	}
	return course, nil
}
