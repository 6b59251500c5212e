package query

import (
	"TUReviews/internal/models"
	"TUReviews/internal/service/course/rating"
	"TUReviews/internal/service/moderation"
	"TUReviews/pkg/logger"
	"context"
	"sort"
	"strings"
)

const (
	homeCourses = 3
	homeReviews = 3
	searchSize  = 100
)

type courseRepo interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Course(ctx context.Context, id int64) (models.Course, error)
}

type searchRepo interface {
	Search(ctx context.Context, query string, size int) ([]int64, error)
}

type CourseQueryService struct {
	log         logger.Log
	courseRepo  courseRepo
	searchRepo  searchRepo
	visibility  moderation.Visibility
	visibleOnly bool
}

// NewCourseQueryService builds the read side. search may be nil, in which case
// queries are matched against the course list in memory. With visibleOnly the
// displayed rating averages visible reviews only.
func NewCourseQueryService(log logger.Log, c courseRepo, search searchRepo, v moderation.Visibility, visibleOnly bool) *CourseQueryService {
	return &CourseQueryService{
		log:         log,
		courseRepo:  c,
		searchRepo:  search,
		visibility:  v,
		visibleOnly: visibleOnly,
	}
}

func (s *CourseQueryService) Courses(ctx context.Context) ([]models.CourseCard, error) {
	courses, err := s.courseRepo.Courses(ctx)
	if err != nil {
		return nil, err
	}
	return s.cards(courses), nil
}

// Search matches query against course name, code and professor. A blank query
// returns every course.
func (s *CourseQueryService) Search(ctx context.Context, query string) ([]models.CourseCard, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Courses(ctx)
	}
	courses, err := s.courseRepo.Courses(ctx)
	if err != nil {
		return nil, err
	}

	if s.searchRepo != nil {
		ids, err := s.searchRepo.Search(ctx, query, searchSize)
		switch {
		case err != nil:
			s.log.Warn("course search index unavailable, matching in memory", logger.Err(err), "query", query)
		default:
			// An empty or stale index must not hide courses the store has.
			if found := pick(courses, ids); len(found) > 0 {
				return s.cards(found), nil
			}
			s.log.Debug("course search index returned nothing, matching in memory", "query", query)
		}
	}
	return s.cards(match(courses, query)), nil
}

func (s *CourseQueryService) Profile(ctx context.Context, id int64) (models.CourseProfile, error) {
	course, err := s.courseRepo.Course(ctx, id)
	if err != nil {
		return models.CourseProfile{}, err
	}
	visible := s.visibility.Filter(course.Reviews)
	sort.SliceStable(visible, func(i, j int) bool { return newer(visible[i], visible[j]) })

	return models.CourseProfile{
		CourseCard: s.card(course),
		Reviews:    visible,
	}, nil
}

func (s *CourseQueryService) Exists(ctx context.Context, id int64) error {
	_, err := s.courseRepo.Course(ctx, id)
	return err
}

// Home returns the most reviewed courses and the newest visible reviews.
func (s *CourseQueryService) Home(ctx context.Context) (models.HomePage, error) {
	courses, err := s.courseRepo.Courses(ctx)
	if err != nil {
		return models.HomePage{}, err
	}

	popular := append([]models.Course(nil), courses...)
	sort.SliceStable(popular, func(i, j int) bool {
		if len(popular[i].Reviews) != len(popular[j].Reviews) {
			return len(popular[i].Reviews) > len(popular[j].Reviews)
		}
		return popular[i].ID < popular[j].ID
	})
	if len(popular) > homeCourses {
		popular = popular[:homeCourses]
	}

	latest := make([]models.LatestReview, 0)
	for _, c := range courses {
		for _, r := range s.visibility.Filter(c.Reviews) {
			latest = append(latest, models.LatestReview{Review: r, CourseName: c.Name})
		}
	}
	sort.SliceStable(latest, func(i, j int) bool { return newer(latest[i].Review, latest[j].Review) })
	if len(latest) > homeReviews {
		latest = latest[:homeReviews]
	}

	return models.HomePage{Popular: s.cards(popular), Latest: latest}, nil
}

func (s *CourseQueryService) cards(courses []models.Course) []models.CourseCard {
	out := make([]models.CourseCard, 0, len(courses))
	for _, c := range courses {
		out = append(out, s.card(c))
	}
	return out
}

func (s *CourseQueryService) card(c models.Course) models.CourseCard {
	visible := s.visibility.Filter(c.Reviews)
	rated := c.Reviews
	if s.visibleOnly {
		rated = visible
	}
	score := rating.Average(rated)
	return models.CourseCard{
		ID:            c.ID,
		Name:          c.Name,
		Code:          c.Code,
		Faculty:       c.Faculty,
		Professor:     c.Professor,
		AvgRating:     score.String(),
		Rated:         score.Rated,
		ReviewCount:   len(c.Reviews),
		VisibleReview: len(visible),
	}
}

func newer(a, b models.Review) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func match(courses []models.Course, query string) []models.Course {
	q := strings.ToLower(query)
	out := make([]models.Course, 0)
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Code), q) ||
			strings.Contains(strings.ToLower(c.Professor), q) {
			out = append(out, c)
		}
	}
	return out
}

// pick keeps the order of ids; ids unknown to the store are skipped.
func pick(courses []models.Course, ids []int64) []models.Course {
	byID := make(map[int64]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	out := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}
