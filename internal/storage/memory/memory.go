package memory

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/models"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Storage keeps courses, reviews, users and refresh tokens in process memory.
// It backs the "memory" storage mode and the service tests.
type Storage struct {
	mu sync.RWMutex

	now func() time.Time

	courses      map[int64]*models.Course
	reviews      map[int64]*models.Review
	nextCourseID int64
	nextReviewID int64

	users  map[uuid.UUID]models.User
	tokens map[uuid.UUID][]models.RefreshToken
}

func New() *Storage {
	return &Storage{
		now:     func() time.Time { return time.Now().UTC() },
		courses: make(map[int64]*models.Course),
		reviews: make(map[int64]*models.Review),
		users:   make(map[uuid.UUID]models.User),
		tokens:  make(map[uuid.UUID][]models.RefreshToken),
	}
}

// WithClock replaces the time source used for created_at stamps.
func (s *Storage) WithClock(now func() time.Time) *Storage {
	s.now = now
	return s
}

func (s *Storage) Courses(_ context.Context) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, s.snapshot(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Storage) Course(_ context.Context, id int64) (models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	if !ok {
		return models.Course{}, app_errors.ErrCourseNotFound
	}
	return s.snapshot(c), nil
}

func (s *Storage) CreateCourse(_ context.Context, in models.NewCourse) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCourseID++
	c := &models.Course{
		ID:        s.nextCourseID,
		Name:      in.Name,
		Code:      in.Code,
		Faculty:   in.Faculty,
		Professor: in.Professor,
		CreatedAt: s.now(),
	}
	s.courses[c.ID] = c
	return s.snapshot(c), nil
}

func (s *Storage) CreateReview(_ context.Context, in models.NewReview) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[in.CourseID]
	if !ok {
		return models.Review{}, app_errors.ErrCourseNotFound
	}
	s.nextReviewID++
	r := &models.Review{
		ID:        s.nextReviewID,
		CourseID:  in.CourseID,
		Rating:    in.Rating,
		Text:      in.Text,
		CreatedAt: s.now(),
	}
	s.reviews[r.ID] = r
	c.Reviews = append(c.Reviews, models.Review{ID: r.ID})
	return *r, nil
}

func (s *Storage) IncrementHelpful(_ context.Context, reviewID int64) (models.Review, error) {
	return s.increment(reviewID, func(r *models.Review) { r.HelpfulVotes++ })
}

func (s *Storage) IncrementReported(_ context.Context, reviewID int64) (models.Review, error) {
	return s.increment(reviewID, func(r *models.Review) { r.ReportedTimes++ })
}

func (s *Storage) increment(reviewID int64, apply func(r *models.Review)) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[reviewID]
	if !ok {
		return models.Review{}, app_errors.ErrReviewNotFound
	}
	apply(r)
	return *r, nil
}

// snapshot copies c with its current reviews; c.Reviews only tracks ids.
// Callers hold the lock.
func (s *Storage) snapshot(c *models.Course) models.Course {
	out := *c
	out.Reviews = make([]models.Review, 0, len(c.Reviews))
	for _, ref := range c.Reviews {
		out.Reviews = append(out.Reviews, *s.reviews[ref.ID])
	}
	return out
}

func (s *Storage) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, app_errors.ErrUserExists
		}
	}
	user.ID = uuid.New()
	user.Roles = append([]string(nil), user.Roles...)
	s.users[user.ID] = user
	return &user, nil
}

func (s *Storage) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return &u, nil
}

func (s *Storage) UserByName(_ context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == name {
			return &u, nil
		}
	}
	return nil, app_errors.ErrUserNotFound
}

func (s *Storage) Create(_ context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if expiresAt == nil {
		return nil, app_errors.ErrTokenNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rt := models.RefreshToken{
		UserID:      userID,
		HashedToken: hashToken(token),
		CreatedAt:   s.now(),
		ExpiresAt:   expiresAt.UTC(),
	}
	s.tokens[userID] = append(s.tokens[userID], rt)
	return &rt, nil
}

func (s *Storage) ByPrimaryKey(_ context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hashed := hashToken(token)
	for _, rt := range s.tokens[userID] {
		if rt.HashedToken == hashed {
			return &rt, nil
		}
	}
	return nil, app_errors.ErrTokenNotFound
}

func (s *Storage) DeleteUserTokens(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, userID)
	return nil
}

func hashToken(token *jwt.Token) string {
	sum := sha256.Sum256([]byte(token.Raw))
	return base64.StdEncoding.EncodeToString(sum[:])
}
