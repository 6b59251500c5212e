package query

import (
	"TUReviews/internal/app_errors"
	"TUReviews/internal/models"
	"TUReviews/internal/service/moderation"
	"TUReviews/internal/storage/memory"
	"TUReviews/pkg/logger"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	ids []int64
	err error
}

func (f fakeSearch) Search(context.Context, string, int) ([]int64, error) {
	return f.ids, f.err
}

// seed builds three courses; course 1 has four reviews, one of them hidden.
func seed(t *testing.T) *memory.Storage {
	t.Helper()
	ctx := context.Background()
	clock := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store := memory.New().WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	calc, _ := store.CreateCourse(ctx, models.NewCourse{Name: "Calculus 1", Code: "MA111", Professor: "Dr. Somchai"})
	phys, _ := store.CreateCourse(ctx, models.NewCourse{Name: "Physics", Code: "SC133", Professor: "Dr. Malee"})
	_, _ = store.CreateCourse(ctx, models.NewCourse{Name: "Thai Literature", Code: "TH101", Professor: "Ajarn Nok"})

	for _, rating := range []int{4, 5, 3} {
		_, err := store.CreateReview(ctx, models.NewReview{CourseID: calc.ID, Rating: rating, Text: "calc"})
		require.NoError(t, err)
	}
	hidden, _ := store.CreateReview(ctx, models.NewReview{CourseID: calc.ID, Rating: 1, Text: "spam"})
	for i := 0; i < 5; i++ {
		_, _ = store.IncrementReported(ctx, hidden.ID)
	}
	_, _ = store.CreateReview(ctx, models.NewReview{CourseID: phys.ID, Rating: 2, Text: "phys"})
	return store
}

func newService(store *memory.Storage, search searchRepo, visibleOnly bool) *CourseQueryService {
	return NewCourseQueryService(logger.Discard(), store, search, moderation.NewVisibility(5), visibleOnly)
}

func TestCourses(t *testing.T) {
	cards, err := newService(seed(t), nil, false).Courses(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, "3.3", cards[0].AvgRating)
	assert.Equal(t, 4, cards[0].ReviewCount)
	assert.Equal(t, 3, cards[0].VisibleReview)
	assert.Equal(t, "2.0", cards[1].AvgRating)
	assert.False(t, cards[2].Rated)
	assert.Equal(t, "", cards[2].AvgRating)
}

func TestCoursesVisibleOnly(t *testing.T) {
	cards, err := newService(seed(t), nil, true).Courses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4.0", cards[0].AvgRating)
}

func TestSearchInMemory(t *testing.T) {
	svc := newService(seed(t), nil, false)
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"calc", []string{"MA111"}},
		{"sc1", []string{"SC133"}},
		{"DR.", []string{"MA111", "SC133"}},
		{"nok", []string{"TH101"}},
		{"  ", []string{"MA111", "SC133", "TH101"}},
		{"chemistry", []string{}},
	}
	for _, tt := range tests {
		cards, err := svc.Search(ctx, tt.query)
		require.NoError(t, err)
		codes := make([]string, 0, len(cards))
		for _, c := range cards {
			codes = append(codes, c.Code)
		}
		assert.Equal(t, tt.want, codes, tt.query)
	}
}

func TestSearchUsesIndex(t *testing.T) {
	svc := newService(seed(t), fakeSearch{ids: []int64{3, 1, 77}}, false)

	cards, err := svc.Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, int64(3), cards[0].ID)
	assert.Equal(t, int64(1), cards[1].ID)
}

func TestSearchFallsBackWhenIndexFails(t *testing.T) {
	svc := newService(seed(t), fakeSearch{err: errors.New("no such index")}, false)

	cards, err := svc.Search(context.Background(), "physics")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "SC133", cards[0].Code)
}

func TestSearchFallsBackWhenIndexFindsNothing(t *testing.T) {
	for name, ids := range map[string][]int64{
		"no hits":    nil,
		"stale hits": {404},
	} {
		t.Run(name, func(t *testing.T) {
			svc := newService(seed(t), fakeSearch{ids: ids}, false)

			cards, err := svc.Search(context.Background(), "physics")
			require.NoError(t, err)
			require.Len(t, cards, 1)
			assert.Equal(t, "SC133", cards[0].Code)
		})
	}
}

func TestProfile(t *testing.T) {
	p, err := newService(seed(t), nil, false).Profile(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Calculus 1", p.Name)
	assert.Equal(t, 4, p.ReviewCount)
	require.Len(t, p.Reviews, 3)
	assert.Equal(t, 3, p.Reviews[0].Rating)
	assert.Equal(t, 5, p.Reviews[1].Rating)
	assert.Equal(t, 4, p.Reviews[2].Rating)
	for _, r := range p.Reviews {
		assert.Less(t, r.ReportedTimes, 5)
	}
}

func TestProfileNotFound(t *testing.T) {
	svc := newService(seed(t), nil, false)
	_, err := svc.Profile(context.Background(), 42)
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
	assert.ErrorIs(t, svc.Exists(context.Background(), 42), app_errors.ErrCourseNotFound)
	assert.NoError(t, svc.Exists(context.Background(), 1))
}

func TestHome(t *testing.T) {
	home, err := newService(seed(t), nil, false).Home(context.Background())
	require.NoError(t, err)

	require.Len(t, home.Popular, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{home.Popular[0].ID, home.Popular[1].ID, home.Popular[2].ID})

	require.Len(t, home.Latest, 3)
	assert.Equal(t, "Physics", home.Latest[0].CourseName)
	assert.Equal(t, "phys", home.Latest[0].Text)
	assert.Equal(t, 3, home.Latest[1].Rating)
	assert.Equal(t, 5, home.Latest[2].Rating)
}

func TestHomeEmpty(t *testing.T) {
	home, err := newService(memory.New(), nil, false).Home(context.Background())
	require.NoError(t, err)
	assert.Empty(t, home.Popular)
	assert.Empty(t, home.Latest)
}
