package moderation

import (
	"TUReviews/internal/models"
	"TUReviews/pkg/logger"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	score     float64
	err       error
	calls     int
	text      string
	languages []string
}

func (s *stubClassifier) Toxicity(_ context.Context, text string, languages []string) (float64, error) {
	s.calls++
	s.text = text
	s.languages = languages
	return s.score, s.err
}

func TestGateThreshold(t *testing.T) {
	tests := []struct {
		score float64
		want  Decision
	}{
		{0, DecisionAccepted},
		{0.5, DecisionAccepted},
		{0.7, DecisionAccepted},
		{0.70001, DecisionRejected},
		{0.71, DecisionRejected},
		{1, DecisionRejected},
	}
	for _, tt := range tests {
		c := &stubClassifier{score: tt.score}
		g := NewGate(logger.Discard(), c, []string{"th", "en"}, DefaultToxicityThreshold)

		v := g.Check(context.Background(), "some review")

		assert.Equal(t, tt.want, v.Decision, "score %v", tt.score)
		assert.Equal(t, tt.score, v.Score)
		assert.False(t, v.FailedOpen)
		assert.Equal(t, 1, c.calls)
	}
}

func TestGatePassesLanguages(t *testing.T) {
	c := &stubClassifier{score: 0.1}
	g := NewGate(logger.Discard(), c, []string{"th", "en"}, 0.7)

	g.Check(context.Background(), "วิชานี้ดีมาก")

	assert.Equal(t, "วิชานี้ดีมาก", c.text)
	assert.Equal(t, []string{"th", "en"}, c.languages)
}

func TestGateFailsOpen(t *testing.T) {
	for name, c := range map[string]*stubClassifier{
		"transport error": {err: errors.New("connection refused")},
		"deadline":        {err: context.DeadlineExceeded},
		"negative score":  {score: -0.2},
		"score above one": {score: 3},
		"not a number":    {score: math.NaN()},
	} {
		t.Run(name, func(t *testing.T) {
			g := NewGate(logger.Discard(), c, nil, 0.7)
			v := g.Check(context.Background(), "text")
			assert.True(t, v.Accepted())
			assert.True(t, v.FailedOpen)
			assert.Zero(t, v.Score)
		})
	}
}

func TestGateDefaultsThreshold(t *testing.T) {
	g := NewGate(logger.Discard(), &stubClassifier{}, nil, 0)
	assert.Equal(t, DefaultToxicityThreshold, g.threshold)
}

func TestGateStampsTime(t *testing.T) {
	now := nowUTC
	defer func() { nowUTC = now }()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	nowUTC = func() time.Time { return fixed }

	v := NewGate(logger.Discard(), &stubClassifier{score: 0.9}, nil, 0.7).Check(context.Background(), "x")
	require.False(t, v.Accepted())
	assert.Equal(t, fixed, v.CheckedAt)
}

func TestVisibility(t *testing.T) {
	v := NewVisibility(DefaultHideThreshold)

	assert.True(t, v.Visible(models.Review{ReportedTimes: 0}))
	assert.True(t, v.Visible(models.Review{ReportedTimes: 4}))
	assert.False(t, v.Visible(models.Review{ReportedTimes: 5}))
	assert.False(t, v.Visible(models.Review{ReportedTimes: 12}))
	assert.False(t, v.Visible(models.Review{ReportedTimes: 5, HelpfulVotes: 100}))
	assert.True(t, v.Visible(models.Review{ReportedTimes: 4, HelpfulVotes: 0}))
}

func TestVisibilityFilterKeepsOrder(t *testing.T) {
	v := NewVisibility(0)
	reviews := []models.Review{
		{ID: 3, ReportedTimes: 1},
		{ID: 1, ReportedTimes: 5},
		{ID: 2, ReportedTimes: 4},
	}

	got := v.Filter(reviews)

	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Len(t, reviews, 3)
}
