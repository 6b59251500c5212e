package moderation

import (
	"TUReviews/pkg/logger"
	"context"
	"fmt"
	"math"
	"time"
)

const (
	DefaultToxicityThreshold = 0.7
	DefaultHideThreshold     = 5
)

type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// Verdict is the outcome of a single submission check.
type Verdict struct {
	Decision   Decision
	Score      float64
	FailedOpen bool
	CheckedAt  time.Time
}

func (v Verdict) Accepted() bool {
	return v.Decision == DecisionAccepted
}

type Classifier interface {
	Toxicity(ctx context.Context, text string, languages []string) (float64, error)
}

type Gate struct {
	log        logger.Log
	classifier Classifier
	languages  []string
	threshold  float64
}

func NewGate(l logger.Log, c Classifier, languages []string, threshold float64) *Gate {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultToxicityThreshold
	}
	return &Gate{
		log:        l,
		classifier: c,
		languages:  languages,
		threshold:  threshold,
	}
}

var nowUTC = func() time.Time { return time.Now().UTC() }

// Check classifies text once and rejects it only when the score is above the
// threshold. When the classifier cannot produce a score the text is accepted.
func (g *Gate) Check(ctx context.Context, text string) Verdict {
	score, err := g.classifier.Toxicity(ctx, text, g.languages)
	if err == nil && (math.IsNaN(score) || score < 0 || score > 1) {
		err = fmt.Errorf("toxicity score %v out of range", score)
	}
	if err != nil {
		g.log.Warn("moderation: classifier unavailable, accepting review", logger.Err(err))
		return Verdict{Decision: DecisionAccepted, FailedOpen: true, CheckedAt: nowUTC()}
	}

	v := Verdict{Decision: DecisionAccepted, Score: score, CheckedAt: nowUTC()}
	if score > g.threshold {
		v.Decision = DecisionRejected
		g.log.Info("moderation: review rejected", "score", score)
	}
	return v
}
