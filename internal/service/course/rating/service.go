package rating

import (
	"TUReviews/internal/models"
	"fmt"
)

// Score is the displayed rating of a course. A zero Score means no reviews yet.
type Score struct {
	Rated bool
	// Tenths holds the mean rating multiplied by ten, rounded half up.
	Tenths int
}

func (s Score) Value() float64 {
	return float64(s.Tenths) / 10
}

func (s Score) String() string {
	if !s.Rated {
		return ""
	}
	return fmt.Sprintf("%d.%d", s.Tenths/10, s.Tenths%10)
}

// Average returns the mean rating of reviews rounded to one decimal place.
// Integer arithmetic keeps halves like 4.35 rounding up to 4.4.
func Average(reviews []models.Review) Score {
	if len(reviews) == 0 {
		return Score{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	n := len(reviews)
	return Score{
		Rated:  true,
		Tenths: (20*sum + n) / (2 * n),
	}
}
