package moderation

import "TUReviews/internal/models"

// Visibility hides reviews that collected too many reports. Nothing is stored;
// the predicate is applied every time reviews are read.
type Visibility struct {
	HideThreshold int
}

func NewVisibility(hideThreshold int) Visibility {
	if hideThreshold <= 0 {
		hideThreshold = DefaultHideThreshold
	}
	return Visibility{HideThreshold: hideThreshold}
}

func (v Visibility) Visible(r models.Review) bool {
	return r.ReportedTimes < v.HideThreshold
}

// Filter returns the visible reviews in their original order.
func (v Visibility) Filter(reviews []models.Review) []models.Review {
	out := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if v.Visible(r) {
			out = append(out, r)
		}
	}
	return out
}
