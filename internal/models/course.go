package models

import (
	"time"
)

type Course struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Faculty   string    `json:"faculty"`
	Professor string    `json:"professor"`
	CreatedAt time.Time `json:"created_at"`
	Reviews   []Review  `json:"reviews"`
}

// Review looks up one of the course's reviews by id.
func (c Course) Review(id int64) (Review, bool) {
	for _, r := range c.Reviews {
		if r.ID == id {
			return r, true
		}
	}
	return Review{}, false
}

// CourseCard is a course as rendered in listings and on the profile page.
type CourseCard struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	Faculty       string `json:"faculty"`
	Professor     string `json:"professor"`
	AvgRating     string `json:"avg_rating"`
	Rated         bool   `json:"rated"`
	ReviewCount   int    `json:"review_count"`
	VisibleReview int    `json:"visible_review_count"`
}

type CourseProfile struct {
	CourseCard
	Reviews []Review `json:"reviews"`
}

type LatestReview struct {
	Review
	CourseName string `json:"course_name"`
}

type HomePage struct {
	Popular []CourseCard   `json:"popular"`
	Latest  []LatestReview `json:"latest"`
}
