package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID            int64     `json:"id"`
	CourseID      int64     `json:"course_id"`
	Rating        int       `json:"rating"`
	Text          string    `json:"text"`
	HelpfulVotes  int       `json:"helpful_votes"`
	ReportedTimes int       `json:"reported_times"`
	CreatedAt     time.Time `json:"created_at"`
}

type NewReview struct {
	CourseID int64
	Rating   int
	Text     string
}

type NewCourse struct {
	Name      string
	Code      string
	Faculty   string
	Professor string
}
