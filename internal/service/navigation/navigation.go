// Package navigation models which screen the client is on and how user
// actions move it between screens.
package navigation

import (
	"TUReviews/internal/app_errors"
	"fmt"
)

type View string

const (
	ViewHome          View = "home"
	ViewSearch        View = "search"
	ViewCourseProfile View = "course-profile"
	ViewAddCourse     View = "add-course"
	ViewLogin         View = "login"
	ViewReviewModal   View = "review-modal"
)

type EventType string

const (
	EventGoHome           EventType = "go_home"
	EventSearch           EventType = "search"
	EventOpenCourse       EventType = "open_course"
	EventOpenAddCourse    EventType = "open_add_course"
	EventOpenLogin        EventType = "open_login"
	EventOpenReviewModal  EventType = "open_review_modal"
	EventCloseReviewModal EventType = "close_review_modal"
	EventCourseAdded      EventType = "course_added"
	EventReviewSubmitted  EventType = "review_submitted"
)

type State struct {
	View       View   `json:"view"`
	CourseID   int64  `json:"course_id,omitempty"`
	SearchTerm string `json:"search_term,omitempty"`
}

type Event struct {
	Type       EventType `json:"type"`
	CourseID   int64     `json:"course_id,omitempty"`
	SearchTerm string    `json:"search_term,omitempty"`
}

func Initial() State {
	return State{View: ViewHome}
}

func (s State) valid() bool {
	switch s.View {
	case ViewHome, ViewSearch, ViewAddCourse, ViewLogin:
		return true
	case ViewCourseProfile, ViewReviewModal:
		return s.CourseID > 0
	}
	return false
}

// Transition applies e to s. The review modal is a dialog over a course
// profile: while it is open only closing it or submitting the review is
// allowed.
func Transition(s State, e Event) (State, error) {
	if !s.valid() {
		return s, fmt.Errorf("%w: unknown state %q", app_errors.ErrInvalidTransition, s.View)
	}

	if s.View == ViewReviewModal {
		switch e.Type {
		case EventCloseReviewModal, EventReviewSubmitted:
			return State{View: ViewCourseProfile, CourseID: s.CourseID}, nil
		}
		return s, invalid(s, e)
	}

	switch e.Type {
	case EventGoHome:
		return Initial(), nil
	case EventSearch:
		return State{View: ViewSearch, SearchTerm: e.SearchTerm}, nil
	case EventOpenCourse:
		if e.CourseID <= 0 {
			return s, invalid(s, e)
		}
		return State{View: ViewCourseProfile, CourseID: e.CourseID}, nil
	case EventOpenAddCourse:
		return State{View: ViewAddCourse}, nil
	case EventOpenLogin:
		return State{View: ViewLogin}, nil
	case EventOpenReviewModal:
		if s.View == ViewCourseProfile {
			return State{View: ViewReviewModal, CourseID: s.CourseID}, nil
		}
	case EventCourseAdded:
		if s.View == ViewAddCourse {
			return Initial(), nil
		}
	}
	return s, invalid(s, e)
}

func invalid(s State, e Event) error {
	return fmt.Errorf("%w: %s on %s", app_errors.ErrInvalidTransition, e.Type, s.View)
}
