package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")

var ErrCourseNotFound = errors.New("course not found")
var ErrReviewNotFound = errors.New("review not found")
var ErrEmptyCourseField = errors.New("course name and code are required")

var ErrInvalidRating = errors.New("rating must be between 1 and 5")
var ErrEmptyReview = errors.New("review text is empty")
var ErrToxicReview = errors.New("review contains inappropriate content")

var ErrInvalidTransition = errors.New("invalid view transition")
