package service

import (
	"TUReviews/internal/service/auth"
	"TUReviews/internal/service/course/management"
	"TUReviews/internal/service/course/query"
	"TUReviews/internal/service/course/review"
)

type Collection struct {
	*auth.AuthService
	*query.CourseQueryService
	*management.CourseManagementService
	*review.ReviewService
}
