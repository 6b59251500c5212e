package http

import (
	"TUReviews/internal/delivery/http/controllers"
	"TUReviews/internal/delivery/http/controllers/auth"
	"TUReviews/internal/delivery/http/controllers/course"
	"TUReviews/internal/delivery/http/controllers/middleware"
	"TUReviews/internal/delivery/http/controllers/navigation"
	"TUReviews/internal/models"
	"TUReviews/internal/service"
	"TUReviews/pkg/logger"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{"http://localhost:3000"}

type Options struct {
	AllowOrigins []string
	// Limiter throttles helpful votes and reports; nil disables throttling.
	Limiter    middleware.Limiter
	VoteLimit  int64
	VoteWindow time.Duration
	Deps       map[string]controllers.Pinger
}

func InitRoutes(l logger.Log, u service.Collection, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Language", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	statusController := controllers.NewStatusHandler(opts.Deps)
	authController := auth.NewAuthHandler(l, u.AuthService)
	authMiddleware := middleware.NewAuthMiddlewareProvider(l, u.AuthService)
	queryController := course.NewQueryHandler(l, u.CourseQueryService)
	managementController := course.NewManagementHandler(l, u.CourseManagementService)
	reviewController := course.NewReviewHandler(l, u.ReviewService)
	navigationController := navigation.NewHandler(l, u.CourseQueryService)

	helpfulChain := []gin.HandlerFunc{reviewController.MarkHelpful}
	reportChain := []gin.HandlerFunc{reviewController.Report}
	if opts.Limiter != nil {
		helpfulChain = append([]gin.HandlerFunc{
			middleware.RateLimit(l, opts.Limiter, "helpful", "review_id", opts.VoteLimit, opts.VoteWindow),
		}, helpfulChain...)
		reportChain = append([]gin.HandlerFunc{
			middleware.RateLimit(l, opts.Limiter, "report", "review_id", opts.VoteLimit, opts.VoteWindow),
		}, reportChain...)
	}

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l), middleware.LocaleMiddleware())
	{
		v1.GET("/status", statusController.Status)
		v1.GET("/home", queryController.Home)
		v1.POST("/navigation", navigationController.Transition)

		v1.GET("/me", authMiddleware.AuthMiddleware, authController.Me)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authController.Login)
			authGroup.POST("/register", authController.Register)
			authGroup.POST("/refresh", authController.Refresh)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", queryController.ListCourses)
			courses.GET("/:course_id", queryController.CourseProfile)
			courses.POST("/:course_id/reviews", reviewController.SubmitReview)

			members := courses.Group("", authMiddleware.AuthMiddleware, middleware.RequireRoles(models.StudentRole, models.ModeratorRole))
			{
				members.POST("", managementController.AddCourse)
			}
		}

		reviews := v1.Group("/reviews")
		{
			reviews.POST("/:review_id/helpful", helpfulChain...)
			reviews.POST("/:review_id/report", reportChain...)
		}
	}
	return r
}
