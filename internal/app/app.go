package app

import (
	"TUReviews/internal/app/server"
	"TUReviews/internal/clients/perspective"
	"TUReviews/internal/config"
	"TUReviews/internal/delivery/http"
	"TUReviews/internal/service"
	"TUReviews/internal/service/auth"
	"TUReviews/internal/service/course/management"
	"TUReviews/internal/service/course/query"
	"TUReviews/internal/service/course/review"
	"TUReviews/internal/service/moderation"
	"TUReviews/pkg/logger"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("starting", "env", cfg.Env, "storage", cfg.Storage)

	ctx := context.Background()
	st, err := openStores(ctx, log, cfg)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer st.Close()

	if cfg.Perspective.APIKey == "" {
		log.Warn("perspective api key is empty, reviews will pass moderation unchecked")
	}
	classifier := perspective.New(cfg.Perspective.Endpoint, cfg.Perspective.APIKey, cfg.Perspective.Timeout)
	gate := moderation.NewGate(log, classifier, cfg.Perspective.Languages, cfg.Moderation.ToxicityThreshold)
	visibility := moderation.NewVisibility(cfg.Moderation.HideThreshold)

	jwtManager, err := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		log.FatalErr("error creating jwt manager", err)
	}
	u := service.Collection{
		AuthService:             auth.NewAuthService(log, jwtManager, st.users, st.tokens),
		CourseQueryService:      query.NewCourseQueryService(log, st.courses, st.index, visibility, cfg.Moderation.AggregateVisibleOnly),
		CourseManagementService: management.NewCourseManagementService(log, st.courses, st.index),
		ReviewService:           review.NewReviewService(log, st.reviews, gate),
	}

	opts := http.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
		VoteLimit:    cfg.Redis.VoteLimit,
		VoteWindow:   cfg.Redis.VoteWindow,
		Deps:         st.deps,
	}
	if st.limiter != nil {
		opts.Limiter = st.limiter
	}
	r := http.InitRoutes(log, u, opts)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("http server started", "address", cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal", "signal", s.String())
	case err := <-srv.Notify():
		log.ErrorErr("http server stopped", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("http server shutdown", err)
	}
}
