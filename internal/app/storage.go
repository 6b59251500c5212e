package app

import (
	"TUReviews/internal/config"
	"TUReviews/internal/delivery/http/controllers"
	"TUReviews/internal/models"
	"TUReviews/internal/service/auth"
	"TUReviews/internal/storage/elastic"
	"TUReviews/internal/storage/memory"
	"TUReviews/internal/storage/postgres"
	redisstore "TUReviews/internal/storage/redis"
	"TUReviews/pkg/logger"
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type courseStore interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Course(ctx context.Context, id int64) (models.Course, error)
	CreateCourse(ctx context.Context, in models.NewCourse) (models.Course, error)
}

type reviewStore interface {
	CreateReview(ctx context.Context, in models.NewReview) (models.Review, error)
	IncrementHelpful(ctx context.Context, reviewID int64) (models.Review, error)
	IncrementReported(ctx context.Context, reviewID int64) (models.Review, error)
}

type tokenStore interface {
	Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	ByPrimaryKey(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	DeleteUserTokens(ctx context.Context, userID uuid.UUID) error
}

type courseIndex interface {
	Index(ctx context.Context, course models.Course) error
	Search(ctx context.Context, query string, size int) ([]int64, error)
}

type stores struct {
	courses courseStore
	reviews reviewStore
	users   auth.AuthRepo
	tokens  tokenStore
	// index and limiter stay nil when their backends are not configured.
	index   courseIndex
	limiter *redisstore.Limiter
	deps    map[string]controllers.Pinger
	closers []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores connects the primary store and the optional search index and
// rate limiter. Only a primary store failure is returned; the optional
// backends are skipped with an error log.
func openStores(ctx context.Context, log logger.Log, cfg *config.Config) (*stores, error) {
	s := &stores{deps: map[string]controllers.Pinger{}}

	switch cfg.Storage {
	case config.StorageMemory:
		mem := memory.New()
		s.courses, s.reviews, s.users, s.tokens = mem, mem, mem, mem
		log.Warn("using in-memory storage, data is lost on restart")
	default:
		pg, err := postgres.NewPostgresPool(ctx, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pg.Close)
		s.deps["postgres"] = pg.Pool
		s.courses = postgres.NewCoursePostgres(pg.Pool)
		s.reviews = postgres.NewReviewPostgres(pg.Pool)
		s.users = postgres.NewUserPostgres(pg.Pool)
		s.tokens = postgres.NewTokensPostgres(pg.Pool)
	}

	if cfg.ES.Enabled() {
		if err := s.openIndex(ctx, log, cfg.ES); err != nil {
			log.ErrorErr("elasticsearch disabled", err)
		}
	}

	if cfg.Redis.Enabled() {
		client, err := redisstore.NewClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.ErrorErr("redis disabled, votes are not rate limited", err)
		} else {
			s.closers = append(s.closers, func() { _ = client.Close() })
			s.deps["redis"] = controllers.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
			s.limiter = redisstore.NewLimiter(client)
		}
	}
	return s, nil
}

func (s *stores) openIndex(ctx context.Context, log logger.Log, cfg config.ES) error {
	client, err := elastic.NewElasticClient(cfg.Username, cfg.Password, cfg.Hosts)
	if err != nil {
		return err
	}
	repo := elastic.NewCourseSearchRepository(client, cfg.Index)
	if err := repo.CreateIndexIfNotExist(ctx); err != nil {
		return err
	}

	courses, err := s.courses.Courses(ctx)
	if err != nil {
		return fmt.Errorf("load courses for indexing: %w", err)
	}
	for _, c := range courses {
		if err := repo.Index(ctx, c); err != nil {
			return fmt.Errorf("index course %d: %w", c.ID, err)
		}
	}
	log.Info("course index ready", "index", cfg.Index, "courses", len(courses))

	s.index = repo
	s.deps["elasticsearch"] = controllers.PingFunc(func(ctx context.Context) error {
		res, err := client.Ping(client.Ping.WithContext(ctx))
		if err != nil {
			return err
		}
		defer res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("elasticsearch: %s", res.Status())
		}
		return nil
	})
	return nil
}
