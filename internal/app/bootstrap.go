package app

import (
	"context"
	"fmt"

	"trello/internal/app/admin"
	"trello/internal/app/board"
	"trello/internal/app/health"
	"trello/internal/config"
	"trello/internal/db"
	"trello/internal/db/seeder"
	"trello/internal/providers/redis"
	"trello/internal/router"
	"trello/internal/utils"
	"trello/internal/web"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
	Redis  *redis.RedisProvider
}

func Bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	var redisProvider *redis.RedisProvider
	if cfg.RedisURL != "" {
		redisProvider, err = redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
		if err != nil {
			logger.Warn("Failed to initialize Redis provider, board list cache disabled", zap.Error(err))
			redisProvider = nil
		}
	} else {
		logger.Info("REDIS_URL not set, board list cache disabled")
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	sessionStore, err := admin.NewSessionStore(cfg.SessionKeys, cfg.SessionMaxAge, cfg.SSL)
	if err != nil {
		return nil, err
	}
	if len(cfg.SessionKeys) == 0 {
		logger.Warn("SESSION_KEYS not set, admin sessions will not survive a restart")
	}

	boardRepo := board.NewRepository(dbConn)
	operatorRepo := admin.NewRepository(dbConn)

	listCache := board.NewRedisListCache(redisProvider, cfg.RedisTTL, logger)
	boardService := board.NewService(boardRepo, listCache, logger)
	operatorService := admin.NewService(operatorRepo, logger)

	seed := seeder.NewSeeder(operatorService, cfg.AdminUsername, cfg.AdminPassword, logger)
	if err := seed.Seed(ctx); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	checker := &utils.HealthChecker{DB: dbConn, DBName: cfg.DBDriver}
	if redisProvider != nil {
		checker.Redis = redisProvider.Client
	}

	sessions := admin.NewSessionManager(sessionStore)
	healthHandler := health.NewHandler(health.NewService(checker))
	boardHandler := board.NewHandler(boardService, logger)
	adminHandler := admin.NewHandler(operatorService, boardService, sessions, logger)

	r := router.NewRouter(logger, router.Options{
		Templates:    templates,
		FrontendURLs: cfg.FrontendURLs,
		SSL:          cfg.SSL,
	})

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterMetricsRoutes()
	r.RegisterBoardRoutes(boardHandler)
	r.RegisterAdminRoutes(adminHandler, admin.RequireOperator(sessions, operatorService, logger))

	return &Application{
		Router: r,
		DB:     dbConn,
		Redis:  redisProvider,
	}, nil
}

// Close releases the database pool and the Redis client.
func (a *Application) Close() error {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
