package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/startuplab/landing-api/docs"
	"github.com/startuplab/landing-api/internal/cache"
	"github.com/startuplab/landing-api/internal/config"
	contacthandler "github.com/startuplab/landing-api/internal/handlers/contact"
	"github.com/startuplab/landing-api/internal/handlers/health"
	subhandler "github.com/startuplab/landing-api/internal/handlers/subscription"
	"github.com/startuplab/landing-api/internal/metrics"
	"github.com/startuplab/landing-api/internal/middleware"
	"github.com/startuplab/landing-api/internal/repository"
	mongorepo "github.com/startuplab/landing-api/internal/repository/mongo"
	sqliterepo "github.com/startuplab/landing-api/internal/repository/sqlite"
	"github.com/startuplab/landing-api/internal/services/contacts"
	"github.com/startuplab/landing-api/internal/services/subscriptions"
	"github.com/startuplab/landing-api/internal/storage"
)

const (
	timeoutDuration = 5 * time.Second

	fileMode = 0o644
)

type App struct {
	cfg config.Config
	log zerolog.Logger
}

type ServiceContainer struct {
	SubscriptionService *subscriptions.Service
	ContactService      *contacts.Service
	Metrics             *metrics.Metrics

	Router *gin.Engine
	Srv    *http.Server

	closers []func(context.Context) error
}

func New(cfg config.Config, logger zerolog.Logger) *App {
	return &App{
		cfg: cfg,
		log: logger.With().Str("component", "App").Logger(),
	}
}

func (a *App) Init(ctx context.Context) (ServiceContainer, error) {
	a.log.Info().Str("backend", a.cfg.StorageBackend).Msg("initializing application")

	m := metrics.New("landing_api")

	container := ServiceContainer{Metrics: m}

	subRepo, contactRepo, err := a.buildRepositories(ctx, m, &container)
	if err != nil {
		return ServiceContainer{}, err
	}

	// Fail fast while the store is down instead of queueing timeouts.
	subRepo = repository.NewBreakerSubscriberRepository("subscribers", subRepo)
	contactRepo = repository.NewBreakerContactRepository("contacts", contactRepo)

	var seenCache *cache.RedisClient[string]
	if a.cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
		})
		seenCache = cache.NewRedisClient[string](rdb, a.log)
		container.closers = append(container.closers, func(context.Context) error {
			return rdb.Close()
		})
	}

	subService := newSubscriptionService(subRepo, seenCache, a.log, a.cfg.Redis.SeenTTL)
	contactService := contacts.NewService(contactRepo, a.log)

	accessLogger, err := newFileLogger(a.cfg.AccessLogPath)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create access logger: %w", err)
	}
	container.closers = append(container.closers, func(context.Context) error {
		return accessLogger.Sync()
	})

	router := a.buildRouter(m, accessLogger, subService, contactService)

	container.SubscriptionService = subService
	container.ContactService = contactService
	container.Router = router
	container.Srv = &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return container, nil
}

func (a *App) buildRepositories(
	ctx context.Context,
	m *metrics.Metrics,
	container *ServiceContainer,
) (repository.SubscriberRepository, repository.ContactRepository, error) {
	switch a.cfg.StorageBackend {
	case "sqlite":
		db, err := storage.OpenSqlite(a.cfg.DB.Dialect, a.cfg.DB.Source)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := storage.MigrateSqlite(db, a.cfg.DB.MigrationsPath); err != nil {
			return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		m.InstrumentDB(db, a.cfg.DB.Source)
		m.StorageUp.Set(1)
		container.closers = append(container.closers, func(context.Context) error {
			return db.Close()
		})
		return sqliterepo.NewSubscriberRepository(db, a.log, m, a.cfg.StorageTimeout),
			sqliterepo.NewContactRepository(db, a.log, m, a.cfg.StorageTimeout),
			nil

	case "mongo":
		conn, err := storage.ConnectMongo(ctx, storage.MongoSettings{
			URI:             a.cfg.Mongo.URI,
			Database:        a.cfg.Mongo.Database,
			ConnectAttempts: a.cfg.Mongo.ConnectAttempts,
		}, a.log, m)
		if err != nil {
			return nil, nil, err
		}
		subRepo := mongorepo.NewSubscriberRepository(conn.Database(), a.log, m, a.cfg.StorageTimeout)
		if err := subRepo.EnsureIndexes(ctx); err != nil {
			return nil, nil, err
		}
		if err := conn.StartWatchdog(); err != nil {
			return nil, nil, err
		}
		container.closers = append(container.closers, conn.Close)
		return subRepo,
			mongorepo.NewContactRepository(conn.Database(), a.log, m, a.cfg.StorageTimeout),
			nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", a.cfg.StorageBackend)
	}
}

func (a *App) buildRouter(
	m *metrics.Metrics,
	accessLogger *zap.Logger,
	subService *subscriptions.Service,
	contactService *contacts.Service,
) *gin.Engine {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(accessLogger),
		m.HTTPMiddleware(),
	)

	// Registered before the CORS middleware so probes and scrapers are
	// exempt from the origin policy.
	healthHandler := health.NewHandler()
	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))

	corsPolicy := middleware.NewCORSPolicy(
		a.cfg.CORS.AllowedOrigins,
		a.cfg.CORS.TrustedSuffixes,
		!a.cfg.IsProduction(),
	)
	router.Use(corsPolicy.Handler())

	verbose := !a.cfg.IsProduction()
	subHandler := subhandler.NewHandler(subService, verbose)
	contactHandler := contacthandler.NewHandler(contactService, verbose)

	router.POST("/subscribe", subHandler.Subscribe)
	api := router.Group("/api")
	{
		api.POST("/subscribe", subHandler.Subscribe)
		api.POST("/contact", contactHandler.Submit)
	}

	return router
}

func (a *App) Start(container ServiceContainer) error {
	a.log.Info().Str("address", a.cfg.ServerAddress()).Msg("starting server")

	if err := container.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Stop(container ServiceContainer) error {
	a.log.Info().Msg("stopping application")

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()

	if err := container.Srv.Shutdown(ctx); err != nil {
		a.log.Error().Err(err).Msg("HTTP shutdown error")
	} else {
		a.log.Info().Msg("HTTP server stopped")
	}

	for _, closeFn := range container.closers {
		if err := closeFn(ctx); err != nil {
			a.log.Error().Err(err).Msg("close error")
		}
	}

	a.log.Info().Msg("shutdown complete")
	return nil
}

func newSubscriptionService(
	repo repository.SubscriberRepository,
	seenCache *cache.RedisClient[string],
	log zerolog.Logger,
	seenTTL time.Duration,
) *subscriptions.Service {
	if seenCache == nil {
		return subscriptions.NewService(repo, nil, log, seenTTL)
	}
	return subscriptions.NewService(repo, seenCache, log, seenTTL)
}

func newFileLogger(filePath string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(filePath)), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filepath.Clean(filePath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, err
	}

	writer := zapcore.AddSync(file)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		writer,
		zap.InfoLevel,
	)
	return zap.New(core), nil
}
