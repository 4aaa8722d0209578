package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/syncfit/syncfit-backend/internal/app"
	"github.com/syncfit/syncfit-backend/internal/config"
	"github.com/syncfit/syncfit-backend/internal/database"
	"github.com/syncfit/syncfit-backend/internal/health"
	"github.com/syncfit/syncfit-backend/internal/http/handler"
	"github.com/syncfit/syncfit-backend/internal/http/middleware"
	"github.com/syncfit/syncfit-backend/internal/http/router"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/repository"
	"github.com/syncfit/syncfit-backend/internal/security"
	"github.com/syncfit/syncfit-backend/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideObjectStorage,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewActivityRepository,
	repository.NewWeightRepository,
	repository.NewStepsRepository,
	repository.NewNutritionRepository,
	repository.NewCalculatorRepository,
	repository.NewMilestoneRepository,
	repository.NewSettingsRepository,
	repository.NewFeedbackRepository,
)

var SecuritySet = wire.NewSet(provideJWTManager)

var ServiceSet = wire.NewSet(
	service.NewTokenService,
	provideMailer,
	provideIdentityService,
	service.NewProfileService,
	service.NewActivityService,
	service.NewWeightService,
	service.NewStepsService,
	service.NewNutritionService,
	service.NewCalculatorService,
	service.NewMilestoneService,
	service.NewSettingsService,
	service.NewFeedbackService,
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewProfileHandler,
	handler.NewTrackerHandler,
	handler.NewNutritionHandler,
	handler.NewCalculatorHandler,
	handler.NewMilestoneHandler,
	handler.NewSettingsHandler,
	handler.NewFeedbackHandler,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

// MigrationRunner backs the adminctl migrate command: schema only, no server.
type MigrationRunner struct {
	db *gorm.DB
}

func NewMigrationRunner(db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

func (m *MigrationRunner) Run() error {
	return database.Migrate(m.db)
}

// SeedRunner backs the adminctl seed command.
type SeedRunner struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewSeedRunner(cfg *config.Config, db *gorm.DB) *SeedRunner {
	return &SeedRunner{cfg: cfg, db: db}
}

func (s *SeedRunner) Run(email, password string) error {
	if err := database.Migrate(s.db); err != nil {
		return err
	}
	return database.SeedDemo(s.db, email, password)
}

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func provideRedisClient(cfg *config.Config) redis.UniversalClient {
	if !cfg.RedisEnabled {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}

func provideObjectStorage(cfg *config.Config) (service.ObjectStorage, error) {
	storage, err := service.NewMinioStorage(cfg)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	return storage, nil
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient) *health.ProbeRunner {
	checkers := []health.Checker{health.NewDBChecker(db)}
	if cfg.RedisEnabled {
		checkers = append(checkers, health.NewRedisChecker(redisClient))
	}
	return health.NewProbeRunner(2*time.Second, 3*time.Second, checkers...)
}

func provideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.SessionTTL)
}

func provideMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg.EmailDevMode {
		return service.NewDevMailer(logger)
	}
	return service.NewSMTPMailer(cfg)
}

func provideIdentityService(cfg *config.Config, userRepo repository.UserRepository, tokenSvc *service.TokenService, mailer service.Mailer) *service.IdentityService {
	return service.NewIdentityService(service.IdentityConfig{CodeTTL: cfg.OTPCodeTTL}, userRepo, tokenSvc, mailer)
}

func provideRouterDependencies(
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	trackerHandler *handler.TrackerHandler,
	nutritionHandler *handler.NutritionHandler,
	calculatorHandler *handler.CalculatorHandler,
	milestoneHandler *handler.MilestoneHandler,
	settingsHandler *handler.SettingsHandler,
	feedbackHandler *handler.FeedbackHandler,
	jwtMgr *security.JWTManager,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
) router.Dependencies {
	dep := router.Dependencies{
		AuthHandler:       authHandler,
		ProfileHandler:    profileHandler,
		TrackerHandler:    trackerHandler,
		NutritionHandler:  nutritionHandler,
		CalculatorHandler: calculatorHandler,
		MilestoneHandler:  milestoneHandler,
		SettingsHandler:   settingsHandler,
		FeedbackHandler:   feedbackHandler,
		JWTManager:        jwtMgr,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		AuthRateLimitRPM:  cfg.AuthRateLimitPerMin,
		APIRateLimitRPM:   cfg.APIRateLimitPerMin,
		Readiness:         readiness,
		EnableOTelHTTP:    cfg.OTELTracingEnabled,
	}
	if redisClient != nil {
		// The API window fails open so a Redis blip does not take the whole
		// API down; the tighter auth window fails closed.
		limiter := middleware.NewRedisFixedWindowLimiter(redisClient, "syncfit:rl")
		dep.GlobalRateLimiter = middleware.NewDistributedRateLimiter(
			limiter, cfg.APIRateLimitPerMin, time.Minute, middleware.FailOpen, "api", "redis",
		).Middleware()
		dep.AuthRateLimiter = middleware.NewDistributedRateLimiter(
			limiter, cfg.AuthRateLimitPerMin, time.Minute, middleware.FailClosed, "auth", "redis",
		).Middleware()
	}
	return dep
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
