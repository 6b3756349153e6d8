package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-builder/adapters/http"
	"github.com/khoahotran/portfolio-builder/adapters/media_storage"
	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/internal/application/autosave"
	"github.com/khoahotran/portfolio-builder/internal/application/builder"
	"github.com/khoahotran/portfolio-builder/internal/application/service"
	authUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/auth"
	backupUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/backup"
	exportUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/export"
	mediaUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/media"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/internal/domain/media"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/user"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
	"github.com/khoahotran/portfolio-builder/pkg/tracing"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("FATAL: cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Portfolio Builder API Server...", zap.String("env", cfg.App.Env))

	shutdownTracer, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-builder-api")
	if err != nil {
		appLogger.Fatal("Failed to init tracer", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown tracer", err)
		}
	}()

	ctx := context.Background()

	// Storage
	var (
		store     portfolio.DocumentStore
		userRepo  user.Repository
		mediaRepo media.Repository
	)
	switch cfg.Store.Driver {
	case "memory":
		appLogger.Warn("Using in-memory store, data is lost on restart")
		store = persistence.NewMemoryPortfolioStore()
		userRepo = persistence.NewMemoryUserRepo()
		mediaRepo = persistence.NewMemoryMediaRepo()
	default:
		dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Postgres", err)
		}
		defer dbPool.Close()
		store = persistence.NewPostgresPortfolioStore(dbPool, appLogger)
		userRepo = persistence.NewPostgresUserRepo(dbPool, appLogger)
		mediaRepo = persistence.NewPostgresMediaRepo(dbPool, appLogger)
	}

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	if redisClient != nil {
		defer func(c *redis.Client) { _ = c.Close() }(redisClient)
		store = persistence.NewCachedPortfolioStore(store, redisClient, cfg.Redis.CacheTTL, appLogger)
	}

	// Events
	var publisher event.Publisher = event.NopPublisher{Logger: appLogger}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		publisher = kafkaClient
	} else {
		appLogger.Warn("No Kafka brokers configured, events are dropped")
	}
	defer publisher.Close()

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	var uploader service.Uploader
	uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Image uploads disabled", zap.Error(err))
		uploader = media_storage.NewDisabledUploader()
	}

	manager := builder.NewManager(store, builder.ManagerOptions{
		Autosave: autosave.Options{
			DebounceWindow: cfg.Autosave.DebounceWindow,
			WriteTimeout:   cfg.Autosave.WriteTimeout,
			OnSaved:        []autosave.SavedHook{event.NewPortfolioSavedHook(publisher, appLogger)},
		},
		LoadTimeout: cfg.Autosave.LoadTimeout,
	}, appLogger)

	// Use Cases
	signupUseCase := authUC.NewSignupUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	exportUseCase := exportUC.NewExportUseCase(manager, appLogger)
	previewUseCase := exportUC.NewPreviewUseCase(manager)
	backupUseCase := backupUC.NewBackupUseCase(manager, uploader, appLogger)
	uploadUseCase := mediaUC.NewUploadImageUseCase(manager, mediaRepo, uploader, publisher, mediaUC.Limits{
		AvatarMaxBytes:       cfg.Upload.AvatarMaxBytes,
		ProjectImageMaxBytes: cfg.Upload.ProjectImageMaxBytes,
	}, appLogger)
	listMediaUseCase := mediaUC.NewListMediaUseCase(mediaRepo)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Auth:      httpAdapter.NewAuthHandler(signupUseCase, loginUseCase, appLogger),
		Templates: httpAdapter.NewTemplateHandler(),
		Portfolio: httpAdapter.NewPortfolioHandler(manager, exportUseCase, previewUseCase, backupUseCase, appLogger),
		Builder:   httpAdapter.NewBuilderHandler(manager),
		Media:     httpAdapter.NewMediaHandler(uploadUseCase, listMediaUseCase, appLogger),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), httpAdapter.ErrorMiddleware(appLogger))
	httpAdapter.RegisterRoutes(router, handlers, httpAdapter.AuthMiddleware(jwtSvc, appLogger))

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	// Flush every open editing session before the store goes away.
	if err := manager.Close(shutdownCtx); err != nil {
		appLogger.Error("Some portfolios could not be saved on shutdown", err)
	}
	appLogger.Info("Server exited")
}
