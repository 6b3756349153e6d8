package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/adapters/event"
	"github.com/khoahotran/portfolio-builder/adapters/media_storage"
	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	mediaUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/media"
	"github.com/khoahotran/portfolio-builder/internal/config"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
	"github.com/khoahotran/portfolio-builder/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("FATAL: cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Portfolio Builder Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("Worker needs Kafka brokers", errors.New("kafka.brokers is empty"))
	}

	shutdownTracer, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-builder-worker")
	if err != nil {
		appLogger.Fatal("Failed to init tracer", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	mediaRepo := persistence.NewPostgresMediaRepo(dbPool, appLogger)
	processMediaUC := mediaUC.NewProcessMediaUseCase(mediaRepo, uploader, appLogger)

	// Kafka Consumer
	mediaConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicMediaEvents,
		GroupID:  "media-processor-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer mediaConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicMediaEvents))

	for {
		msg, err := mediaConsumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.MediaEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Warn("Skipping malformed event", zap.Error(err), zap.ByteString("key", msg.Key))
			commitMessage(mediaConsumer, msg, appLogger)
			continue
		}

		log := appLogger.With(zap.String("event_type", string(payload.EventType)), zap.String("media_id", payload.MediaID.String()))
		log.Info("Processing event")

		if err := processMediaUC.Execute(ctx, payload); err != nil {
			log.Error("Failed to process event", err)
			continue
		}
		commitMessage(mediaConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
