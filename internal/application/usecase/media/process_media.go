package media

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/adapters/event"
	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/media"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const (
	mainTransformation  = "c_limit,w_1200"
	thumbTransformation = "c_fill,g_auto,w_400,h_400"
)

// ProcessMediaUseCase runs in the worker: it derives the display and
// thumbnail URLs of an uploaded image and marks the record ready.
type ProcessMediaUseCase struct {
	mediaRepo media.Repository
	uploader  service.Uploader
	logger    logger.Logger
}

func NewProcessMediaUseCase(r media.Repository, u service.Uploader, log logger.Logger) *ProcessMediaUseCase {
	return &ProcessMediaUseCase{mediaRepo: r, uploader: u, logger: log}
}

func (uc *ProcessMediaUseCase) Execute(ctx context.Context, payload event.MediaEventPayload) error {
	l := uc.logger.With(zap.String("media_id", payload.MediaID.String()), zap.String("event_type", string(payload.EventType)))
	l.Info("Worker UseCase processing media event")

	if payload.EventType != event.MediaEventTypeUploaded {
		l.Warn("Unknown media event type, skipping")
		return nil
	}

	m, err := uc.mediaRepo.FindByID(ctx, payload.MediaID, payload.OwnerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			l.Warn("Media not found, skipping event")
			return nil
		}
		return apperror.NewInternal("failed to get media", err)
	}

	if m.Status == media.StatusReady {
		l.Info("Media already in 'ready' state, skipping", zap.String("status", string(m.Status)))
		return nil
	}

	mainURL, err := uc.uploader.TransformURL(payload.OriginalPublicID, mainTransformation)
	if err != nil {
		return apperror.NewInternal("failed to build main image URL", err)
	}
	thumbURL, err := uc.uploader.TransformURL(payload.OriginalPublicID, thumbTransformation)
	if err != nil {
		return apperror.NewInternal("failed to build thumbnail URL", err)
	}

	if m.Metadata == nil {
		m.Metadata = map[string]any{}
	}
	m.Metadata["display_url"] = mainURL
	m.ThumbnailURL = &thumbURL
	m.Status = media.StatusReady

	if err := uc.mediaRepo.Update(ctx, m); err != nil {
		return apperror.NewInternal("failed to update media to 'ready'", err)
	}

	l.Info("Successfully processed media", zap.String("status", string(m.Status)))
	return nil
}
