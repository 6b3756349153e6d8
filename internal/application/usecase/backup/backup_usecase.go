package backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/builder"
	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/render"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// BackupUseCase uploads a JSON export of the live portfolio to the media
// store. The file round-trips through ReplaceSection like any JSON export.
type BackupUseCase struct {
	sessions *builder.Manager
	uploader service.Uploader
	now      func() time.Time
	logger   logger.Logger
}

func NewBackupUseCase(sessions *builder.Manager, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		sessions: sessions,
		uploader: uploader,
		now:      time.Now,
		logger:   log,
	}
}

type BackupOutput struct {
	URL       string    `json:"url"`
	PublicID  string    `json:"publicId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (uc *BackupUseCase) Execute(ctx context.Context, id *portfolio.Identity) (*BackupOutput, error) {
	sess, err := uc.sessions.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	log := uc.logger.With(zap.String("owner_id", id.UID))
	log.Info("Starting portfolio backup...")

	now := uc.now().UTC()
	body, err := render.JSON(sess.Snapshot(), now)
	if err != nil {
		log.Error("Failed to render backup", err)
		return nil, apperror.NewExportError(string(render.FormatJSON), err)
	}

	folder := fmt.Sprintf("%s/backups", id.UID)
	publicID := fmt.Sprintf("backup-%s", now.Format("2006-01-02_15-04-05"))

	url, err := uc.uploader.Upload(ctx, bytes.NewReader(body), folder, publicID)
	if err != nil {
		log.Error("Failed to upload backup", err)
		return nil, apperror.NewUploadError("portfolio backup could not be stored", err)
	}

	log.Info("Portfolio backup uploaded", zap.String("url", url), zap.String("public_id", publicID))
	return &BackupOutput{URL: url, PublicID: folder + "/" + publicID, CreatedAt: now}, nil
}
