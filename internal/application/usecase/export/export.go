package export

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/builder"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/render"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var tracer = otel.Tracer("export_usecase")

// ExportUseCase renders the live session model, never the stored copy, so
// a download always matches what the preview shows.
type ExportUseCase struct {
	sessions *builder.Manager
	now      func() time.Time
	logger   logger.Logger
}

func NewExportUseCase(sessions *builder.Manager, log logger.Logger) *ExportUseCase {
	return &ExportUseCase{sessions: sessions, now: time.Now, logger: log}
}

type ExportInput struct {
	Identity *portfolio.Identity
	Format   string
}

func (uc *ExportUseCase) Execute(ctx context.Context, in ExportInput) (*render.Artifact, error) {
	ctx, span := tracer.Start(ctx, "Export")
	defer span.End()

	format, ok := render.ParseFormat(in.Format)
	if !ok {
		return nil, &portfolio.ValidationError{Fields: []string{"format"}, Reason: "format must be json, html or pdf"}
	}
	sess, err := uc.sessions.Open(ctx, in.Identity)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("owner_id", in.Identity.UID), attribute.String("format", string(format)))

	artifact, err := render.Export(sess.Snapshot(), format, uc.now())
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Export failed", err, zap.String("owner_id", in.Identity.UID), zap.String("format", string(format)))
		return nil, apperror.NewExportError(string(format), err)
	}
	return &artifact, nil
}

// PreviewUseCase builds the preview view-model from the live session.
type PreviewUseCase struct {
	sessions *builder.Manager
}

func NewPreviewUseCase(sessions *builder.Manager) *PreviewUseCase {
	return &PreviewUseCase{sessions: sessions}
}

func (uc *PreviewUseCase) Execute(ctx context.Context, id *portfolio.Identity, viewport string) (*render.ViewModel, error) {
	sess, err := uc.sessions.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	vm := render.PreviewViewModel(sess.Snapshot(), render.ParseViewport(viewport))
	return &vm, nil
}
