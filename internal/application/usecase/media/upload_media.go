package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/adapters/event"
	"github.com/khoahotran/portfolio-builder/internal/application/builder"
	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/media"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const ProviderCloudinary = "cloudinary"

var tracer = otel.Tracer("media_usecase")

// Limits caps upload sizes per kind, in bytes.
type Limits struct {
	AvatarMaxBytes       int64
	ProjectImageMaxBytes int64
}

func (l Limits) For(k media.Kind) int64 {
	if k == media.KindAvatar {
		return l.AvatarMaxBytes
	}
	return l.ProjectImageMaxBytes
}

type UploadImageUseCase struct {
	sessions  *builder.Manager
	mediaRepo media.Repository
	uploader  service.Uploader
	publisher event.Publisher
	limits    Limits
	now       func() time.Time
	logger    logger.Logger
}

func NewUploadImageUseCase(
	sessions *builder.Manager,
	r media.Repository,
	u service.Uploader,
	p event.Publisher,
	limits Limits,
	log logger.Logger,
) *UploadImageUseCase {
	return &UploadImageUseCase{
		sessions:  sessions,
		mediaRepo: r,
		uploader:  u,
		publisher: p,
		limits:    limits,
		now:       time.Now,
		logger:    log,
	}
}

type UploadImageInput struct {
	Identity *portfolio.Identity
	Kind     media.Kind
	Filename string
	Size     int64
	File     io.Reader
	// ProjectID, for project images, names the project whose imageUrl is
	// set. Without it the URL is only returned.
	ProjectID *portfolio.ID
}

type UploadImageOutput struct {
	MediaID uuid.UUID `json:"media_id"`
	URL     string    `json:"url"`
	Applied bool      `json:"applied"`
}

func (uc *UploadImageUseCase) Execute(ctx context.Context, in UploadImageInput) (*UploadImageOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadImage")
	defer span.End()

	if in.Identity == nil || in.Identity.UID == "" {
		return nil, apperror.NewNotAuthenticated("uploads require an identity")
	}
	if err := uc.validate(in); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("owner_id", in.Identity.UID), attribute.String("kind", string(in.Kind)))

	sess, err := uc.sessions.Open(ctx, in.Identity)
	if err != nil {
		return nil, err
	}
	if in.ProjectID != nil && !hasProject(sess.Snapshot(), *in.ProjectID) {
		return nil, apperror.NewNotFound("project", in.ProjectID.String())
	}

	mediaID := uuid.New()
	folder := in.Identity.UID + "/" + in.Kind.Folder()
	publicID := fmt.Sprintf("%d_%s", uc.now().UnixMilli(), baseName(in.Filename))
	l := uc.logger.With(zap.String("owner_id", in.Identity.UID), zap.String("media_id", mediaID.String()))

	url, err := uc.uploader.Upload(ctx, in.File, folder, publicID)
	if err != nil {
		l.Warn("Image upload failed, keeping previous value", zap.Error(err))
		span.RecordError(err)
		return nil, apperror.NewUploadError("failed to upload image", err)
	}
	fullPublicID := folder + "/" + publicID

	now := uc.now().UTC()
	record := &media.Media{
		ID:       mediaID,
		OwnerID:  in.Identity.UID,
		Kind:     in.Kind,
		Provider: ProviderCloudinary,
		URL:      url,
		Status:   media.StatusPending,
		Metadata: map[string]any{
			"original_url":       url,
			"original_public_id": fullPublicID,
			"filename":           in.Filename,
			"size":               in.Size,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.mediaRepo.Save(ctx, record); err != nil {
		go func() {
			if derr := uc.uploader.Delete(context.Background(), fullPublicID); derr != nil {
				l.Error("Failed to remove orphaned upload", derr)
			}
		}()
		return nil, err
	}

	out := &UploadImageOutput{MediaID: mediaID, URL: url}
	switch {
	case in.Kind == media.KindAvatar:
		if err := sess.SetField(portfolio.FieldAvatarURL, url); err != nil {
			return nil, err
		}
		out.Applied = true
	case in.ProjectID != nil:
		out.Applied = sess.SetProjectImage(*in.ProjectID, url)
	}

	go func() {
		payload := event.MediaEventPayload{
			EventType:        event.MediaEventTypeUploaded,
			MediaID:          record.ID,
			OwnerID:          record.OwnerID,
			Kind:             string(record.Kind),
			Provider:         record.Provider,
			OriginalURL:      url,
			OriginalPublicID: fullPublicID,
		}
		if err := uc.publisher.PublishMediaEvent(context.Background(), payload); err != nil {
			l.Error("Failed to publish Kafka 'media.uploaded' event", err)
		}
	}()

	l.Info("Image uploaded", zap.String("kind", string(in.Kind)), zap.Bool("applied", out.Applied))
	return out, nil
}

func (uc *UploadImageUseCase) validate(in UploadImageInput) error {
	if _, ok := media.ParseKind(string(in.Kind)); !ok {
		return apperror.NewInvalidInput(fmt.Sprintf("unknown upload kind %q", in.Kind), nil)
	}
	if in.File == nil || in.Size <= 0 {
		return apperror.NewInvalidInput("no file provided", nil)
	}
	if limit := uc.limits.For(in.Kind); limit > 0 && in.Size > limit {
		return apperror.NewInvalidInput(fmt.Sprintf("image must be less than %dMB", limit/(1024*1024)), nil)
	}
	if in.ProjectID != nil && in.Kind != media.KindProject {
		return apperror.NewInvalidInput("project id is only valid for project images", nil)
	}
	return nil
}

func hasProject(p *portfolio.Portfolio, id portfolio.ID) bool {
	for _, pr := range p.Projects {
		if pr.ID == id {
			return true
		}
	}
	return false
}

// baseName strips directories and the extension and keeps characters that
// are safe in a storage public id.
func baseName(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	if i := strings.LastIndex(filename, "."); i > 0 {
		filename = filename[:i]
	}
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, filename)
	if name == "" {
		return "image"
	}
	return name
}
