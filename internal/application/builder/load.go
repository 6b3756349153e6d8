package builder

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var tracer = otel.Tracer("builder")

type LoadSource string

const (
	LoadedFromStore LoadSource = "store"
	SeededNew       LoadSource = "seeded"
	// SeededFallback means the store could not be read and defaults were used.
	SeededFallback LoadSource = "fallback"
)

// Load fetches the user's portfolio or seeds a fresh one from the identity.
// Store failures fall back to the seeded model rather than failing.
func Load(ctx context.Context, store portfolio.DocumentStore, id *portfolio.Identity, timeout time.Duration, log logger.Logger) (*portfolio.Portfolio, LoadSource, error) {
	if id == nil || id.UID == "" {
		return nil, "", apperror.NewNotAuthenticated("cannot load a portfolio without an identity")
	}

	ctx, span := tracer.Start(ctx, "builder.Load")
	defer span.End()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	doc, err := store.Get(ctx, id.UID)
	switch {
	case err == nil:
		doc.Normalize()
		return doc, LoadedFromStore, nil
	case errors.Is(err, apperror.ErrNotFound):
		return portfolio.Seed(*id), SeededNew, nil
	default:
		span.RecordError(err)
		log.Warn("Portfolio load failed, using defaults", zap.String("owner_id", id.UID), zap.Error(err))
		return portfolio.Seed(*id), SeededFallback, nil
	}
}
