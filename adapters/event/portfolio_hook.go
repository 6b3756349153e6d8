package event

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/autosave"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const publishTimeout = 5 * time.Second

// NewPortfolioSavedHook emits portfolio.saved after every stored write. The
// publish runs in the background so a slow broker never delays a save.
func NewPortfolioSavedHook(pub Publisher, log logger.Logger) autosave.SavedHook {
	return func(_ context.Context, userID string, doc *portfolio.Portfolio) {
		progress := portfolio.SectionProgress(doc)
		payload := PortfolioEventPayload{
			EventType:      PortfolioEventTypeSaved,
			OwnerID:        userID,
			UpdatedAt:      doc.UpdatedAt,
			CompletedCount: progress.CompletedCount,
			TotalCount:     progress.TotalCount,
		}
		if doc.Template != nil {
			payload.TemplateID = doc.Template.ID
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			if err := pub.PublishPortfolioEvent(ctx, payload); err != nil {
				log.Error("Failed to publish Kafka 'portfolio.saved' event", err, zap.String("owner_id", userID))
			}
		}()
	}
}
