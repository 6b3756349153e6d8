package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type capturingPublisher struct {
	NopPublisher
	mu     sync.Mutex
	events []PortfolioEventPayload
}

func (p *capturingPublisher) PublishPortfolioEvent(_ context.Context, payload PortfolioEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return nil
}

func (p *capturingPublisher) Events() []PortfolioEventPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PortfolioEventPayload(nil), p.events...)
}

func TestPortfolioSavedHook_PublishesProgress(t *testing.T) {
	pub := &capturingPublisher{}
	hook := NewPortfolioSavedHook(pub, logger.NewNopLogger())

	doc := portfolio.New()
	doc.PersonalInfo = portfolio.PersonalInfo{Name: "Jane", Email: "j@x.com", Title: "Dev"}
	doc.AddSkill("Go")
	require.NoError(t, doc.SelectTemplate("minimal-clean"))
	doc.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	hook(context.Background(), "uid-1", doc)

	require.Eventually(t, func() bool { return len(pub.Events()) == 1 }, time.Second, 5*time.Millisecond)
	got := pub.Events()[0]
	assert.Equal(t, PortfolioEventTypeSaved, got.EventType)
	assert.Equal(t, "uid-1", got.OwnerID)
	assert.Equal(t, 2, got.CompletedCount)
	assert.Equal(t, 3, got.TotalCount)
	assert.Equal(t, "minimal-clean", got.TemplateID)
	assert.Equal(t, doc.UpdatedAt, got.UpdatedAt)
}
