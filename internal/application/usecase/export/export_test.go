package export

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/internal/application/autosave"
	"github.com/khoahotran/portfolio-builder/internal/application/builder"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

func newManager(t *testing.T) *builder.Manager {
	t.Helper()
	m := builder.NewManager(persistence.NewMemoryPortfolioStore(), builder.ManagerOptions{
		Autosave: autosave.Options{DebounceWindow: time.Hour},
	}, logger.NewNopLogger())
	t.Cleanup(func() { _ = m.Close(context.Background()) })
	return m
}

func TestExport_UsesLiveSessionModel(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t)
	id := &portfolio.Identity{UID: "uid-1", DisplayName: "Jane Doe", Email: "jane@example.com"}
	sess, err := manager.Open(ctx, id)
	require.NoError(t, err)
	require.True(t, sess.AddSkill("Go"))

	uc := NewExportUseCase(manager, logger.NewNopLogger())
	uc.now = func() time.Time { return time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC) }

	art, err := uc.Execute(ctx, ExportInput{Identity: id, Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, "portfolio_Jane_Doe_2026-05-06.json", art.Filename)

	var doc struct {
		Skills []string `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(art.Body, &doc))
	assert.Equal(t, []string{"Go"}, doc.Skills)
}

func TestExport_Errors(t *testing.T) {
	uc := NewExportUseCase(newManager(t), logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ExportInput{Identity: nil, Format: "pdf"})
	assert.ErrorIs(t, err, apperror.ErrNotAuthenticated)

	_, err = uc.Execute(context.Background(), ExportInput{Identity: &portfolio.Identity{UID: "u"}, Format: "docx"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestPreview_Viewport(t *testing.T) {
	uc := NewPreviewUseCase(newManager(t))

	vm, err := uc.Execute(context.Background(), &portfolio.Identity{UID: "u", Email: "sam@x.io"}, "tablet")

	require.NoError(t, err)
	assert.Equal(t, "768px", vm.Viewport.Width)
	assert.Equal(t, "sam", vm.Name)
}
