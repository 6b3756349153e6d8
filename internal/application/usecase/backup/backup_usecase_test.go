package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
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

type captureUploader struct {
	folder, publicID string
	body             []byte
	err              error
}

func (u *captureUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.folder, u.publicID = folder, publicID
	u.body, _ = io.ReadAll(file)
	return "https://cdn.test/" + folder + "/" + publicID, nil
}

func (u *captureUploader) Delete(context.Context, string) error { return nil }

func (u *captureUploader) TransformURL(string, string) (string, error) { return "", nil }

func newManager(t *testing.T) *builder.Manager {
	t.Helper()
	m := builder.NewManager(persistence.NewMemoryPortfolioStore(), builder.ManagerOptions{
		Autosave: autosave.Options{DebounceWindow: time.Hour},
	}, logger.NewNopLogger())
	t.Cleanup(func() { _ = m.Close(context.Background()) })
	return m
}

func TestBackup_UploadsJSONExport(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t)
	id := &portfolio.Identity{UID: "uid-1", DisplayName: "Jane Doe"}
	sess, err := manager.Open(ctx, id)
	require.NoError(t, err)
	require.True(t, sess.AddSkill("Go"))

	up := &captureUploader{}
	uc := NewBackupUseCase(manager, up, logger.NewNopLogger())
	uc.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	out, err := uc.Execute(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "uid-1/backups", up.folder)
	assert.Equal(t, "backup-2026-03-04_05-06-07", up.publicID)
	assert.Equal(t, "uid-1/backups/backup-2026-03-04_05-06-07", out.PublicID)
	assert.Equal(t, "https://cdn.test/uid-1/backups/backup-2026-03-04_05-06-07", out.URL)

	var doc struct {
		Skills []string `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(up.body, &doc))
	assert.Equal(t, []string{"Go"}, doc.Skills)
}

func TestBackup_UploadFailure(t *testing.T) {
	uc := NewBackupUseCase(newManager(t), &captureUploader{err: errors.New("quota exceeded")}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), &portfolio.Identity{UID: "uid-2"})
	assert.ErrorIs(t, err, apperror.ErrUpload)

	_, err = uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, apperror.ErrNotAuthenticated)
}
