package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-builder/adapters/event"
	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/internal/application/autosave"
	"github.com/khoahotran/portfolio-builder/internal/application/builder"
	"github.com/khoahotran/portfolio-builder/internal/domain/media"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
	deleted []string
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads = append(u.uploads, folder+"/"+publicID)
	return "https://cdn.test/" + folder + "/" + publicID + ".png", nil
}

func (u *fakeUploader) Delete(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, publicID)
	return nil
}

func (u *fakeUploader) TransformURL(publicID, transformation string) (string, error) {
	return "https://cdn.test/" + transformation + "/" + publicID, nil
}

type mediaEvents struct {
	event.NopPublisher
	mu     sync.Mutex
	events []event.MediaEventPayload
}

func (p *mediaEvents) PublishMediaEvent(_ context.Context, payload event.MediaEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return nil
}

func (p *mediaEvents) Events() []event.MediaEventPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.MediaEventPayload(nil), p.events...)
}

type UploadImageTestSuite struct {
	suite.Suite
	manager  *builder.Manager
	repo     *persistence.MemoryMediaRepo
	uploader *fakeUploader
	events   *mediaEvents
	uc       *UploadImageUseCase
	identity *portfolio.Identity
}

func (s *UploadImageTestSuite) SetupTest() {
	log := logger.NewNopLogger()
	s.manager = builder.NewManager(persistence.NewMemoryPortfolioStore(), builder.ManagerOptions{
		Autosave: autosave.Options{DebounceWindow: time.Hour},
	}, log)
	s.repo = persistence.NewMemoryMediaRepo()
	s.uploader = &fakeUploader{}
	s.events = &mediaEvents{}
	s.uc = NewUploadImageUseCase(s.manager, s.repo, s.uploader, s.events,
		Limits{AvatarMaxBytes: 2 << 20, ProjectImageMaxBytes: 5 << 20}, log)
	s.uc.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	s.identity = &portfolio.Identity{UID: "uid-1", Email: "jane@example.com"}
}

func (s *UploadImageTestSuite) TearDownTest() {
	s.NoError(s.manager.Close(context.Background()))
}

func TestUploadImageSuite(t *testing.T) {
	suite.Run(t, new(UploadImageTestSuite))
}

func (s *UploadImageTestSuite) input(kind media.Kind, size int64) UploadImageInput {
	return UploadImageInput{
		Identity: s.identity,
		Kind:     kind,
		Filename: `C:\photos\me at work.PNG`,
		Size:     size,
		File:     strings.NewReader("png-bytes"),
	}
}

func (s *UploadImageTestSuite) Test_AvatarSetsAvatarURL() {
	ctx := context.Background()

	out, err := s.uc.Execute(ctx, s.input(media.KindAvatar, 1024))

	s.Require().NoError(err)
	s.True(out.Applied)
	s.Equal([]string{"uid-1/avatars/1700000000000_me_at_work"}, s.uploader.uploads)

	sess, err := s.manager.Open(ctx, s.identity)
	s.Require().NoError(err)
	s.Equal(out.URL, sess.Snapshot().PersonalInfo.AvatarURL)

	stored, err := s.repo.FindByID(ctx, out.MediaID, "uid-1")
	s.Require().NoError(err)
	s.Equal(media.StatusPending, stored.Status)
	s.Equal("uid-1/avatars/1700000000000_me_at_work", stored.Metadata["original_public_id"])

	s.Eventually(func() bool { return len(s.events.Events()) == 1 }, time.Second, 5*time.Millisecond)
	s.Equal(event.MediaEventTypeUploaded, s.events.Events()[0].EventType)
}

func (s *UploadImageTestSuite) Test_OversizeIsRejectedBeforeUpload() {
	_, err := s.uc.Execute(context.Background(), s.input(media.KindAvatar, 3<<20))

	s.ErrorIs(err, apperror.ErrInvalidInput)
	s.Empty(s.uploader.uploads)

	_, err = s.uc.Execute(context.Background(), s.input(media.KindProject, 3<<20))
	s.NoError(err)
}

func (s *UploadImageTestSuite) Test_UploadFailureKeepsPreviousAvatar() {
	ctx := context.Background()
	sess, err := s.manager.Open(ctx, s.identity)
	s.Require().NoError(err)
	s.Require().NoError(sess.SetField(portfolio.FieldAvatarURL, "https://old.test/me.png"))
	s.uploader.err = errors.New("network down")

	_, err = s.uc.Execute(ctx, s.input(media.KindAvatar, 1024))

	s.ErrorIs(err, apperror.ErrUpload)
	s.Equal("https://old.test/me.png", sess.Snapshot().PersonalInfo.AvatarURL)
}

func (s *UploadImageTestSuite) Test_ProjectImageTargetsExistingProject() {
	ctx := context.Background()
	sess, err := s.manager.Open(ctx, s.identity)
	s.Require().NoError(err)
	pr, err := sess.AddProject(portfolio.ProjectDraft{Title: "Ledger", Description: "Books"})
	s.Require().NoError(err)

	in := s.input(media.KindProject, 1024)
	in.ProjectID = &pr.ID
	out, err := s.uc.Execute(ctx, in)
	s.Require().NoError(err)
	s.True(out.Applied)
	s.Equal(out.URL, sess.Snapshot().Projects[0].ImageURL)

	missing := pr.ID + 1000
	in = s.input(media.KindProject, 1024)
	in.ProjectID = &missing
	_, err = s.uc.Execute(ctx, in)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *UploadImageTestSuite) Test_RequiresIdentity() {
	in := s.input(media.KindAvatar, 1024)
	in.Identity = nil

	_, err := s.uc.Execute(context.Background(), in)

	s.ErrorIs(err, apperror.ErrNotAuthenticated)
}

func TestProcessMedia_MarksReady(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemoryMediaRepo()
	m := &media.Media{ID: [16]byte{1}, OwnerID: "uid-1", Kind: media.KindAvatar, Status: media.StatusPending}
	require.NoError(t, repo.Save(ctx, m))
	uc := NewProcessMediaUseCase(repo, &fakeUploader{}, logger.NewNopLogger())

	err := uc.Execute(ctx, event.MediaEventPayload{
		EventType:        event.MediaEventTypeUploaded,
		MediaID:          m.ID,
		OwnerID:          "uid-1",
		OriginalPublicID: "uid-1/avatars/1_me",
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, m.ID, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, media.StatusReady, got.Status)
	require.NotNil(t, got.ThumbnailURL)
	assert.Equal(t, "https://cdn.test/c_fill,g_auto,w_400,h_400/uid-1/avatars/1_me", *got.ThumbnailURL)

	assert.NoError(t, uc.Execute(ctx, event.MediaEventPayload{
		EventType: event.MediaEventTypeUploaded, MediaID: [16]byte{9}, OwnerID: "uid-1",
	}), "missing media is skipped")
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "me_at_work", baseName(`C:\photos\me at work.PNG`))
	assert.Equal(t, "archive_tar", baseName("dir/archive.tar.gz"))
	assert.Equal(t, "_hidden", baseName(".hidden"))
	assert.Equal(t, "image", baseName(""))
}
