package builder

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/khoahotran/portfolio-builder/internal/application/autosave"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type ManagerOptions struct {
	Autosave    autosave.Options
	LoadTimeout time.Duration
}

// Manager keeps one live session per user. Sessions are created lazily on
// first access and concurrent first accesses share a single load.
type Manager struct {
	store  portfolio.DocumentStore
	opts   ManagerOptions
	logger logger.Logger

	loads singleflight.Group

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store portfolio.DocumentStore, opts ManagerOptions, log logger.Logger) *Manager {
	return &Manager{
		store:    store,
		opts:     opts,
		logger:   log,
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) lookup(uid string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[uid]
}

// Open returns the user's session, loading the portfolio on first use.
func (m *Manager) Open(ctx context.Context, id *portfolio.Identity) (*Session, error) {
	if id == nil || id.UID == "" {
		return nil, apperror.NewNotAuthenticated("cannot open a builder session without an identity")
	}
	if s := m.lookup(id.UID); s != nil {
		return s, nil
	}

	v, err, _ := m.loads.Do(id.UID, func() (any, error) {
		if s := m.lookup(id.UID); s != nil {
			return s, nil
		}
		model, source, err := Load(ctx, m.store, id, m.opts.LoadTimeout, m.logger)
		if err != nil {
			return nil, err
		}
		s := NewSession(*id, model, m.store, m.opts.Autosave, m.logger)
		var savedAt time.Time
		if source == LoadedFromStore {
			savedAt = model.UpdatedAt
		}
		s.autosave.MarkLoaded(savedAt)

		m.mu.Lock()
		m.sessions[id.UID] = s
		m.mu.Unlock()

		m.logger.Info("Builder session opened", zap.String("owner_id", id.UID), zap.String("source", string(source)))
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Evict flushes and forgets one user's session.
func (m *Manager) Evict(ctx context.Context, uid string) error {
	m.mu.Lock()
	s, ok := m.sessions[uid]
	delete(m.sessions, uid)
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return s.Close(ctx)
}

// Close flushes every session. Used on shutdown.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var errs []error
	for uid, s := range sessions {
		if err := s.Close(ctx); err != nil {
			m.logger.Error("Failed to flush session on close", err, zap.String("owner_id", uid))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
