package persistence

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/domain/media"
	"github.com/khoahotran/portfolio-builder/internal/domain/user"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

// MemoryUserRepo backs accounts for the "memory" store driver.
type MemoryUserRepo struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{byEmail: make(map[string]user.User)}
}

func (r *MemoryUserRepo) Create(_ context.Context, u *user.User) error {
	email := strings.ToLower(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return apperror.NewConflict("user", "email", u.Email)
	}
	stored := *u
	stored.Email = email
	r.byEmail[email] = stored
	return nil
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return &u, nil
}

// MemoryMediaRepo backs media records for the "memory" store driver.
type MemoryMediaRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]media.Media
}

func NewMemoryMediaRepo() *MemoryMediaRepo {
	return &MemoryMediaRepo{items: make(map[uuid.UUID]media.Media)}
}

func (r *MemoryMediaRepo) Save(_ context.Context, m *media.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[m.ID]; ok {
		return apperror.NewConflict("media", "id", m.ID.String())
	}
	r.items[m.ID] = *m
	return nil
}

func (r *MemoryMediaRepo) Update(_ context.Context, m *media.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[m.ID]
	if !ok || cur.OwnerID != m.OwnerID {
		return apperror.NewNotFound("media", m.ID.String())
	}
	r.items[m.ID] = *m
	return nil
}

func (r *MemoryMediaRepo) FindByID(_ context.Context, id uuid.UUID, ownerID string) (*media.Media, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok || m.OwnerID != ownerID {
		return nil, apperror.NewNotFound("media", id.String())
	}
	return &m, nil
}

func (r *MemoryMediaRepo) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*media.Media, error) {
	r.mu.RLock()
	out := make([]*media.Media, 0)
	for _, m := range r.items {
		if m.OwnerID == ownerID {
			m := m
			out = append(out, &m)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *media.Media) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if offset >= len(out) {
		return []*media.Media{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
