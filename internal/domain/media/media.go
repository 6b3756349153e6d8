package media

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type MediaStatus string

const (
	StatusPending MediaStatus = "pending"
	StatusReady   MediaStatus = "ready"
	StatusError   MediaStatus = "error"
)

// Kind says which portfolio field an upload belongs to.
type Kind string

const (
	KindAvatar  Kind = "avatar"
	KindProject Kind = "project"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindAvatar, KindProject:
		return k, true
	}
	return "", false
}

// Folder is the per-kind path segment under the owner's upload root.
func (k Kind) Folder() string {
	if k == KindAvatar {
		return "avatars"
	}
	return "projects"
}

// Media records one uploaded image. OwnerID is the identity uid.
type Media struct {
	ID           uuid.UUID      `json:"id"`
	OwnerID      string         `json:"owner_id"`
	Kind         Kind           `json:"kind"`
	Provider     string         `json:"provider"`
	URL          string         `json:"url"`
	ThumbnailURL *string        `json:"thumbnail_url"`
	Status       MediaStatus    `json:"status"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type Repository interface {
	Save(ctx context.Context, m *Media) error
	Update(ctx context.Context, m *Media) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*Media, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Media, error)
}
