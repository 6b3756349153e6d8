package portfolio

import "context"

type SetOptions struct {
	// Merge keeps stored top-level fields the written document does not carry.
	Merge bool
}

// DocumentStore persists one portfolio document per user id. Get returns an
// error wrapping apperror.ErrNotFound when nothing is stored yet.
type DocumentStore interface {
	Get(ctx context.Context, userID string) (*Portfolio, error)
	Set(ctx context.Context, userID string, doc *Portfolio, opts SetOptions) error
}
