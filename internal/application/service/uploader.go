package service

import (
	"context"
	"io"
)

// Uploader stores image blobs and derives transformed variants of them.
type Uploader interface {
	// Upload stores file as folder/publicID and returns its public URL.
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
	// TransformURL builds the URL of a stored image with a transformation
	// applied, e.g. "c_fill,w_400,h_400".
	TransformURL(publicID, transformation string) (string, error)
}
