package media_storage

import (
	"context"
	"errors"
	"io"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
)

var errUploadsDisabled = errors.New("image uploads are not configured")

type disabledUploader struct{}

// NewDisabledUploader stands in for Cloudinary when no credentials are set.
// Every call fails, so the upload endpoints answer with an upload error
// while the rest of the builder keeps working.
func NewDisabledUploader() service.Uploader {
	return disabledUploader{}
}

func (disabledUploader) Upload(context.Context, io.Reader, string, string) (string, error) {
	return "", errUploadsDisabled
}

func (disabledUploader) Delete(context.Context, string) error {
	return errUploadsDisabled
}

func (disabledUploader) TransformURL(string, string) (string, error) {
	return "", errUploadsDisabled
}
