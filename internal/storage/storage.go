// Package storage defines the object-store contract the document pipeline
// writes rebuilt files through.
package storage

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to store an object.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
}

// ObjectStorage abstracts where rebuilt documents end up.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	GetURL(ctx context.Context, key string) (string, error)
}
