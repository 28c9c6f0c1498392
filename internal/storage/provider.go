package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotExist is returned by Get and Delete when the key is missing.
var ErrNotExist = errors.New("storage: object does not exist")

// Provider defines the behavior for any storage backend.
type Provider interface {
	List(ctx context.Context, bucket, prefix string) ([]string, error)
	Get(ctx context.Context, bucket, key string) (*FileObject, error)
	Put(ctx context.Context, bucket, key string, body io.ReadSeeker, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
}

// FileObject is the provider-agnostic representation of a file.
type FileObject struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
	LastModified  time.Time
}
