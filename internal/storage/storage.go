// Package storage reads play logs dropped into the ingest bucket, either on
// an S3 compatible service (S3, B2, MinIO) or a local directory.
package storage

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"radio-charts/internal/config"
)

type Client struct {
	backend      Provider
	bucketIngest string
}

func New(cfg *config.Config) (*Client, error) {
	var backend Provider

	switch cfg.Storage.Provider {
	case "local":
		backend = NewLocalProvider(cfg.Storage.LocalPath)
	case "s3", "b2":
		sess, err := session.NewSession(&aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Storage.KeyID, cfg.Storage.AppKey, ""),
			Endpoint:         aws.String(cfg.Storage.Endpoint),
			Region:           aws.String(cfg.Storage.Region),
			S3ForcePathStyle: aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("storage session: %w", err)
		}
		backend = NewS3Provider(sess)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}

	return NewWithProvider(backend, cfg.Storage.BucketIngest), nil
}

// NewWithProvider builds a Client over an existing backend.
func NewWithProvider(backend Provider, bucketIngest string) *Client {
	return &Client{backend: backend, bucketIngest: bucketIngest}
}

// ListIngestFiles returns the keys waiting in the ingest bucket, sorted so
// older, lexically earlier drops are processed first.
func (c *Client) ListIngestFiles(ctx context.Context) ([]string, error) {
	keys, err := c.backend.List(ctx, c.bucketIngest, "")
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (c *Client) DownloadIngestFile(ctx context.Context, key string) (*FileObject, error) {
	return c.backend.Get(ctx, c.bucketIngest, key)
}

func (c *Client) UploadIngestFile(ctx context.Context, key string, body io.ReadSeeker, contentType string) error {
	return c.backend.Put(ctx, c.bucketIngest, key, body, contentType)
}

func (c *Client) DeleteIngestFile(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, c.bucketIngest, key)
}
