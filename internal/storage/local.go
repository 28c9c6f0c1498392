package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

type LocalProvider struct {
	// RootPath is the directory where buckets are simulated (e.g., "./data")
	RootPath string
}

func NewLocalProvider(root string) *LocalProvider {
	_ = os.MkdirAll(root, 0755)
	return &LocalProvider{RootPath: root}
}

func (l *LocalProvider) path(bucket, key string) string {
	return filepath.Join(l.RootPath, bucket, filepath.FromSlash(key))
}

func (l *LocalProvider) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	bucketPath := filepath.Join(l.RootPath, bucket)

	err := filepath.WalkDir(bucketPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == bucketPath {
				return filepath.SkipDir
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		// Keys use forward slashes, as on S3.
		rel, err := filepath.Rel(bucketPath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})

	return keys, err
}

func (l *LocalProvider) Get(ctx context.Context, bucket, key string) (*FileObject, error) {
	f, err := os.Open(l.path(bucket, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &FileObject{
		Body:          f,
		ContentLength: stat.Size(),
		ContentType:   contentType,
		LastModified:  stat.ModTime(),
	}, nil
}

func (l *LocalProvider) Put(ctx context.Context, bucket, key string, body io.ReadSeeker, contentType string) error {
	path := l.path(bucket, key)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, body)
	return err
}

func (l *LocalProvider) Delete(ctx context.Context, bucket, key string) error {
	err := os.Remove(l.path(bucket, key))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotExist
	}
	return err
}
