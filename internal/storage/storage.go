// Package storage keeps uploaded files (college logos, student photos) in object storage.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

type Storage interface {
	// Upload stores the object and returns its public URL
	Upload(ctx context.Context, key, contentType string, data io.Reader) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ObjectKey builds a unique key under prefix, keeping the file extension
func ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}
