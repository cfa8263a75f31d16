package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

// FileStorage stores generated documents under slash-separated keys.
type FileStorage interface {
	// Put writes r at key, replacing any existing object, and returns the key.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
	URL(key string) string
	Exists(ctx context.Context, key string) (bool, error)
}
