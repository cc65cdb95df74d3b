// Package storage keeps annual report files on the local filesystem or in
// an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"kada-admin/internal/config"
)

var (
	// ErrObjectNotFound is returned when no object exists under a key
	ErrObjectNotFound = errors.New("object not found")
	// ErrObjectExists is returned by Put when the key is already taken
	ErrObjectExists = errors.New("object already exists")
)

// Object describes a stored file
type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// FileStore is a flat key/value store for files. Keys use forward
// slashes and never start with one.
type FileStore interface {
	// Put stores r under key and returns the number of bytes written.
	// It never overwrites an existing object.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	// Get opens the object. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Object, error)
}

// New opens the store selected by STORAGE_DRIVER
func New(ctx context.Context, cfg config.StorageConfig) (FileStore, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	case "local", "":
		return NewLocalStore(cfg.LocalRoot)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// cleanKey rejects keys that are empty, absolute or escape the root
func cleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	clean := path.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return clean, nil
}
