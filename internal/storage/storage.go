// Package storage stores uploaded resume and cover-letter files in an
// object store and hands back opaque paths. The rest of the system never
// inspects file bytes; it only carries the returned path.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// uploadPathPrefix is the URL prefix under which stored objects are served
// back to callers.
const uploadPathPrefix = "/uploads/"

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Storage wraps an ObjectStorage backend with a stable API.
type Storage struct {
	backend ObjectStorage
}

// NewStorage constructs a Storage wrapper for the provided backend.
func NewStorage(backend ObjectStorage) *Storage {
	return &Storage{backend: backend}
}

// EnsureBucket ensures the configured bucket exists.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Put uploads an object to the configured bucket.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return s.backend.Put(ctx, key, r, size, contentType)
}

// Get opens a reader for an object in the configured bucket.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.backend.Get(ctx, key)
}

// Delete removes an object from the configured bucket.
func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

// Bucket returns the configured bucket name.
func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}

// NewObjectKey generates a unique key for an uploaded file. The timestamp
// plus random suffix scheme keeps concurrent uploads from colliding without
// any coordination; only the original file extension is preserved.
func NewObjectKey(kind, filename string) string {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%d-%s%s", kind, time.Now().UnixNano(), hex.EncodeToString(buf[:]), ext)
}

// PathForKey returns the serving path stored on records for an object key.
func PathForKey(key string) string {
	return uploadPathPrefix + key
}

// KeyFromPath recovers the object key from a stored serving path.
func KeyFromPath(p string) string {
	return strings.TrimPrefix(p, uploadPathPrefix)
}
