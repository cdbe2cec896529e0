// Package media stores post images on local disk. Objects are opaque: the
// store hands out identifiers and never inspects content.
package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultDir is the fallback media directory when none is configured.
const DefaultDir = "/tmp/snapgram/media"

// MaxObjectSize caps stored objects at 10 MB. The HTTP layer's body limit is
// derived from it so oversized uploads fail with the store's error message
// rather than a transport-level rejection.
const MaxObjectSize = 10 << 20

// DiskStore keeps media objects as flat files named by their ID.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the backing directory if needed and returns the store.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Put stores content and returns the new object's identifier. The extension of
// the original filename is kept so URLs stay recognizable to browsers.
func (s *DiskStore) Put(ctx context.Context, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(content) == 0 {
		return "", errors.New("empty media object")
	}
	if len(content) > MaxObjectSize {
		return "", fmt.Errorf("media object too large (%d bytes, max %d)", len(content), MaxObjectSize)
	}

	id := uuid.NewString()
	if ext := sanitizeExt(filename); ext != "" {
		id += ext
	}

	if err := os.WriteFile(filepath.Join(s.dir, id), content, 0o644); err != nil {
		return "", fmt.Errorf("failed to store media object: %w", err)
	}
	return id, nil
}

// Get returns the raw bytes of a stored object.
func (s *DiskStore) Get(ctx context.Context, imageID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.objectPath(imageID)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Remove deletes a stored object. Removing an object that is already gone is
// not an error; the caller only cares that it no longer exists.
func (s *DiskStore) Remove(ctx context.Context, imageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.objectPath(imageID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove media object %s: %w", imageID, err)
	}
	return nil
}

// objectPath validates the ID and resolves it inside the store directory.
func (s *DiskStore) objectPath(imageID string) (string, error) {
	if imageID == "" || strings.ContainsAny(imageID, `/\`) || strings.Contains(imageID, "..") {
		return "", fmt.Errorf("invalid media object id %q", imageID)
	}
	return filepath.Join(s.dir, imageID), nil
}

// sanitizeExt extracts a safe lowercase file extension, if any.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ""
	}
}
