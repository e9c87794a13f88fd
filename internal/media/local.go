package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalUploader stores media on the local filesystem, for development and
// tests. URLs are baseURL + "/" + filename.
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader creates a LocalUploader rooted at dir.
func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalUploader{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (u *LocalUploader) Upload(_ context.Context, payload []byte, contentType string) (string, error) {
	name := uuid.NewString() + extensionFor(contentType)
	path := filepath.Join(u.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return u.baseURL + "/" + name, nil
}

func (u *LocalUploader) Destroy(_ context.Context, url string) error {
	if !strings.HasPrefix(url, u.baseURL+"/") {
		return fmt.Errorf("url %q is not local media", url)
	}
	name := filepath.Base(strings.TrimPrefix(url, u.baseURL+"/"))
	if err := os.Remove(filepath.Join(u.dir, name)); err != nil {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}
