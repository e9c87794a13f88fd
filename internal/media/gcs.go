package media

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCSUploader hosts media in a Cloud Storage bucket. Object URLs use the
// public storage.googleapis.com form.
type GCSUploader struct {
	client *storage.Client
	bucket string
}

// NewGCSUploader creates a GCSUploader for the given bucket.
func NewGCSUploader(client *storage.Client, bucket string) *GCSUploader {
	return &GCSUploader{client: client, bucket: bucket}
}

func (u *GCSUploader) Upload(ctx context.Context, payload []byte, contentType string) (string, error) {
	key := uuid.NewString() + extensionFor(contentType)

	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(payload); err != nil {
		w.Close()
		return "", fmt.Errorf("write to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close storage writer: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, key), nil
}

func (u *GCSUploader) Destroy(ctx context.Context, url string) error {
	key := u.keyFromURL(url)
	if key == "" {
		return fmt.Errorf("url %q does not belong to bucket %s", url, u.bucket)
	}
	if err := u.client.Bucket(u.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (u *GCSUploader) keyFromURL(url string) string {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", u.bucket)
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
