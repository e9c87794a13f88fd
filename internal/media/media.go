// Package media is the boundary to the image hosting collaborator. The engine
// stores only the durable URL a hoster returns, never raw bytes.
package media

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/kumarharsh-connect/talehaven/internal/apperrors"
)

// Uploader hosts binary payloads and destroys them by URL.
type Uploader interface {
	Upload(ctx context.Context, payload []byte, contentType string) (string, error)
	Destroy(ctx context.Context, url string) error
}

// DecodePayload accepts either a data URI ("data:image/png;base64,....") or a
// bare base64 string and returns the raw bytes plus content type.
func DecodePayload(payload string) ([]byte, string, error) {
	contentType := "application/octet-stream"
	data := payload
	if strings.HasPrefix(payload, "data:") {
		rest := strings.TrimPrefix(payload, "data:")
		semi := strings.Index(rest, ";base64,")
		if semi < 0 {
			return nil, "", apperrors.InvalidArgument("unsupported image payload encoding")
		}
		contentType = rest[:semi]
		data = rest[semi+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", apperrors.InvalidArgument("image payload is not valid base64")
	}
	return raw, contentType, nil
}

// extensionFor maps a content type to a file extension for object keys.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
