package assetstore

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
)

// ErrNotFound is returned by Get for an unknown asset name.
var ErrNotFound = errors.New("asset not found")

// PublicPrefix is the URL path uploaded assets are served under.
const PublicPrefix = "/uploads/"

// Store persists uploaded files and hands back the public URL for each.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (url string, err error)
	Get(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// ContentType guesses a MIME type from the file extension, falling back to
// sniffing head.
func ContentType(name string, head []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(head)
}
