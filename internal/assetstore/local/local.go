package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/vbonduro/paani/internal/assetstore"
)

var whitespace = regexp.MustCompile(`\s+`)

// AssetStore writes uploads into a directory served under a public URL
// prefix. File names are prefixed with the upload time in milliseconds.
type AssetStore struct {
	basePath  string
	urlPrefix string
	now       func() time.Time
}

var _ assetstore.Store = (*AssetStore)(nil)

// NewAssetStore does not touch the filesystem; the directory is created on
// the first Save.
func NewAssetStore(basePath, urlPrefix string) *AssetStore {
	if urlPrefix == "" {
		urlPrefix = assetstore.PublicPrefix
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &AssetStore{basePath: basePath, urlPrefix: urlPrefix, now: time.Now}
}

func (s *AssetStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%d-%s", s.now().UnixMilli(), normaliseName(name))
	filePath := filepath.Join(s.basePath, filename)

	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return s.urlPrefix + filename, nil
}

func (s *AssetStore) Get(ctx context.Context, name string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(name)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", assetstore.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, "", fmt.Errorf("failed to rewind file: %w", err)
	}
	return f, assetstore.ContentType(filePath, head[:n]), nil
}

// safeJoin resolves name relative to basePath and rejects directory traversal.
func (s *AssetStore) safeJoin(name string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, name))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}

// normaliseName drops any directory part of an uploaded file name and
// replaces whitespace runs with '-'.
func normaliseName(name string) string {
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." {
		name = "upload"
	}
	return whitespace.ReplaceAllString(name, "-")
}
