package contentstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vbonduro/paani/internal/domain"
)

// FileStore keeps the document as pretty-printed JSON in a single file.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Read(ctx context.Context) (*domain.PortfolioDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrIO, s.path, err)
	}
	return decode(data)
}

// Write creates the parent directory if needed and overwrites the file.
func (s *FileStore) Write(ctx context.Context, doc *domain.PortfolioDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrIO, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrIO, err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, s.path, err)
	}
	return nil
}

func decode(data []byte) (*domain.PortfolioDocument, error) {
	var doc domain.PortfolioDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	doc.Normalize()
	return &doc, nil
}
