package contentstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/vbonduro/paani/internal/domain"
)

var (
	// ErrNotFound means no backend holds a document.
	ErrNotFound = errors.New("portfolio document not found")
	// ErrCorrupt means the stored bytes are not a valid JSON document.
	ErrCorrupt = errors.New("portfolio document is corrupt")
	// ErrIO wraps read and write failures of the underlying storage.
	ErrIO = errors.New("portfolio storage failure")
)

// Store persists exactly one PortfolioDocument. Write replaces the stored
// document wholesale; concurrent writers are last-write-wins.
type Store interface {
	Read(ctx context.Context) (*domain.PortfolioDocument, error)
	Write(ctx context.Context, doc *domain.PortfolioDocument) error
}

// Seed writes an empty document when the store has none, or unconditionally
// when force is set. It reports whether a document was written.
func Seed(ctx context.Context, s Store, force bool) (bool, error) {
	if !force {
		_, err := s.Read(ctx)
		switch {
		case err == nil:
			return false, nil
		case !errors.Is(err, ErrNotFound):
			return false, fmt.Errorf("failed to check existing document: %w", err)
		}
	}
	if err := s.Write(ctx, domain.NewPortfolioDocument()); err != nil {
		return false, fmt.Errorf("failed to write seed document: %w", err)
	}
	return true, nil
}
