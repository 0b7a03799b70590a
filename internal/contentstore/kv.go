package contentstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vbonduro/paani/internal/domain"
	"github.com/vbonduro/paani/internal/kv"
)

// DefaultKey is the key the document lives under in the hosted store.
const DefaultKey = "portfolio"

// KVStore keeps the document in a hosted key-value store. Reads fall back to
// the bundled file when the key lookup fails or is empty; writes go to the
// key-value store only.
type KVStore struct {
	kv       kv.Store
	key      string
	fallback Store
	logger   *slog.Logger
}

var _ Store = (*KVStore)(nil)

func NewKVStore(store kv.Store, key string, fallback Store, logger *slog.Logger) *KVStore {
	if key == "" {
		key = DefaultKey
	}
	return &KVStore{kv: store, key: key, fallback: fallback, logger: logger}
}

func (s *KVStore) Read(ctx context.Context) (*domain.PortfolioDocument, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err == nil && len(data) > 0 {
		return decode(data)
	}
	switch {
	case err == nil, errors.Is(err, kv.ErrNotFound):
		s.logger.Debug("hosted store key empty, using bundled file", "key", s.key)
	default:
		s.logger.Warn("hosted store lookup failed, using bundled file", "key", s.key, "error", err)
	}

	if s.fallback == nil {
		return nil, ErrNotFound
	}
	return s.fallback.Read(ctx)
}

func (s *KVStore) Write(ctx context.Context, doc *domain.PortfolioDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrIO, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
