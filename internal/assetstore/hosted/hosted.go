package hosted

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/vbonduro/paani/internal/assetstore"
	"github.com/vbonduro/paani/internal/kv"
)

const keyPrefix = "asset:"

// AssetStore keeps uploads in the hosted key-value store under their raw file
// name, so a second upload with the same name replaces the first. Assets are
// publicly readable at baseURL + /uploads/<name>.
type AssetStore struct {
	kv      kv.Store
	baseURL string
}

var _ assetstore.Store = (*AssetStore)(nil)

func NewAssetStore(store kv.Store, baseURL string) *AssetStore {
	return &AssetStore{kv: store, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *AssetStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if name == "" {
		return "", fmt.Errorf("asset name is required")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := s.kv.Set(ctx, keyPrefix+name, data); err != nil {
		return "", fmt.Errorf("failed to store asset: %w", err)
	}
	return s.baseURL + assetstore.PublicPrefix + url.PathEscape(name), nil
}

func (s *AssetStore) Get(ctx context.Context, name string) (io.ReadCloser, string, error) {
	data, err := s.kv.Get(ctx, keyPrefix+name)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, "", assetstore.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load asset: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), assetstore.ContentType(name, data), nil
}
