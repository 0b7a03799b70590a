package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/paani/internal/assetstore"
	"github.com/vbonduro/paani/internal/assetstore/hosted"
	"github.com/vbonduro/paani/internal/assetstore/local"
	"github.com/vbonduro/paani/internal/chat"
	claudechat "github.com/vbonduro/paani/internal/chat/claude"
	geminichat "github.com/vbonduro/paani/internal/chat/gemini"
	"github.com/vbonduro/paani/internal/config"
	"github.com/vbonduro/paani/internal/contentstore"
	"github.com/vbonduro/paani/internal/kv"
	"github.com/vbonduro/paani/internal/kv/redis"
	"github.com/vbonduro/paani/internal/kv/sqlite"
)

type backends struct {
	content        contentstore.Store
	assets         assetstore.Store
	writesDisabled bool
	kv             kv.Store
}

func (b *backends) Close() error {
	if b.kv == nil {
		return nil
	}
	return b.kv.Close()
}

// openBackends picks the storage for this deployment. Production keeps the
// document and uploads in the key-value store; development uses local files.
func openBackends(cfg *config.Config, logger *slog.Logger) (*backends, error) {
	file := contentstore.NewFileStore(cfg.ContentPath)

	if !cfg.IsProduction() {
		if cfg.ReadOnlyFS {
			logger.Warn("filesystem is read-only; portfolio writes are disabled")
		}
		logger.Info("using local storage", "content", cfg.ContentPath, "uploads", cfg.UploadDir)
		return &backends{
			content:        file,
			assets:         local.NewAssetStore(cfg.UploadDir, assetstore.PublicPrefix),
			writesDisabled: cfg.ReadOnlyFS,
		}, nil
	}

	store, err := openKV(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &backends{
		content: contentstore.NewKVStore(store, cfg.ContentKey, file, logger),
		assets:  hosted.NewAssetStore(store, cfg.PublicBaseURL),
		kv:      store,
	}, nil
}

func openKV(cfg *config.Config, logger *slog.Logger) (kv.Store, error) {
	switch cfg.KVBackend {
	case "sqlite":
		logger.Info("using sqlite key-value store", "path", cfg.SQLitePath)
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	case "redis":
		logger.Info("using redis key-value store", "addr", cfg.RedisAddr)
		store, err := redis.Open(redis.Config{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}
}

// newResponder returns nil when the selected backend has no API key; the chat
// endpoint then reports itself unavailable.
func newResponder(ctx context.Context, cfg *config.Config, logger *slog.Logger) chat.Responder {
	switch cfg.ChatBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("CLAUDE_API_KEY is not set; chat is disabled")
			return nil
		}
		logger.Info("using Claude chat backend", "model", cfg.ClaudeModel)
		return claudechat.NewResponder(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	default:
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set; chat is disabled")
			return nil
		}
		r, err := geminichat.NewResponder(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
		if err != nil {
			logger.Error("failed to initialize gemini client", "error", err)
			return nil
		}
		logger.Info("using Gemini chat backend", "model", cfg.GeminiModel)
		return r
	}
}
