package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vbonduro/paani/internal/kv"
)

// client is the subset of Redis operations Store needs. The go-redis adapter
// implements it; tests substitute an in-memory fake.
type client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Store is a kv.Store backed by Redis. Keys are namespaced with KeyPrefix.
type Store struct {
	client    client
	keyPrefix string
}

var _ kv.Store = (*Store)(nil)

// Open connects to Redis and verifies the connection with a PING.
func Open(cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	c := &goRedisClient{client: goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
	return newStore(c, cfg.KeyPrefix)
}

func newStore(c client, keyPrefix string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Store{client: c, keyPrefix: keyPrefix}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.keyPrefix+key)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

type goRedisClient struct {
	client *goredis.Client
}

func (c *goRedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return v, nil
}

// Set stores value with no expiry.
func (c *goRedisClient) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, key, value, 0).Err()
}

func (c *goRedisClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *goRedisClient) Close() error {
	return c.client.Close()
}
