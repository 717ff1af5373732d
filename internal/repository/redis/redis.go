package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/employee-pass/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// Options configures the Redis connection.
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Store implements domain.SlotStore with one Redis string key per slot.
type Store struct {
	client *goredis.Client
	prefix string
}

// New connects to Redis with short timeouts and verifies the connection.
func New(ctx context.Context, opts Options) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: client, prefix: opts.KeyPrefix}, nil
}

func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+name).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get slot %q: %w", name, err)
	}
	return data, nil
}

// Put overwrites the slot. SET replaces the value atomically.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.prefix+name, data, 0).Err(); err != nil {
		return fmt.Errorf("put slot %q: %w", name, err)
	}
	return nil
}

// Migrate is a no-op; Redis keys need no schema.
func (s *Store) Migrate(ctx context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
