// Package redis implements the router's Store collaborator on top of
// Redis, SET-ing the serialized route table under a configured key.
// Useful for local/dev deployments where S3 credentials are
// unavailable; it externalizes only the serialized snapshot, not the
// router's in-memory decision state, which stays process-local.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the Redis-backed Store.
type Config struct {
	Address  string
	Password string
	Database int
	Prefix   string
	TTL      time.Duration
	Timeout  time.Duration
}

// DefaultConfig returns sensible defaults for address.
func DefaultConfig(address string) Config {
	return Config{Address: address, Prefix: "flowgate:router:", Timeout: 5 * time.Second}
}

// Store persists router snapshots in Redis. Implements interfaces.Store.
type Store struct {
	cfg    Config
	client *redis.Client
}

// New creates a Store and verifies connectivity with a PING.
func New(cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store/redis: connect: %w", err)
	}

	return &Store{cfg: cfg, client: client}, nil
}

func (s *Store) redisKey(key string) string {
	return s.cfg.Prefix + key
}

// Update implements interfaces.Store.
func (s *Store) Update(ctx context.Context, key string, json []byte) error {
	timeout := s.cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.redisKey(key), json, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("store/redis: set %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
