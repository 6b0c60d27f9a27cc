// Package redis persists journey contexts in Redis and provides a
// distributed per-journey lock for multi-replica deployments.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/waylinehq/wayline/pkg/domain"
)

// Store implements ports.ContextStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for journeys. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for journeys.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "wayline:journey:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(journeyID string) string {
	return s.prefix + journeyID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the context blob and indexes the journey in a ZSET scored
// by expiry, so List can lazily prune expired entries.
func (s *Store) Save(ctx context.Context, journeyID string, jctx *domain.JourneyContext) error {
	blob, err := jctx.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize journey context: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(journeyID), blob, s.ttl)

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01, effectively no expiry
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: journeyID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves and deserializes the context.
func (s *Store) Load(ctx context.Context, journeyID string) (*domain.JourneyContext, error) {
	val, err := s.client.Get(ctx, s.key(journeyID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrJourneyNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	jctx, err := domain.DeserializeJourneyContext([]byte(val))
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize journey context: %w", err)
	}
	return jctx, nil
}

// Delete removes the journey and its index entry.
func (s *Store) Delete(ctx context.Context, journeyID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(journeyID))
	pipe.ZRem(ctx, s.indexKey(), journeyID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns active journeys after lazily pruning expired index entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired journeys: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}
	return ids, nil
}

// Client exposes the underlying client so a Locker can share it.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
