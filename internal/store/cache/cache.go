// Package cache stores enrichment output in Redis with a TTL so that
// re-bookmarking a known URL skips the remote metadata and summary
// calls. All operations are best-effort: the caller treats errors as
// cache misses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marqlabs/marq/internal/domain"
)

// DefaultTTL is how long a cached enrichment result stays valid.
const DefaultTTL = 24 * time.Hour

// Store handles Redis operations for cached enrichment results.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a cache store. ttl <= 0 falls back to DefaultTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// GetPage retrieves a cached enrichment result. A miss returns
// (nil, nil).
func (s *Store) GetPage(ctx context.Context, url string) (*domain.PageMeta, error) {
	data, err := s.client.Get(ctx, PageKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}

	var page domain.PageMeta
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached page: %w", err)
	}
	return &page, nil
}

// PutPage caches an enrichment result for the store's TTL.
func (s *Store) PutPage(ctx context.Context, url string, page *domain.PageMeta) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	if err := s.client.Set(ctx, PageKey(url), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}

// InvalidatePage removes a cached enrichment result.
func (s *Store) InvalidatePage(ctx context.Context, url string) error {
	if err := s.client.Del(ctx, PageKey(url)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached page: %w", err)
	}
	return nil
}
