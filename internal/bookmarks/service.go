// Package bookmarks implements the bookmark operations: enrichment at
// creation, paginated listing, delete with order compaction, and
// explicit reordering.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marqlabs/marq/internal/domain"
	"github.com/marqlabs/marq/internal/enrich"
	"github.com/marqlabs/marq/internal/logger"
	"github.com/marqlabs/marq/internal/store"
)

// DefaultPageSize applies when a list request carries no limit.
const DefaultPageSize = 10

// Enricher produces the derived fields for a submitted URL. It never
// fails; degraded output is the failure mode.
type Enricher interface {
	Enrich(ctx context.Context, rawURL string) enrich.Result
}

// Page is one page of an owner's bookmarks.
type Page struct {
	Bookmarks   []*domain.Bookmark
	CurrentPage int
	TotalPages  int
	TotalCount  int64
}

// Service orchestrates enrichment and persistence for bookmarks.
type Service struct {
	store    store.BookmarkStore
	enricher Enricher
	log      logger.Logger
	now      func() time.Time
}

func NewService(st store.BookmarkStore, enricher Enricher, log logger.Logger) *Service {
	return &Service{
		store:    st,
		enricher: enricher,
		log:      log,
		now:      time.Now,
	}
}

// Create enriches rawURL and appends the bookmark at the end of the
// owner's list. Only the duplicate check can prevent creation; failed
// enrichment degrades the stored fields instead.
func (s *Service) Create(ctx context.Context, owner primitive.ObjectID, rawURL string) (*domain.Bookmark, error) {
	if _, err := s.store.FindByURL(ctx, owner, rawURL); err == nil {
		return nil, domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate: %w", err)
	}

	result := s.enricher.Enrich(ctx, rawURL)

	count, err := s.store.CountByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}

	now := s.now()
	bookmark := &domain.Bookmark{
		Owner:     owner,
		URL:       rawURL,
		Title:     result.Title,
		Favicon:   result.Favicon,
		Summary:   result.Summary,
		Tags:      result.Tags,
		Order:     int(count),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("failed to store bookmark: %w", err)
	}

	s.log.Info("bookmark created",
		logger.String("url", rawURL),
		logger.Int("order", bookmark.Order),
		logger.Int("tags", len(bookmark.Tags)))
	return bookmark, nil
}

// List returns one page of the owner's bookmarks sorted by order
// ascending. page < 1 is treated as 1; pageSize < 1 falls back to
// DefaultPageSize.
func (s *Service) List(ctx context.Context, owner primitive.ObjectID, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := s.store.CountByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}

	skip := int64(page-1) * int64(pageSize)
	records, err := s.store.FindByOwner(ctx, owner, skip, int64(pageSize))
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &Page{
		Bookmarks:   records,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
	}, nil
}

// Delete removes the owner's bookmark and compacts the remaining
// orders back to a dense 0..N-1 sequence. The rewrite is one update
// per record with no transaction; concurrent mutations for the same
// owner can interleave.
func (s *Service) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	if _, err := s.store.FindByID(ctx, owner, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, owner, id); err != nil {
		return err
	}

	remaining, err := s.store.FindByOwner(ctx, owner, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to load remaining bookmarks: %w", err)
	}
	for i, b := range remaining {
		if b.Order == i {
			continue
		}
		if err := s.store.UpdateOrder(ctx, owner, b.ID, i); err != nil {
			return fmt.Errorf("failed to compact order: %w", err)
		}
	}

	s.log.Info("bookmark deleted",
		logger.String("id", id.Hex()),
		logger.Int("remaining", len(remaining)))
	return nil
}

// Reorder rewrites each listed bookmark's order to its position in
// ids. Updates are independent per record, matching the storage
// contract's lack of batch atomicity.
func (s *Service) Reorder(ctx context.Context, owner primitive.ObjectID, ids []primitive.ObjectID) error {
	for i, id := range ids {
		if err := s.store.UpdateOrder(ctx, owner, id, i); err != nil {
			return err
		}
	}

	s.log.Info("bookmarks reordered", logger.Int("count", len(ids)))
	return nil
}
