// Package memory implements the store contracts in process memory.
// It backs the test suites; the production store is the mongo
// implementation.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marqlabs/marq/internal/domain"
)

// Bookmarks implements store.BookmarkStore over a mutex-guarded map.
type Bookmarks struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*domain.Bookmark
}

func NewBookmarks() *Bookmarks {
	return &Bookmarks{items: make(map[primitive.ObjectID]*domain.Bookmark)}
}

// Insert stores a new bookmark and fills in a generated ID.
func (s *Bookmarks) Insert(_ context.Context, b *domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	clone := *b
	s.items[b.ID] = &clone
	return nil
}

// FindByURL returns the owner's bookmark for an exact URL match.
func (s *Bookmarks) FindByURL(_ context.Context, owner primitive.ObjectID, url string) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.items {
		if b.Owner == owner && b.URL == url {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

// FindByID returns the owner's bookmark by ID.
func (s *Bookmarks) FindByID(_ context.Context, owner, id primitive.ObjectID) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.items[id]
	if !ok || b.Owner != owner {
		return nil, domain.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

// FindByOwner returns the owner's bookmarks sorted by order ascending.
// limit <= 0 returns everything after skip.
func (s *Bookmarks) FindByOwner(_ context.Context, owner primitive.ObjectID, skip, limit int64) ([]*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make([]*domain.Bookmark, 0, len(s.items))
	for _, b := range s.items {
		if b.Owner == owner {
			clone := *b
			owned = append(owned, &clone)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Order < owned[j].Order })

	if skip >= int64(len(owned)) {
		return []*domain.Bookmark{}, nil
	}
	owned = owned[skip:]
	if limit > 0 && int64(len(owned)) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

// CountByOwner returns how many bookmarks the owner has.
func (s *Bookmarks) CountByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, b := range s.items {
		if b.Owner == owner {
			count++
		}
	}
	return count, nil
}

// Delete removes the owner's bookmark by ID.
func (s *Bookmarks) Delete(_ context.Context, owner, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.items[id]
	if !ok || b.Owner != owner {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// UpdateOrder rewrites the order field of a single bookmark.
func (s *Bookmarks) UpdateOrder(_ context.Context, owner, id primitive.ObjectID, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.items[id]
	if !ok || b.Owner != owner {
		return domain.ErrNotFound
	}
	b.Order = order
	return nil
}

// Users implements store.UserStore over a mutex-guarded map.
type Users struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*domain.User
}

func NewUsers() *Users {
	return &Users{items: make(map[primitive.ObjectID]*domain.User)}
}

// Insert stores a new user and fills in a generated ID.
func (s *Users) Insert(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	clone := *u
	s.items[u.ID] = &clone
	return nil
}

// FindByEmail returns the user for a (lowercased) email.
func (s *Users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.items {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

// FindByID returns the user by ID.
func (s *Users) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}
