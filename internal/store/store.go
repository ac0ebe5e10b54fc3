// Package store defines the persistence contracts consumed by the
// bookmark and auth services. Implementations live in the subpackages.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marqlabs/marq/internal/domain"
)

// BookmarkStore is the document-store contract for bookmarks.
// Lookups scoped to an owner return domain.ErrNotFound when the record
// is absent or belongs to someone else.
type BookmarkStore interface {
	// Insert stores a new bookmark and fills in its ID.
	Insert(ctx context.Context, b *domain.Bookmark) error

	// FindByURL returns the owner's bookmark for an exact URL match.
	FindByURL(ctx context.Context, owner primitive.ObjectID, url string) (*domain.Bookmark, error)

	// FindByID returns the owner's bookmark by ID.
	FindByID(ctx context.Context, owner, id primitive.ObjectID) (*domain.Bookmark, error)

	// FindByOwner returns the owner's bookmarks sorted by order
	// ascending. limit <= 0 means no limit.
	FindByOwner(ctx context.Context, owner primitive.ObjectID, skip, limit int64) ([]*domain.Bookmark, error)

	// CountByOwner returns how many bookmarks the owner has.
	CountByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)

	// Delete removes the owner's bookmark by ID.
	Delete(ctx context.Context, owner, id primitive.ObjectID) error

	// UpdateOrder rewrites the order field of a single bookmark.
	UpdateOrder(ctx context.Context, owner, id primitive.ObjectID, order int) error
}

// UserStore is the document-store contract for accounts.
type UserStore interface {
	// Insert stores a new user and fills in its ID.
	Insert(ctx context.Context, u *domain.User) error

	// FindByEmail returns the user for a (lowercased) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns the user by ID.
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
