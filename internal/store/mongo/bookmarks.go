package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marqlabs/marq/internal/domain"
)

// Bookmarks implements store.BookmarkStore on a mongo collection.
type Bookmarks struct {
	col *mongo.Collection
}

// Insert stores a new bookmark and fills in its generated ID.
func (r *Bookmarks) Insert(ctx context.Context, b *domain.Bookmark) error {
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = id
	}
	return nil
}

// FindByURL returns the owner's bookmark for an exact URL match.
func (r *Bookmarks) FindByURL(ctx context.Context, owner primitive.ObjectID, url string) (*domain.Bookmark, error) {
	return r.findOne(ctx, bson.M{"owner": owner, "url": url})
}

// FindByID returns the owner's bookmark by ID.
func (r *Bookmarks) FindByID(ctx context.Context, owner, id primitive.ObjectID) (*domain.Bookmark, error) {
	return r.findOne(ctx, bson.M{"_id": id, "owner": owner})
}

func (r *Bookmarks) findOne(ctx context.Context, filter bson.M) (*domain.Bookmark, error) {
	var b domain.Bookmark
	err := r.col.FindOne(ctx, filter).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bookmark: %w", err)
	}
	return &b, nil
}

// FindByOwner returns the owner's bookmarks sorted by order ascending.
// limit <= 0 returns everything after skip.
func (r *Bookmarks) FindByOwner(ctx context.Context, owner primitive.ObjectID, skip, limit int64) ([]*domain.Bookmark, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	bookmarks := []*domain.Bookmark{}
	if err := cur.All(ctx, &bookmarks); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks: %w", err)
	}
	return bookmarks, nil
}

// CountByOwner returns how many bookmarks the owner has.
func (r *Bookmarks) CountByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"owner": owner})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}

// Delete removes the owner's bookmark by ID.
func (r *Bookmarks) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateOrder rewrites the order field of a single bookmark.
// One independent update per record; the caller provides no atomicity
// across a compaction or reorder batch.
func (r *Bookmarks) UpdateOrder(ctx context.Context, owner, id primitive.ObjectID, order int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "owner": owner},
		bson.M{"$set": bson.M{"order": order, "updated_at": nowFunc()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update bookmark order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
