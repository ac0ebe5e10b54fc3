package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marqlabs/marq/internal/domain"
)

// nowFunc stamps updated_at on writes.
var nowFunc = time.Now

// Users implements store.UserStore on a mongo collection.
type Users struct {
	col *mongo.Collection
}

// Insert stores a new user and fills in its generated ID.
func (r *Users) Insert(ctx context.Context, u *domain.User) error {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

// FindByEmail returns the user for a (lowercased) email.
func (r *Users) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, bson.M{"email": email})
}

// FindByID returns the user by ID.
func (r *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findUser(ctx, bson.M{"_id": id})
}

func (r *Users) findUser(ctx context.Context, filter bson.M) (*domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}
