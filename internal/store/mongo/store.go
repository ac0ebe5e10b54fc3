// Package mongo implements the store contracts on MongoDB.
package mongo

import (
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	bookmarksCollection = "bookmarks"
	usersCollection     = "users"
)

// Store bundles the per-collection repositories.
type Store struct {
	Bookmarks *Bookmarks
	Users     *Users
}

// NewStore binds the repositories to the collections of db.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		Bookmarks: &Bookmarks{col: db.Collection(bookmarksCollection)},
		Users:     &Users{col: db.Collection(usersCollection)},
	}
}
