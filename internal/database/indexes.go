package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index names. Creating an index that already exists with the same name and
// keys is a no-op, so EnsureIndexes can run on every start.
const (
	UserEmailIndex    = "email_1"
	PlaceCreatorIndex = "creator_1"
)

// indexes lists, per collection, the indexes the repositories rely on.
func indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName(UserEmailIndex).SetUnique(true),
			},
		},
		PlacesCollection: {
			{
				Keys:    bson.D{{Key: "creator", Value: 1}},
				Options: options.Index().SetName(PlaceCreatorIndex),
			},
		},
	}
}

// EnsureIndexes creates the unique email index on users and the creator
// lookup index on places.
func (db *Database) EnsureIndexes(ctx context.Context) error {
	for collection, models := range indexes() {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("creating indexes on %s: %w", collection, err)
		}
		db.log.Info().Str("collection", collection).Strs("indexes", names).Msg("database indexes ensured")
	}
	return nil
}
