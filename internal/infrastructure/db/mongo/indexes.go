package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application relies on. The unique
// ones are load-bearing: duplicate-key errors from them are what the
// repositories translate into domain errors, so the uniqueness invariants
// hold under concurrent writes without any read-before-write.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		userCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		categoryCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		genreCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		reviewCollection: {
			// One review per (title, author) pair.
			{Keys: bson.D{{Key: "title_id", Value: 1}, {Key: "author_id", Value: 1}}, Options: unique},
		},
		commentCollection: {
			{Keys: bson.D{{Key: "review_id", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}
	return nil
}
