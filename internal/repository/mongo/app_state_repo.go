package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const appStateCollectionName = "app_state"

// Well-known state document keys.
const catalogSeedStateKey = "catalog_seed"

// appStateDocument is the storage shape of one state flag.
type appStateDocument struct {
	Key       string    `bson:"_id"`
	Done      bool      `bson:"done"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoAppStateRepository implements repository.AppStateRepository
type mongoAppStateRepository struct {
	collection *mongo.Collection
}

// NewMongoAppStateRepository creates a new application state repository backed by MongoDB.
func NewMongoAppStateRepository(db *mongo.Database) repository.AppStateRepository {
	return &mongoAppStateRepository{
		collection: db.Collection(appStateCollectionName),
	}
}

// IsCatalogSeeded reports whether the default catalog seed marker was set.
// A missing marker document means seeding has not completed yet.
func (r *mongoAppStateRepository) IsCatalogSeeded(ctx context.Context) (bool, error) {
	var doc appStateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": catalogSeedStateKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return doc.Done, nil
}

// MarkCatalogSeeded records that the default catalog was written (or found
// present). The marker is only ever set, never cleared.
func (r *mongoAppStateRepository) MarkCatalogSeeded(ctx context.Context) error {
	filter := bson.M{"_id": catalogSeedStateKey}
	update := bson.M{
		"$set": bson.M{
			"done":      true,
			"updatedAt": time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
