package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const targetSetCollectionName = "target_sets"

// mongoTargetSetRepository implements repository.TargetSetRepository
type mongoTargetSetRepository struct {
	collection *mongo.Collection
}

// NewMongoTargetSetRepository creates a new TargetSet repository backed by MongoDB.
func NewMongoTargetSetRepository(db *mongo.Database) repository.TargetSetRepository {
	return &mongoTargetSetRepository{
		collection: db.Collection(targetSetCollectionName),
	}
}

// Create inserts a new target set.
func (r *mongoTargetSetRepository) Create(ctx context.Context, target *domain.TargetSet) (primitive.ObjectID, error) {
	if target.LinkID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("target set requires linkId")
	}

	target.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	target.CreatedAt = now
	target.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, target)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted target set ID")
	}

	return insertedID, nil
}

// GetByID retrieves a target set by its ID.
func (r *mongoTargetSetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TargetSet, error) {
	var target domain.TargetSet
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&target)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &target, nil
}

// GetByLinkID retrieves the target sets of one link sorted by order.
func (r *mongoTargetSetRepository) GetByLinkID(ctx context.Context, linkID primitive.ObjectID) ([]domain.TargetSet, error) {
	var targets []domain.TargetSet
	filter := bson.M{"linkId": linkID}
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &targets); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}

// CountByLinkID returns the number of target sets of one link.
func (r *mongoTargetSetRepository) CountByLinkID(ctx context.Context, linkID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"linkId": linkID})
}

// Update modifies a target set's metrics and order. The owning link is
// fixed at creation.
func (r *mongoTargetSetRepository) Update(ctx context.Context, target *domain.TargetSet) error {
	if target.ID == primitive.NilObjectID {
		return errors.New("target set ID is required for update")
	}

	filter := bson.M{"_id": target.ID}
	update := bson.M{
		"$set": bson.M{
			"order":      target.Order,
			"weight":     target.Weight,
			"reps":       target.Reps,
			"rpe":        target.RPE,
			"duration":   target.Duration,
			"distance":   target.Distance,
			"resistance": target.Resistance,
			"heartRate":  target.HeartRate,
			"updatedAt":  time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateOrders writes one order assignment per target set in a single bulk request.
func (r *mongoTargetSetRepository) UpdateOrders(ctx context.Context, orders []repository.OrderUpdate) error {
	return bulkUpdateOrders(ctx, r.collection, orders)
}

// Delete removes a target set.
func (r *mongoTargetSetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByLinkID removes every target set of one link.
func (r *mongoTargetSetRepository) DeleteByLinkID(ctx context.Context, linkID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"linkId": linkID})
	return err
}

// EnsureTargetSetIndexes creates necessary indexes for the target sets collection.
func EnsureTargetSetIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "linkId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
