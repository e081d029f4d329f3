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

const setRecordCollectionName = "set_records"

// mongoSetRecordRepository implements repository.SetRecordRepository
type mongoSetRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoSetRecordRepository creates a new SetRecord repository backed by MongoDB.
func NewMongoSetRecordRepository(db *mongo.Database) repository.SetRecordRepository {
	return &mongoSetRecordRepository{
		collection: db.Collection(setRecordCollectionName),
	}
}

// Create inserts a new set record.
func (r *mongoSetRecordRepository) Create(ctx context.Context, record *domain.SetRecord) (primitive.ObjectID, error) {
	if record.LinkID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("set record requires linkId")
	}
	if record.Date.IsZero() {
		return primitive.NilObjectID, errors.New("set record requires a date")
	}

	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted set record ID")
	}

	return insertedID, nil
}

// GetByID retrieves a set record by its ID.
func (r *mongoSetRecordRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SetRecord, error) {
	var record domain.SetRecord
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByLinkID retrieves the set records of one link sorted by order.
func (r *mongoSetRecordRepository) GetByLinkID(ctx context.Context, linkID primitive.ObjectID) ([]domain.SetRecord, error) {
	var records []domain.SetRecord
	filter := bson.M{"linkId": linkID}
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// CountByLinkID returns the number of set records of one link.
func (r *mongoSetRecordRepository) CountByLinkID(ctx context.Context, linkID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"linkId": linkID})
}

// Update modifies a set record's logged metrics, tracking flag, date and
// order. The owning link, the type and the target echoes are fixed at
// creation.
func (r *mongoSetRecordRepository) Update(ctx context.Context, record *domain.SetRecord) error {
	if record.ID == primitive.NilObjectID {
		return errors.New("set record ID is required for update")
	}

	filter := bson.M{"_id": record.ID}
	update := bson.M{
		"$set": bson.M{
			"date":       record.Date,
			"order":      record.Order,
			"isTracked":  record.IsTracked,
			"weight":     record.Weight,
			"reps":       record.Reps,
			"rpe":        record.RPE,
			"duration":   record.Duration,
			"distance":   record.Distance,
			"resistance": record.Resistance,
			"heartRate":  record.HeartRate,
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

// UpdateOrders writes one order assignment per set record in a single bulk request.
func (r *mongoSetRecordRepository) UpdateOrders(ctx context.Context, orders []repository.OrderUpdate) error {
	return bulkUpdateOrders(ctx, r.collection, orders)
}

// Delete removes a set record.
func (r *mongoSetRecordRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByLinkID removes every set record of one link.
func (r *mongoSetRecordRepository) DeleteByLinkID(ctx context.Context, linkID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"linkId": linkID})
	return err
}

// EnsureSetRecordIndexes creates necessary indexes for the set records collection.
func EnsureSetRecordIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "linkId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			// History queries by performance date
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
