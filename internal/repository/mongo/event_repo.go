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

const eventCollectionName = "workout_events"

// mongoEventRepository implements repository.EventRepository
type mongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new WorkoutEvent repository backed by MongoDB.
func NewMongoEventRepository(db *mongo.Database) repository.EventRepository {
	return &mongoEventRepository{
		collection: db.Collection(eventCollectionName),
	}
}

// Create inserts a new workout event. The event's Date must already be
// truncated to UTC midnight (domain.DayOf); the repository stores it as-is.
func (r *mongoEventRepository) Create(ctx context.Context, event *domain.WorkoutEvent) (primitive.ObjectID, error) {
	if event.Date.IsZero() {
		return primitive.NilObjectID, errors.New("event date is required")
	}

	event.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted event ID")
	}

	return insertedID, nil
}

// GetByID retrieves an event by its ID.
func (r *mongoEventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutEvent, error) {
	var event domain.WorkoutEvent
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetByDay retrieves the events of one calendar day sorted by their order
// within the day.
func (r *mongoEventRepository) GetByDay(ctx context.Context, day time.Time) ([]domain.WorkoutEvent, error) {
	var events []domain.WorkoutEvent
	filter := bson.M{"date": day}
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// GetBetween retrieves the events of the half-open day range [from, to)
// sorted by day, then by order within each day.
func (r *mongoEventRepository) GetBetween(ctx context.Context, from, to time.Time) ([]domain.WorkoutEvent, error) {
	var events []domain.WorkoutEvent
	filter := bson.M{"date": bson.M{"$gte": from, "$lt": to}}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// CountByDay returns the number of events on one calendar day.
func (r *mongoEventRepository) CountByDay(ctx context.Context, day time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"date": day})
}

// Update modifies an event. The template reference is written as given;
// a nil TemplateID clears the field.
func (r *mongoEventRepository) Update(ctx context.Context, event *domain.WorkoutEvent) error {
	if event.ID == primitive.NilObjectID {
		return errors.New("event ID is required for update")
	}
	if event.Date.IsZero() {
		return errors.New("event date is required")
	}

	filter := bson.M{"_id": event.ID}
	update := bson.M{
		"$set": bson.M{
			"title":      event.Title,
			"date":       event.Date,
			"startTime":  event.StartTime,
			"notes":      event.Notes,
			"order":      event.Order,
			"templateId": event.TemplateID,
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

// UpdateOrders writes one order assignment per event in a single bulk request.
func (r *mongoEventRepository) UpdateOrders(ctx context.Context, orders []repository.OrderUpdate) error {
	return bulkUpdateOrders(ctx, r.collection, orders)
}

// Delete removes an event. Its links are the service's responsibility.
func (r *mongoEventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureEventIndexes creates necessary indexes for the events collection.
func EnsureEventIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Day queries and per-day ordering
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			// Finding events scheduled from a template
			Keys:    bson.D{{Key: "templateId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
