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

const linkCollectionName = "workout_links"

// mongoLinkRepository implements repository.LinkRepository
type mongoLinkRepository struct {
	collection *mongo.Collection
}

// NewMongoLinkRepository creates a new WorkoutExerciseLink repository backed by MongoDB.
func NewMongoLinkRepository(db *mongo.Database) repository.LinkRepository {
	return &mongoLinkRepository{
		collection: db.Collection(linkCollectionName),
	}
}

func ownerFilter(owner domain.LinkOwner) bson.M {
	return bson.M{
		"owner.kind": owner.Kind,
		"owner.id":   owner.ID,
	}
}

// Create inserts a new link at the end of its owner's list.
func (r *mongoLinkRepository) Create(ctx context.Context, link *domain.WorkoutExerciseLink) (primitive.ObjectID, error) {
	if link.ExerciseID == primitive.NilObjectID || link.Owner.ID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("link requires exerciseId and an owner")
	}
	if link.Owner.Kind != domain.OwnerTemplate && link.Owner.Kind != domain.OwnerEvent {
		return primitive.NilObjectID, errors.New("link owner kind must be template or event")
	}

	link.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now
	if link.TargetMode == "" { // Default mode if not provided
		link.TargetMode = domain.TargetSimple
	}

	result, err := r.collection.InsertOne(ctx, link)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted link ID")
	}

	return insertedID, nil
}

// GetByID retrieves a link by its ID.
func (r *mongoLinkRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutExerciseLink, error) {
	var link domain.WorkoutExerciseLink
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// GetByOwner retrieves the links of one template or event, sorted by their
// position in the owner's exercise list.
func (r *mongoLinkRepository) GetByOwner(ctx context.Context, owner domain.LinkOwner) ([]domain.WorkoutExerciseLink, error) {
	var links []domain.WorkoutExerciseLink
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, ownerFilter(owner), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

// CountByOwner returns the number of links owned by one template or event.
func (r *mongoLinkRepository) CountByOwner(ctx context.Context, owner domain.LinkOwner) (int64, error) {
	return r.collection.CountDocuments(ctx, ownerFilter(owner))
}

// CountByExercise returns the number of links referencing an exercise,
// across all templates and events.
func (r *mongoLinkRepository) CountByExercise(ctx context.Context, exerciseID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"exerciseId": exerciseID})
}

// Update modifies a link's mutable fields. The owner and the exercise
// reference are fixed at creation and never rewritten here.
func (r *mongoLinkRepository) Update(ctx context.Context, link *domain.WorkoutExerciseLink) error {
	if link.ID == primitive.NilObjectID {
		return errors.New("link ID is required for update")
	}

	filter := bson.M{"_id": link.ID}
	update := bson.M{
		"$set": bson.M{
			"order":       link.Order,
			"notes":       link.Notes,
			"targetMode":  link.TargetMode,
			"targetNote":  link.TargetNote,
			"isCompleted": link.IsCompleted,
			"updatedAt":   time.Now().UTC(),
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

// UpdateOrders writes one order assignment per link in a single bulk request.
func (r *mongoLinkRepository) UpdateOrders(ctx context.Context, orders []repository.OrderUpdate) error {
	return bulkUpdateOrders(ctx, r.collection, orders)
}

// Delete removes a link. Its target sets and set records are the service's
// responsibility.
func (r *mongoLinkRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByOwner removes every link of one template or event. Deleting zero
// links is not an error; an owner may legitimately have none.
func (r *mongoLinkRepository) DeleteByOwner(ctx context.Context, owner domain.LinkOwner) error {
	_, err := r.collection.DeleteMany(ctx, ownerFilter(owner))
	return err
}

// EnsureLinkIndexes creates necessary indexes for the links collection.
func EnsureLinkIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Owner listing in display order
			Keys:    bson.D{{Key: "owner.kind", Value: 1}, {Key: "owner.id", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			// Reference counting before exercise deletion
			Keys:    bson.D{{Key: "exerciseId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
