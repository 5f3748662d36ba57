package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/repository"
)

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new WorkoutLog repository.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// Create appends a log entry to the ledger.
func (r *mongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID || log.SlotID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout log requires userId and slotId")
	}
	if log.OccurredAt.IsZero() {
		return primitive.NilObjectID, errors.New("workout log requires occurredAt")
	}
	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout log ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single log entry.
func (r *mongoWorkoutLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetByUserAndRange retrieves the user's logs whose occurredAt falls inside
// [from, to), ordered by occurredAt. The half-open upper bound lets callers
// pass midnight boundaries without double-counting.
func (r *mongoWorkoutLogRepository) GetByUserAndRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error) {
	var logs []domain.WorkoutLog
	filter := bson.M{
		"userId":     userID,
		"occurredAt": bson.M{"$gte": from, "$lt": to},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "occurredAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// UpdateNotesAndRating edits the only mutable fields of a log entry. The
// filter includes the user so ownership is enforced at the DB level.
func (r *mongoWorkoutLogRepository) UpdateNotesAndRating(ctx context.Context, id, userID primitive.ObjectID, notes string, rating *int) error {
	filter := bson.M{"_id": id, "userId": userID}
	update := bson.M{"$set": bson.M{
		"notes":     notes,
		"rating":    rating,
		"updatedAt": time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutLogIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "occurredAt", Value: 1}}},
		{Keys: bson.D{{Key: "slotId", Value: 1}}},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
