package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/repository"
)

const userProgramCollectionName = "user_programs"

// mongoUserProgramRepository implements repository.UserProgramRepository
type mongoUserProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoUserProgramRepository creates a new UserProgram repository.
func NewMongoUserProgramRepository(db *mongo.Database) repository.UserProgramRepository {
	return &mongoUserProgramRepository{
		collection: db.Collection(userProgramCollectionName),
	}
}

// Create inserts a new activation record.
func (r *mongoUserProgramRepository) Create(ctx context.Context, up *domain.UserProgram) (primitive.ObjectID, error) {
	if up.UserID == primitive.NilObjectID || up.ProgramID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user program requires userId and programId")
	}
	if up.CurrentWeek < 1 || up.CurrentDay < 1 {
		return primitive.NilObjectID, errors.New("user program requires a positive (currentWeek, currentDay) pointer")
	}
	up.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	up.ActivatedAt = now
	up.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, up)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted user program ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single activation by its ID.
func (r *mongoUserProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProgram, error) {
	var up domain.UserProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&up)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &up, nil
}

// GetActiveByUserID retrieves the user's single active activation, if any.
func (r *mongoUserProgramRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgram, error) {
	var up domain.UserProgram
	filter := bson.M{"userId": userID, "isActive": true}
	err := r.collection.FindOne(ctx, filter).Decode(&up)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &up, nil
}

// UpdatePointer moves the progress pointer. Only the logging workflow calls
// this; calendar rendering never does.
func (r *mongoUserProgramRepository) UpdatePointer(ctx context.Context, id primitive.ObjectID, week, day int) error {
	if week < 1 || day < 1 {
		return errors.New("pointer week and day must be positive")
	}
	update := bson.M{"$set": bson.M{
		"currentWeek": week,
		"currentDay":  day,
		"updatedAt":   time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeactivateAllForUser clears the active flag on every activation the user
// has, ahead of switching to a new program.
func (r *mongoUserProgramRepository) DeactivateAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateMany(ctx, bson.M{"userId": userID, "isActive": true}, update)
	return err
}

// EnsureUserProgramIndexes creates necessary indexes. Call during startup.
func EnsureUserProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isActive", Value: 1}}},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
