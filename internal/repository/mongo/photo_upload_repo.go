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

const photoUploadCollectionName = "photo_uploads"

// mongoPhotoUploadRepository implements repository.PhotoUploadRepository
type mongoPhotoUploadRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoUploadRepository creates a new PhotoUpload repository.
func NewMongoPhotoUploadRepository(db *mongo.Database) repository.PhotoUploadRepository {
	return &mongoPhotoUploadRepository{
		collection: db.Collection(photoUploadCollectionName),
	}
}

// Create inserts upload metadata after the file landed in S3.
func (r *mongoPhotoUploadRepository) Create(ctx context.Context, upload *domain.PhotoUpload) (primitive.ObjectID, error) {
	if upload.UserID == primitive.NilObjectID || upload.S3ObjectKey == "" {
		return primitive.NilObjectID, errors.New("photo upload requires userId and s3ObjectKey")
	}
	upload.ID = primitive.NewObjectID()
	upload.UploadedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, upload)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted photo upload ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single upload record.
func (r *mongoPhotoUploadRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PhotoUpload, error) {
	var upload domain.PhotoUpload
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&upload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &upload, nil
}

// GetByUserID retrieves a user's uploads, newest first.
func (r *mongoPhotoUploadRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.PhotoUpload, error) {
	var uploads []domain.PhotoUpload
	findOptions := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &uploads); err != nil {
		return nil, err
	}
	return uploads, nil
}

// EnsurePhotoUploadIndexes creates necessary indexes. Call during startup.
func EnsurePhotoUploadIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "uploadedAt", Value: -1}}},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
