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

const shareLinkCollectionName = "share_links"

// mongoShareLinkRepository implements repository.ShareLinkRepository
type mongoShareLinkRepository struct {
	collection *mongo.Collection
}

// NewMongoShareLinkRepository creates a new ShareLink repository.
func NewMongoShareLinkRepository(db *mongo.Database) repository.ShareLinkRepository {
	return &mongoShareLinkRepository{
		collection: db.Collection(shareLinkCollectionName),
	}
}

// Create inserts a new share link.
func (r *mongoShareLinkRepository) Create(ctx context.Context, link *domain.ShareLink) (primitive.ObjectID, error) {
	if link.UserID == primitive.NilObjectID || link.Token == "" {
		return primitive.NilObjectID, errors.New("share link requires userId and token")
	}
	link.ID = primitive.NewObjectID()
	link.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, link)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted share link ID")
	}
	return insertedID, nil
}

// GetByToken retrieves a link by its public token.
func (r *mongoShareLinkRepository) GetByToken(ctx context.Context, token string) (*domain.ShareLink, error) {
	var link domain.ShareLink
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// DeleteByUser removes a link the user owns.
func (r *mongoShareLinkRepository) DeleteByUser(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureShareLinkIndexes creates necessary indexes. Call during startup.
func EnsureShareLinkIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
