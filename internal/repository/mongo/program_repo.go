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

const (
	programCollectionName = "programs"
	slotCollectionName    = "program_slots"
)

// mongoProgramRepository implements repository.ProgramRepository over two
// collections: the program documents and their slots.
type mongoProgramRepository struct {
	programs *mongo.Collection
	slots    *mongo.Collection
}

// NewMongoProgramRepository creates a new Program repository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		programs: db.Collection(programCollectionName),
		slots:    db.Collection(slotCollectionName),
	}
}

// Create inserts a new program.
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error) {
	if program.CoachID == primitive.NilObjectID || program.Name == "" {
		return primitive.NilObjectID, errors.New("program requires coachId and name")
	}
	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	result, err := r.programs.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted program ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single program by its ID.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	var program domain.Program
	err := r.programs.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetByCoachID retrieves all programs authored by a coach.
func (r *mongoProgramRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Program, error) {
	var programs []domain.Program
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.programs.Find(ctx, bson.M{"coachId": coachID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// ListPublished retrieves all published programs for the public catalog.
func (r *mongoProgramRepository) ListPublished(ctx context.Context) ([]domain.Program, error) {
	var programs []domain.Program
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.programs.Find(ctx, bson.M{"isPublished": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// SetPublished flips the published flag. The filter includes the coach so
// ownership is enforced at the DB level.
func (r *mongoProgramRepository) SetPublished(ctx context.Context, id, coachID primitive.ObjectID, published bool) error {
	filter := bson.M{"_id": id, "coachId": coachID}
	update := bson.M{"$set": bson.M{"isPublished": published, "updatedAt": time.Now().UTC()}}
	result, err := r.programs.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddSlot appends a slot to a program. The (programId, week, day) unique
// index rejects duplicates; slots are never updated afterwards.
func (r *mongoProgramRepository) AddSlot(ctx context.Context, slot *domain.ProgramSlot) (primitive.ObjectID, error) {
	if slot.ProgramID == primitive.NilObjectID || slot.Name == "" {
		return primitive.NilObjectID, errors.New("slot requires programId and name")
	}
	slot.ID = primitive.NewObjectID()
	slot.CreatedAt = time.Now().UTC()

	result, err := r.slots.InsertOne(ctx, slot)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted slot ID")
	}
	return insertedID, nil
}

// GetSlotByID retrieves a single slot.
func (r *mongoProgramRepository) GetSlotByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramSlot, error) {
	var slot domain.ProgramSlot
	err := r.slots.FindOne(ctx, bson.M{"_id": id}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// GetSlotsByProgramID retrieves a program's slots ordered by (week, day) —
// the catalog order the scheduling engine indexes by.
func (r *mongoProgramRepository) GetSlotsByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgramSlot, error) {
	var slots []domain.ProgramSlot
	findOptions := options.Find().SetSort(bson.D{{Key: "week", Value: 1}, {Key: "day", Value: 1}})
	cursor, err := r.slots.Find(ctx, bson.M{"programId": programID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// EnsureProgramIndexes creates necessary indexes. Call during startup.
func EnsureProgramIndexes(ctx context.Context, programs, slots *mongo.Collection) {
	_, _ = programs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "coachId", Value: 1}}},
		{Keys: bson.D{{Key: "isPublished", Value: 1}}},
	})
	_, _ = slots.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "programId", Value: 1}, {Key: "week", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
