package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateTimezone(ctx context.Context, id primitive.ObjectID, timezone string) error
}

// ProgramRepository defines the interface for interacting with program
// catalogs and their slots. Slots are append-only: there is deliberately no
// slot update method.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Program, error)
	ListPublished(ctx context.Context) ([]domain.Program, error)
	SetPublished(ctx context.Context, id, coachID primitive.ObjectID, published bool) error

	AddSlot(ctx context.Context, slot *domain.ProgramSlot) (primitive.ObjectID, error)
	GetSlotByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramSlot, error)
	GetSlotsByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgramSlot, error)
}

// UserProgramRepository defines the interface for interacting with program
// activations (the progress pointer).
type UserProgramRepository interface {
	Create(ctx context.Context, up *domain.UserProgram) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.UserProgram, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgram, error)
	UpdatePointer(ctx context.Context, id primitive.ObjectID, week, day int) error
	DeactivateAllForUser(ctx context.Context, userID primitive.ObjectID) error
}

// WorkoutLogRepository defines the interface for interacting with the
// completion ledger. Logs are append-mostly: only notes and rating are
// editable after creation.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	GetByUserAndRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error)
	UpdateNotesAndRating(ctx context.Context, id, userID primitive.ObjectID, notes string, rating *int) error
}

// PhotoUploadRepository defines the interface for progress-photo metadata.
type PhotoUploadRepository interface {
	Create(ctx context.Context, upload *domain.PhotoUpload) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PhotoUpload, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.PhotoUpload, error)
}

// ShareLinkRepository defines the interface for public calendar share links.
type ShareLinkRepository interface {
	Create(ctx context.Context, link *domain.ShareLink) (primitive.ObjectID, error)
	GetByToken(ctx context.Context, token string) (*domain.ShareLink, error)
	DeleteByUser(ctx context.Context, id, userID primitive.ObjectID) error
}
