package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/repository"
	"mveselov/fitflow/internal/schedule"
)

// --- Error Definitions ---
var (
	ErrNoActiveProgram     = errors.New("user has no active program")
	ErrProgramNotPublished = errors.New("program is not published")
	ErrProgramHasNoSlots   = errors.New("program has no slots to activate")
	ErrSlotNotInProgram    = errors.New("slot does not belong to the active program")
	ErrLogNotFound         = errors.New("workout log not found")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// TrackerService owns the completion workflow: activating a program and
// moving the progress pointer as workouts are logged or skipped. The
// calendar engine only ever reads the state this service writes.
type TrackerService interface {
	ActivateProgram(ctx context.Context, userID, programID primitive.ObjectID, startDate time.Time, timezone string) (*domain.UserProgram, error)
	GetActiveProgram(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgram, error)
	LogWorkout(ctx context.Context, userID, slotID primitive.ObjectID, occurredAt time.Time, skipped bool, notes string, rating *int, durationMinutes *int) (*domain.WorkoutLog, error)
	EditLog(ctx context.Context, userID, logID primitive.ObjectID, notes string, rating *int) (*domain.WorkoutLog, error)
}

// trackerService implements the TrackerService interface.
type trackerService struct {
	programRepo     repository.ProgramRepository
	userProgramRepo repository.UserProgramRepository
	workoutLogRepo  repository.WorkoutLogRepository
}

// NewTrackerService creates a new instance of trackerService.
func NewTrackerService(
	programRepo repository.ProgramRepository,
	userProgramRepo repository.UserProgramRepository,
	workoutLogRepo repository.WorkoutLogRepository,
) TrackerService {
	return &trackerService{
		programRepo:     programRepo,
		userProgramRepo: userProgramRepo,
		workoutLogRepo:  workoutLogRepo,
	}
}

// ActivateProgram starts a program for a user. Any previous activation is
// deactivated; the pointer begins at the program's first slot.
func (s *trackerService) ActivateProgram(ctx context.Context, userID, programID primitive.ObjectID, startDate time.Time, timezone string) (*domain.UserProgram, error) {
	if userID == primitive.NilObjectID || programID == primitive.NilObjectID {
		return nil, errors.New("user ID and program ID are required")
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if !program.IsPublished {
		return nil, ErrProgramNotPublished
	}

	slots, err := s.programRepo.GetSlotsByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrProgramHasNoSlots
	}

	if err := s.userProgramRepo.DeactivateAllForUser(ctx, userID); err != nil {
		return nil, err
	}

	up := &domain.UserProgram{
		UserID:      userID,
		ProgramID:   programID,
		StartDate:   schedule.DateOf(startDate),
		CurrentWeek: slots[0].Week,
		CurrentDay:  slots[0].Day,
		Timezone:    timezone,
		IsActive:    true,
	}
	id, err := s.userProgramRepo.Create(ctx, up)
	if err != nil {
		return nil, err
	}
	up.ID = id

	logrus.WithFields(logrus.Fields{
		"userId":    userID.Hex(),
		"programId": programID.Hex(),
		"startDate": up.StartDate.Format(schedule.DateLayout),
	}).Info("program activated")
	return up, nil
}

// GetActiveProgram retrieves the user's active activation.
func (s *trackerService) GetActiveProgram(ctx context.Context, userID primitive.ObjectID) (*domain.UserProgram, error) {
	up, err := s.userProgramRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveProgram
		}
		return nil, err
	}
	return up, nil
}

// LogWorkout appends a completion or skip to the ledger and advances the
// progress pointer to the next slot in catalog order, cycling back to the
// first slot once the program is exhausted.
func (s *trackerService) LogWorkout(ctx context.Context, userID, slotID primitive.ObjectID, occurredAt time.Time, skipped bool, notes string, rating *int, durationMinutes *int) (*domain.WorkoutLog, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidRating
	}
	if occurredAt.IsZero() {
		return nil, errors.New("occurredAt is required")
	}

	up, err := s.GetActiveProgram(ctx, userID)
	if err != nil {
		return nil, err
	}

	slot, err := s.programRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	if slot.ProgramID != up.ProgramID {
		return nil, ErrSlotNotInProgram
	}

	log := &domain.WorkoutLog{
		UserID:          userID,
		ProgramID:       up.ProgramID,
		SlotID:          slot.ID,
		Week:            slot.Week,
		Day:             slot.Day,
		OccurredAt:      occurredAt,
		Skipped:         skipped,
		Notes:           notes,
		Rating:          rating,
		DurationMinutes: durationMinutes,
	}
	logID, err := s.workoutLogRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = logID

	// Advance the pointer past the slot that was just logged. A failure here
	// leaves the ledger entry in place; the next log attempt re-derives the
	// pointer from the catalog, so no compensation is needed.
	if err := s.advancePointer(ctx, up, slot); err != nil {
		logrus.WithError(err).WithField("userId", userID.Hex()).Error("failed to advance progress pointer")
		return nil, err
	}

	return log, nil
}

// advancePointer moves the activation's (currentWeek, currentDay) to the
// slot after the one just logged, wrapping to the start of the catalog.
func (s *trackerService) advancePointer(ctx context.Context, up *domain.UserProgram, logged *domain.ProgramSlot) error {
	slots, err := s.programRepo.GetSlotsByProgramID(ctx, up.ProgramID)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return ErrProgramHasNoSlots
	}

	next := slots[0]
	for i := range slots {
		if slots[i].Week == logged.Week && slots[i].Day == logged.Day {
			next = slots[(i+1)%len(slots)]
			break
		}
	}
	return s.userProgramRepo.UpdatePointer(ctx, up.ID, next.Week, next.Day)
}

// EditLog updates the only mutable fields of a ledger entry: notes and rating.
func (s *trackerService) EditLog(ctx context.Context, userID, logID primitive.ObjectID, notes string, rating *int) (*domain.WorkoutLog, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidRating
	}
	err := s.workoutLogRepo.UpdateNotesAndRating(ctx, logID, userID, notes, rating)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return s.workoutLogRepo.GetByID(ctx, logID)
}
