package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/repository"
	"mveselov/fitflow/internal/schedule"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound      = errors.New("program not found")
	ErrProgramAccessDenied  = errors.New("access denied to modify this program")
	ErrSlotValidationFailed = errors.New("slot validation failed")
	ErrSlotAlreadyExists    = errors.New("a slot already exists at this (week, day)")
	ErrSlotNotFound         = errors.New("slot not found")
)

// ProgramDetails bundles a program with its full ordered slot list.
type ProgramDetails struct {
	domain.Program
	Slots []domain.ProgramSlot `json:"slots"`
}

type ProgramService interface {
	CreateProgram(ctx context.Context, coachID primitive.ObjectID, name, description, level string) (*domain.Program, error)
	GetProgramDetails(ctx context.Context, programID primitive.ObjectID) (*ProgramDetails, error)
	GetProgramsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Program, error)
	ListPublishedPrograms(ctx context.Context) ([]domain.Program, error)
	PublishProgram(ctx context.Context, coachID, programID primitive.ObjectID, published bool) error

	// AddSlot appends one workout slot to a program's catalog. Slots are
	// immutable once created; there is intentionally no UpdateSlot.
	AddSlot(ctx context.Context, coachID, programID primitive.ObjectID, week, day int, name, workoutType string, estimatedMinutes int, exercises []domain.SlotExercise) (*domain.ProgramSlot, error)
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo repository.ProgramRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(programRepo repository.ProgramRepository) ProgramService {
	return &programService{programRepo: programRepo}
}

// CreateProgram handles the creation of a new (unpublished) program.
func (s *programService) CreateProgram(ctx context.Context, coachID primitive.ObjectID, name, description, level string) (*domain.Program, error) {
	if name == "" {
		return nil, errors.New("program name is required")
	}
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID is required to create a program")
	}

	program := &domain.Program{
		CoachID:     coachID,
		Name:        name,
		Description: description,
		Level:       level,
	}
	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	return s.programRepo.GetByID(ctx, programID)
}

// GetProgramDetails retrieves a program with its slots in catalog order.
func (s *programService) GetProgramDetails(ctx context.Context, programID primitive.ObjectID) (*ProgramDetails, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	slots, err := s.programRepo.GetSlotsByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	return &ProgramDetails{Program: *program, Slots: slots}, nil
}

// GetProgramsByCoach retrieves all programs a coach has authored.
func (s *programService) GetProgramsByCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Program, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID cannot be nil")
	}
	return s.programRepo.GetByCoachID(ctx, coachID)
}

// ListPublishedPrograms retrieves the browsable public catalog.
func (s *programService) ListPublishedPrograms(ctx context.Context) ([]domain.Program, error) {
	return s.programRepo.ListPublished(ctx)
}

// PublishProgram flips a program's published flag, enforcing ownership.
func (s *programService) PublishProgram(ctx context.Context, coachID, programID primitive.ObjectID, published bool) error {
	err := s.programRepo.SetPublished(ctx, programID, coachID, published)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgramNotFound
	}
	return err
}

// AddSlot validates and appends a slot. Day must land on an active weekday —
// the rest day never carries a slot.
func (s *programService) AddSlot(ctx context.Context, coachID, programID primitive.ObjectID, week, day int, name, workoutType string, estimatedMinutes int, exercises []domain.SlotExercise) (*domain.ProgramSlot, error) {
	if name == "" || week < 1 || day < 1 || day >= schedule.RestDay {
		return nil, ErrSlotValidationFailed
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.CoachID != coachID {
		return nil, ErrProgramAccessDenied
	}

	slot := &domain.ProgramSlot{
		ProgramID:        programID,
		Week:             week,
		Day:              day,
		Name:             name,
		WorkoutType:      workoutType,
		EstimatedMinutes: estimatedMinutes,
		Exercises:        exercises,
	}
	slotID, err := s.programRepo.AddSlot(ctx, slot)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlotAlreadyExists
		}
		return nil, err
	}
	return s.programRepo.GetSlotByID(ctx, slotID)
}
