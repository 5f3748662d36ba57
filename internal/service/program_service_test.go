package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
)

func TestCreateProgramAndAddSlots(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProgramRepo()
	svc := NewProgramService(repo)
	coachID := primitive.NewObjectID()

	program, err := svc.CreateProgram(ctx, coachID, "12 Week Strength Base", "linear progression", "Novice")
	require.NoError(t, err)
	assert.False(t, program.IsPublished, "new programs start unpublished")

	slot, err := svc.AddSlot(ctx, coachID, program.ID, 1, 1, "Heavy Squat", "strength", 60, []domain.SlotExercise{
		{Name: "Back Squat", Sets: 5, Reps: "5"},
		{Name: "RDL", Sets: 3, Reps: "8-12"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, slot.Week)
	assert.Equal(t, 1, slot.Day)
	assert.Len(t, slot.Exercises, 2)

	details, err := svc.GetProgramDetails(ctx, program.ID)
	require.NoError(t, err)
	assert.Len(t, details.Slots, 1)
}

func TestAddSlot_Validation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProgramRepo()
	svc := NewProgramService(repo)
	coachID := primitive.NewObjectID()

	program, err := svc.CreateProgram(ctx, coachID, "Base", "", "")
	require.NoError(t, err)

	// Day 7 is the rest day and never carries a slot.
	_, err = svc.AddSlot(ctx, coachID, program.ID, 1, 7, "Sunday Session", "", 0, nil)
	assert.ErrorIs(t, err, ErrSlotValidationFailed)

	_, err = svc.AddSlot(ctx, coachID, program.ID, 0, 1, "Week Zero", "", 0, nil)
	assert.ErrorIs(t, err, ErrSlotValidationFailed)

	_, err = svc.AddSlot(ctx, coachID, program.ID, 1, 1, "", "", 0, nil)
	assert.ErrorIs(t, err, ErrSlotValidationFailed)

	// Only the authoring coach can add slots.
	_, err = svc.AddSlot(ctx, primitive.NewObjectID(), program.ID, 1, 1, "Squat", "", 0, nil)
	assert.ErrorIs(t, err, ErrProgramAccessDenied)

	_, err = svc.AddSlot(ctx, coachID, primitive.NewObjectID(), 1, 1, "Squat", "", 0, nil)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestPublishProgram(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProgramRepo()
	svc := NewProgramService(repo)
	coachID := primitive.NewObjectID()

	program, err := svc.CreateProgram(ctx, coachID, "Base", "", "")
	require.NoError(t, err)

	// Ownership is enforced at publish time.
	err = svc.PublishProgram(ctx, primitive.NewObjectID(), program.ID, true)
	assert.ErrorIs(t, err, ErrProgramNotFound)

	require.NoError(t, svc.PublishProgram(ctx, coachID, program.ID, true))

	published, err := svc.ListPublishedPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, program.ID, published[0].ID)

	require.NoError(t, svc.PublishProgram(ctx, coachID, program.ID, false))
	published, err = svc.ListPublishedPrograms(ctx)
	require.NoError(t, err)
	assert.Empty(t, published)
}

func TestGetProgramsByCoach(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProgramRepo()
	svc := NewProgramService(repo)
	coachID := primitive.NewObjectID()

	_, err := svc.CreateProgram(ctx, coachID, "One", "", "")
	require.NoError(t, err)
	_, err = svc.CreateProgram(ctx, coachID, "Two", "", "")
	require.NoError(t, err)
	_, err = svc.CreateProgram(ctx, primitive.NewObjectID(), "Other", "", "")
	require.NoError(t, err)

	mine, err := svc.GetProgramsByCoach(ctx, coachID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
