package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
)

// seedProgram inserts a published program with one slot per (week, day) pair,
// in catalog order, and returns the program plus its slots.
func seedProgram(t *testing.T, repo *fakeProgramRepo, published bool, coords ...[2]int) (*domain.Program, []domain.ProgramSlot) {
	t.Helper()
	ctx := context.Background()

	program := &domain.Program{
		CoachID:     primitive.NewObjectID(),
		Name:        "Strength Base",
		IsPublished: published,
	}
	_, err := repo.Create(ctx, program)
	require.NoError(t, err)

	for _, wd := range coords {
		_, err := repo.AddSlot(ctx, &domain.ProgramSlot{
			ProgramID: program.ID,
			Week:      wd[0],
			Day:       wd[1],
			Name:      "Session",
		})
		require.NoError(t, err)
	}
	slots, err := repo.GetSlotsByProgramID(ctx, program.ID)
	require.NoError(t, err)
	return program, slots
}

func newTrackerFixture() (*fakeProgramRepo, *fakeUserProgramRepo, *fakeWorkoutLogRepo, TrackerService) {
	programRepo := newFakeProgramRepo()
	userProgramRepo := newFakeUserProgramRepo()
	workoutLogRepo := newFakeWorkoutLogRepo()
	svc := NewTrackerService(programRepo, userProgramRepo, workoutLogRepo)
	return programRepo, userProgramRepo, workoutLogRepo, svc
}

func TestActivateProgram_Success(t *testing.T) {
	ctx := context.Background()
	programRepo, userProgramRepo, _, svc := newTrackerFixture()
	program, _ := seedProgram(t, programRepo, true, [2]int{1, 1}, [2]int{1, 3}, [2]int{2, 1})
	userID := primitive.NewObjectID()

	start := time.Date(2025, time.March, 3, 14, 30, 0, 0, time.UTC)
	up, err := svc.ActivateProgram(ctx, userID, program.ID, start, "Europe/Berlin")
	require.NoError(t, err)

	assert.True(t, up.IsActive)
	assert.Equal(t, 1, up.CurrentWeek)
	assert.Equal(t, 1, up.CurrentDay)
	assert.Equal(t, "Europe/Berlin", up.Timezone)
	// Start date is normalized to midnight regardless of the submitted time.
	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), up.StartDate)

	stored, err := userProgramRepo.GetActiveByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, up.ID, stored.ID)
}

func TestActivateProgram_ReplacesPreviousActivation(t *testing.T) {
	ctx := context.Background()
	programRepo, userProgramRepo, _, svc := newTrackerFixture()
	first, _ := seedProgram(t, programRepo, true, [2]int{1, 1})
	second, _ := seedProgram(t, programRepo, true, [2]int{1, 2})
	userID := primitive.NewObjectID()
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	_, err := svc.ActivateProgram(ctx, userID, first.ID, start, "")
	require.NoError(t, err)
	up, err := svc.ActivateProgram(ctx, userID, second.ID, start, "")
	require.NoError(t, err)

	active, err := userProgramRepo.GetActiveByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, up.ID, active.ID)
	assert.Equal(t, second.ID, active.ProgramID)
	assert.Equal(t, 1, userProgramRepo.deactivated)
}

func TestActivateProgram_Validation(t *testing.T) {
	ctx := context.Background()
	programRepo, _, _, svc := newTrackerFixture()
	unpublished, _ := seedProgram(t, programRepo, false, [2]int{1, 1})
	empty, _ := seedProgram(t, programRepo, true)
	published, _ := seedProgram(t, programRepo, true, [2]int{1, 1})
	userID := primitive.NewObjectID()
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	_, err := svc.ActivateProgram(ctx, userID, primitive.NewObjectID(), start, "")
	assert.ErrorIs(t, err, ErrProgramNotFound)

	_, err = svc.ActivateProgram(ctx, userID, unpublished.ID, start, "")
	assert.ErrorIs(t, err, ErrProgramNotPublished)

	_, err = svc.ActivateProgram(ctx, userID, empty.ID, start, "")
	assert.ErrorIs(t, err, ErrProgramHasNoSlots)

	_, err = svc.ActivateProgram(ctx, userID, published.ID, start, "Mars/Olympus")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestLogWorkout_AdvancesPointer(t *testing.T) {
	ctx := context.Background()
	programRepo, userProgramRepo, _, svc := newTrackerFixture()
	program, slots := seedProgram(t, programRepo, true, [2]int{1, 1}, [2]int{1, 3}, [2]int{2, 1})
	userID := primitive.NewObjectID()
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	up, err := svc.ActivateProgram(ctx, userID, program.ID, start, "")
	require.NoError(t, err)

	rating := 4
	log, err := svc.LogWorkout(ctx, userID, slots[0].ID, start.Add(18*time.Hour), false, "solid session", &rating, nil)
	require.NoError(t, err)
	assert.False(t, log.ID.IsZero())
	assert.Equal(t, 1, log.Week)
	assert.Equal(t, 1, log.Day)
	assert.Equal(t, program.ID, log.ProgramID)

	after, err := userProgramRepo.GetByID(ctx, up.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CurrentWeek)
	assert.Equal(t, 3, after.CurrentDay)
}

func TestLogWorkout_PointerWrapsToFirstSlot(t *testing.T) {
	ctx := context.Background()
	programRepo, userProgramRepo, _, svc := newTrackerFixture()
	program, slots := seedProgram(t, programRepo, true, [2]int{1, 1}, [2]int{1, 3})
	userID := primitive.NewObjectID()
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	up, err := svc.ActivateProgram(ctx, userID, program.ID, start, "")
	require.NoError(t, err)

	last := slots[len(slots)-1]
	_, err = svc.LogWorkout(ctx, userID, last.ID, start.Add(24*time.Hour), true, "", nil, nil)
	require.NoError(t, err)

	after, err := userProgramRepo.GetByID(ctx, up.ID)
	require.NoError(t, err)
	assert.Equal(t, slots[0].Week, after.CurrentWeek)
	assert.Equal(t, slots[0].Day, after.CurrentDay)
}

func TestLogWorkout_Validation(t *testing.T) {
	ctx := context.Background()
	programRepo, _, _, svc := newTrackerFixture()
	program, slots := seedProgram(t, programRepo, true, [2]int{1, 1})
	_, otherSlots := seedProgram(t, programRepo, true, [2]int{1, 2})
	userID := primitive.NewObjectID()
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	occurred := start.Add(10 * time.Hour)

	// No activation yet.
	_, err := svc.LogWorkout(ctx, userID, slots[0].ID, occurred, false, "", nil, nil)
	assert.ErrorIs(t, err, ErrNoActiveProgram)

	_, err = svc.ActivateProgram(ctx, userID, program.ID, start, "")
	require.NoError(t, err)

	_, err = svc.LogWorkout(ctx, userID, primitive.NewObjectID(), occurred, false, "", nil, nil)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = svc.LogWorkout(ctx, userID, otherSlots[0].ID, occurred, false, "", nil, nil)
	assert.ErrorIs(t, err, ErrSlotNotInProgram)

	bad := 6
	_, err = svc.LogWorkout(ctx, userID, slots[0].ID, occurred, false, "", &bad, nil)
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestEditLog(t *testing.T) {
	ctx := context.Background()
	programRepo, _, _, svc := newTrackerFixture()
	program, slots := seedProgram(t, programRepo, true, [2]int{1, 1}, [2]int{1, 2})
	userID := primitive.NewObjectID()
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	_, err := svc.ActivateProgram(ctx, userID, program.ID, start, "")
	require.NoError(t, err)
	log, err := svc.LogWorkout(ctx, userID, slots[0].ID, start.Add(9*time.Hour), false, "first pass", nil, nil)
	require.NoError(t, err)

	rating := 5
	updated, err := svc.EditLog(ctx, userID, log.ID, "felt great actually", &rating)
	require.NoError(t, err)
	assert.Equal(t, "felt great actually", updated.Notes)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5, *updated.Rating)

	// Another user cannot touch the entry.
	_, err = svc.EditLog(ctx, primitive.NewObjectID(), log.ID, "hijack", nil)
	assert.ErrorIs(t, err, ErrLogNotFound)

	bad := 0
	_, err = svc.EditLog(ctx, userID, log.ID, "", &bad)
	assert.ErrorIs(t, err, ErrInvalidRating)
}
