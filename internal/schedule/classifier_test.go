package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mveselov/fitflow/internal/domain"
)

func logAt(t time.Time, skipped bool) domain.WorkoutLog {
	return domain.WorkoutLog{OccurredAt: t, Skipped: skipped}
}

func TestClassify_RestWinsOverEverything(t *testing.T) {
	day := date(2025, time.January, 12)
	today := date(2025, time.January, 20)

	// A nil slot is rest even when a completion record exists on the date.
	logs := []domain.WorkoutLog{logAt(day.Add(9*time.Hour), false)}
	status, log := Classify(day, today, nil, logs)
	assert.Equal(t, StatusRest, status)
	assert.Nil(t, log)
}

func TestClassify_LoggedDates(t *testing.T) {
	slot := &domain.ProgramSlot{Week: 1, Day: 3, Name: "W1D3"}
	day := date(2025, time.January, 8)
	today := date(2025, time.January, 10)

	status, log := Classify(day, today, slot, []domain.WorkoutLog{logAt(day.Add(18*time.Hour), false)})
	assert.Equal(t, StatusCompleted, status)
	require.NotNil(t, log)

	status, log = Classify(day, today, slot, []domain.WorkoutLog{logAt(day.Add(7*time.Hour), true)})
	assert.Equal(t, StatusSkipped, status)
	require.NotNil(t, log)

	// Logs on other dates are irrelevant.
	status, log = Classify(day, today, slot, []domain.WorkoutLog{logAt(date(2025, time.January, 9), false)})
	assert.Equal(t, StatusMissed, status)
	assert.Nil(t, log)
}

func TestClassify_LatestRecordWins(t *testing.T) {
	slot := &domain.ProgramSlot{Week: 1, Day: 3, Name: "W1D3"}
	day := date(2025, time.January, 8)
	today := date(2025, time.January, 10)

	morning := logAt(day.Add(8*time.Hour), true)
	morning.Notes = "bailed early"
	evening := logAt(day.Add(19*time.Hour), false)
	evening.Notes = "made it up in the evening"

	// Order in the ledger must not matter; the latest OccurredAt is
	// authoritative.
	for _, logs := range [][]domain.WorkoutLog{
		{morning, evening},
		{evening, morning},
	} {
		status, log := Classify(day, today, slot, logs)
		assert.Equal(t, StatusCompleted, status)
		require.NotNil(t, log)
		assert.Equal(t, "made it up in the evening", log.Notes)
	}
}

func TestClassify_UnloggedDates(t *testing.T) {
	slot := &domain.ProgramSlot{Week: 1, Day: 2, Name: "W1D2"}
	today := date(2025, time.January, 10)

	status, _ := Classify(date(2025, time.January, 7), today, slot, nil)
	assert.Equal(t, StatusMissed, status)

	// Today is not missed yet.
	status, _ = Classify(today, today, slot, nil)
	assert.Equal(t, StatusUpcoming, status)

	status, _ = Classify(date(2025, time.January, 14), today, slot, nil)
	assert.Equal(t, StatusUpcoming, status)
}

func TestClassify_TimestampNoiseIgnored(t *testing.T) {
	// Date comparison is calendar-date only; the time-of-day and a non-UTC
	// offset on the ledger timestamp must not shift the match.
	slot := &domain.ProgramSlot{Week: 1, Day: 4, Name: "W1D4"}
	day := date(2025, time.January, 9)
	today := date(2025, time.January, 15)

	loc := time.FixedZone("UTC+2", 2*60*60)
	rec := domain.WorkoutLog{OccurredAt: time.Date(2025, time.January, 9, 23, 30, 0, 0, loc)}

	status, log := Classify(day, today, slot, []domain.WorkoutLog{rec})
	assert.Equal(t, StatusCompleted, status)
	require.NotNil(t, log)
}
