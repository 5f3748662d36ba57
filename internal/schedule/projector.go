package schedule

import (
	"time"

	"mveselov/fitflow/internal/domain"
)

// Project resolves and classifies every date in [from, to] inclusive,
// returning a map keyed by ISO date string. Every date in range gets exactly
// one entry. A missing program or progress pointer is a valid state and
// projects to all-rest output; only a malformed range is an error.
func Project(from, to, today time.Time, slots []domain.ProgramSlot, progress *domain.UserProgram, logs []domain.WorkoutLog) (map[string]CalendarEntry, error) {
	from, to = DateOf(from), DateOf(to)
	if from.After(to) {
		return nil, ErrInvalidRange
	}

	ix := newSlotIndex(slots)
	entries := make(map[string]CalendarEntry, daysBetween(from, to)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		slot := ix.resolve(d, today, progress)
		status, log := Classify(d, today, slot, logs)
		entries[d.Format(DateLayout)] = CalendarEntry{
			Date:   d,
			Status: status,
			Slot:   slot,
			Log:    log,
		}
	}
	return entries, nil
}

// ProjectMonth projects one calendar month.
func ProjectMonth(year int, month time.Month, today time.Time, slots []domain.ProgramSlot, progress *domain.UserProgram, logs []domain.WorkoutLog) (map[string]CalendarEntry, error) {
	from, to := MonthRange(year, month)
	return Project(from, to, today, slots, progress, logs)
}

// Aggregate tallies the statuses of a projection. It recomputes from the
// entries on every call; rest days are intentionally not counted.
func Aggregate(entries map[string]CalendarEntry) Totals {
	var t Totals
	for _, e := range entries {
		switch e.Status {
		case StatusCompleted:
			t.Completed++
		case StatusSkipped:
			t.Skipped++
		case StatusMissed:
			t.Missed++
		case StatusUpcoming:
			t.Upcoming++
		}
	}
	return t
}
