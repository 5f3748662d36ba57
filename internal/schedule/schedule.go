// Package schedule maps a week/day-indexed training program onto concrete
// calendar dates and classifies every date into a status. It is a pure
// projection: no I/O, no clock reads, no mutation of its inputs. "today" is
// always supplied by the caller so results are reproducible.
package schedule

import (
	"errors"
	"time"

	"mveselov/fitflow/internal/domain"
)

// Status classifies a single calendar date.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusMissed    Status = "missed"
	StatusRest      Status = "rest"
)

const (
	// DaysPerWeek is the calendar width of one program week.
	DaysPerWeek = 7
	// RestDay is the 1-based day index that never carries a slot.
	RestDay = 7
)

// DateLayout is the key format of the projection map (ISO yyyy-mm-dd).
const DateLayout = "2006-01-02"

// ErrInvalidRange is returned when a projection range ends before it starts.
// It distinguishes a malformed computation from the valid "no data" case,
// which projects to all-rest output instead of erroring.
var ErrInvalidRange = errors.New("schedule: range start is after range end")

// CalendarEntry is the engine's output for a single date. Derived, never
// persisted; recomputed on every query.
type CalendarEntry struct {
	Date   time.Time           `json:"date"`
	Status Status              `json:"status"`
	Slot   *domain.ProgramSlot `json:"slot,omitempty"`
	Log    *domain.WorkoutLog  `json:"completionRecord,omitempty"`
}

// Totals are the monthly aggregate counters, always recomputed from the
// entry map rather than kept as running state.
type Totals struct {
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
	Missed    int `json:"missed"`
	Upcoming  int `json:"upcoming"`
}

// DateOf truncates a timestamp to its calendar date, re-anchored at UTC
// midnight. All engine arithmetic runs on these normalized values; timezone
// localization happens at the caller boundary.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two timestamps fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// daysBetween counts whole days from a to b (negative when b precedes a).
func daysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)) / (24 * time.Hour))
}

// MonthRange returns the first and last date of the given month.
func MonthRange(year int, month time.Month) (from, to time.Time) {
	from = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, -1)
	return from, to
}
