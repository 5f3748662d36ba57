package schedule

import (
	"sort"
	"time"

	"mveselov/fitflow/internal/domain"
)

// slotIndex holds a program's slots ordered by (week, day) with a coordinate
// lookup, so a month projection resolves each date in O(1).
type slotIndex struct {
	ordered   []domain.ProgramSlot
	byWeekDay map[[2]int]int // (week, day) -> position in ordered
	maxWeek   int
}

func newSlotIndex(slots []domain.ProgramSlot) *slotIndex {
	ordered := make([]domain.ProgramSlot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Week != ordered[j].Week {
			return ordered[i].Week < ordered[j].Week
		}
		return ordered[i].Day < ordered[j].Day
	})

	ix := &slotIndex{
		ordered:   ordered,
		byWeekDay: make(map[[2]int]int, len(ordered)),
	}
	for i, s := range ordered {
		ix.byWeekDay[[2]int{s.Week, s.Day}] = i
		if s.Week > ix.maxWeek {
			ix.maxWeek = s.Week
		}
	}
	return ix
}

func (ix *slotIndex) empty() bool {
	return len(ix.ordered) == 0
}

// resolve determines which slot, if any, applies to date.
//
// Past and present dates resolve strictly by elapsed-day arithmetic from the
// program start, so historical views stay stable no matter how the progress
// pointer later moves. Future dates resolve relative to the pointer, because
// the pointer reflects actual skips and reschedules that shift the athlete
// off the pure elapsed-day schedule. A finished program cycles rather than
// running out.
func (ix *slotIndex) resolve(date, today time.Time, progress *domain.UserProgram) *domain.ProgramSlot {
	if progress == nil || ix.empty() {
		return nil
	}

	elapsed := daysBetween(progress.StartDate, date)
	if elapsed < 0 {
		return nil // pre-start
	}
	week := elapsed/DaysPerWeek + 1
	day := elapsed%DaysPerWeek + 1
	if day == RestDay {
		return nil
	}

	if !DateOf(date).After(DateOf(today)) {
		// Past or present: elapsed-day arithmetic, weeks cycling once the
		// program is exhausted. A (week, day) with no slot is a rest gap,
		// not an error.
		if week > ix.maxWeek {
			week = (week-1)%ix.maxWeek + 1
		}
		if i, ok := ix.byWeekDay[[2]int{week, day}]; ok {
			return &ix.ordered[i]
		}
		return nil
	}

	// Future: offset from the pointer's position in slot order. The ordered
	// list already excludes rest-day positions, so the raw day offset indexes
	// it directly, wrapping modulo the list length.
	pi, ok := ix.byWeekDay[[2]int{progress.CurrentWeek, progress.CurrentDay}]
	if !ok {
		return nil // pointer references a slot this program does not have
	}
	i := (pi + daysBetween(today, date)) % len(ix.ordered)
	return &ix.ordered[i]
}

// ResolveSlot is the standalone form of slot resolution for a single date.
// Callers projecting a whole range should use Project, which indexes the
// slot list once.
func ResolveSlot(date, today time.Time, slots []domain.ProgramSlot, progress *domain.UserProgram) *domain.ProgramSlot {
	return newSlotIndex(slots).resolve(date, today, progress)
}
