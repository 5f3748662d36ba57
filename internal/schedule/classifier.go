package schedule

import (
	"time"

	"mveselov/fitflow/internal/domain"
)

// Classify assigns exactly one status to a date, given the slot resolved for
// it and the full completion ledger. It also returns the authoritative log
// for the date, if one exists, for downstream display.
//
// Rules in priority order: no slot is rest; a log on the date wins over date
// arithmetic (latest OccurredAt breaks ties deterministically); otherwise
// dates before today are missed and today-or-later is upcoming.
func Classify(date, today time.Time, slot *domain.ProgramSlot, logs []domain.WorkoutLog) (Status, *domain.WorkoutLog) {
	if slot == nil {
		return StatusRest, nil
	}

	var latest *domain.WorkoutLog
	for i := range logs {
		if !SameDate(logs[i].OccurredAt, date) {
			continue
		}
		if latest == nil || logs[i].OccurredAt.After(latest.OccurredAt) {
			latest = &logs[i]
		}
	}

	if latest != nil {
		if latest.Skipped {
			return StatusSkipped, latest
		}
		return StatusCompleted, latest
	}

	if DateOf(date).Before(DateOf(today)) {
		return StatusMissed, nil
	}
	return StatusUpcoming, nil
}
