package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mveselov/fitflow/internal/domain"
	"mveselov/fitflow/internal/repository"
	"mveselov/fitflow/internal/schedule"
)

// --- Error Definitions ---
var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)

// CalendarView is one month of projected entries plus the aggregate tally.
type CalendarView struct {
	Year    int                               `json:"year"`
	Month   int                               `json:"month"`
	Entries map[string]schedule.CalendarEntry `json:"entries"`
	Totals  schedule.Totals                   `json:"totals"`
}

// CalendarService assembles a consistent snapshot (program slots, progress
// pointer, month's ledger) and hands it to the schedule engine. All state
// reads happen up front; the projection itself is pure. The reference time
// is a parameter rather than a clock read so results are reproducible.
type CalendarService interface {
	GetMonth(ctx context.Context, userID primitive.ObjectID, year int, month time.Month, now time.Time) (*CalendarView, error)
}

// calendarService implements the CalendarService interface.
type calendarService struct {
	userRepo        repository.UserRepository
	programRepo     repository.ProgramRepository
	userProgramRepo repository.UserProgramRepository
	workoutLogRepo  repository.WorkoutLogRepository
	defaultTimezone string
}

// NewCalendarService creates a new instance of calendarService.
func NewCalendarService(
	userRepo repository.UserRepository,
	programRepo repository.ProgramRepository,
	userProgramRepo repository.UserProgramRepository,
	workoutLogRepo repository.WorkoutLogRepository,
	defaultTimezone string,
) CalendarService {
	if defaultTimezone == "" {
		defaultTimezone = "UTC"
	}
	return &calendarService{
		userRepo:        userRepo,
		programRepo:     programRepo,
		userProgramRepo: userProgramRepo,
		workoutLogRepo:  workoutLogRepo,
		defaultTimezone: defaultTimezone,
	}
}

// GetMonth projects one calendar month for the user. Having no active
// program is a valid state and projects to all-rest output.
func (s *calendarService) GetMonth(ctx context.Context, userID primitive.ObjectID, year int, month time.Month, now time.Time) (*CalendarView, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	loc, err := s.userLocation(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := schedule.DateOf(now.In(loc))

	var (
		progress *domain.UserProgram
		slots    []domain.ProgramSlot
	)
	up, err := s.userProgramRepo.GetActiveByUserID(ctx, userID)
	switch {
	case err == nil:
		progress = up
		slots, err = s.programRepo.GetSlotsByProgramID(ctx, up.ProgramID)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrNotFound):
		// No active program: every date projects to rest.
	default:
		return nil, err
	}

	from, to := schedule.MonthRange(year, month)

	// The ledger stores UTC instants; fetch with a day's margin on each side
	// so entries logged near midnight in the user's timezone are not lost,
	// then localize so the engine's date-only comparison sees local dates.
	logs, err := s.workoutLogRepo.GetByUserAndRange(ctx, userID, from.AddDate(0, 0, -1), to.AddDate(0, 0, 2))
	if err != nil {
		return nil, err
	}
	for i := range logs {
		logs[i].OccurredAt = logs[i].OccurredAt.In(loc)
	}

	entries, err := schedule.Project(from, to, today, slots, progress, logs)
	if err != nil {
		return nil, err
	}

	return &CalendarView{
		Year:    year,
		Month:   int(month),
		Entries: entries,
		Totals:  schedule.Aggregate(entries),
	}, nil
}

// userLocation resolves the timezone that localizes "today": the activation's
// timezone, then the user profile's, then the configured default.
func (s *calendarService) userLocation(ctx context.Context, userID primitive.ObjectID) (*time.Location, error) {
	name := s.defaultTimezone

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if user != nil && user.Timezone != "" {
		name = user.Timezone
	}

	up, err := s.userProgramRepo.GetActiveByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if up != nil && up.Timezone != "" {
		name = up.Timezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, nil
	}
	return loc, nil
}
