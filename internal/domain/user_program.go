package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProgram is an athlete's activation of a program: the start date plus
// the progress pointer (currentWeek, currentDay) marking the slot the athlete
// is on right now. The pointer moves only through the logging workflow, never
// through calendar rendering, so it can drift from pure elapsed-day arithmetic
// when workouts are skipped or rescheduled.
type UserProgram struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	ProgramID   primitive.ObjectID `bson:"programId" json:"programId"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"` // date-only, stored as UTC midnight
	CurrentWeek int                `bson:"currentWeek" json:"currentWeek"`
	CurrentDay  int                `bson:"currentDay" json:"currentDay"`
	Timezone    string             `bson:"timezone,omitempty" json:"timezone,omitempty"` // IANA name, e.g. "Europe/Berlin"
	IsActive    bool               `bson:"isActive" json:"isActive"` // at most one active per user
	ActivatedAt time.Time          `bson:"activatedAt" json:"activatedAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
