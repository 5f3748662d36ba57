package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLog is one logged workout event: a completion or an explicit skip
// of a program slot. Append-only; only Notes and Rating may be edited after
// creation. Several logs can land on the same calendar date — the scheduling
// engine picks the one with the latest OccurredAt as authoritative.
type WorkoutLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ProgramID primitive.ObjectID `bson:"programId" json:"programId"`
	SlotID    primitive.ObjectID `bson:"slotId" json:"slotId"`

	// Denormalized slot coordinate, so history survives program replacement.
	Week int `bson:"week" json:"week"`
	Day  int `bson:"day" json:"day"`

	OccurredAt      time.Time `bson:"occurredAt" json:"occurredAt"`
	Skipped         bool      `bson:"skipped" json:"skipped"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Rating          *int      `bson:"rating,omitempty" json:"rating,omitempty"` // 1..5
	DurationMinutes *int      `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
