package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program is a training program: an append-only catalog of workout slots
// authored by a coach. Slots are never edited in place; a coach publishes
// a replacement program instead.
type Program struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID     primitive.ObjectID `bson:"coachId" json:"coachId"`
	Name        string             `bson:"name" json:"name"`                 // e.g., "12 Week Strength Base"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Level       string             `bson:"level,omitempty" json:"level,omitempty"` // e.g., "Novice", "Intermediate", "Advanced"
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SlotExercise is one exercise within a slot's ordered list. Embedded in the
// slot document rather than referenced, since a slot is immutable once created.
type SlotExercise struct {
	Name  string `bson:"name" json:"name"`
	Sets  int    `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps  string `bson:"reps,omitempty" json:"reps,omitempty"` // e.g., "5x5", "8-12", "AMRAP"
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ProgramSlot is one planned workout within a program, identified by its
// (week, day) coordinate. Day runs 1..6; day 7 is the rest day and carries
// no slot. Unique per (programId, week, day).
type ProgramSlot struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProgramID        primitive.ObjectID `bson:"programId" json:"programId"`
	Week             int                `bson:"week" json:"week"` // 1-based
	Day              int                `bson:"day" json:"day"`   // 1..6
	Name             string             `bson:"name" json:"name"` // e.g., "Heavy Squat + Accessories"
	WorkoutType      string             `bson:"workoutType,omitempty" json:"workoutType,omitempty"` // e.g., "strength", "conditioning"
	EstimatedMinutes int                `bson:"estimatedMinutes,omitempty" json:"estimatedMinutes,omitempty"`
	Exercises        []SlotExercise     `bson:"exercises,omitempty" json:"exercises,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
