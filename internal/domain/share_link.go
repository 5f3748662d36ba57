package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShareLink is a public, read-only token an athlete can hand out to expose
// one month of their calendar projection. The token is a uuid string; the
// link carries no auth beyond knowing it.
type ShareLink struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Token     string             `bson:"token" json:"token"` // uuid, unique
	Year      int                `bson:"year" json:"year"`
	Month     int                `bson:"month" json:"month"` // 1..12
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}
