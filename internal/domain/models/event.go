// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a scheduled service (culto, reunião, ensaio...).
type Event struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title          string               `bson:"title" json:"title"`
	TitleCI        string               `bson:"title_ci" json:"title_ci"`
	Date           time.Time            `bson:"date" json:"date"`
	Time           string               `bson:"time,omitempty" json:"time,omitempty"` // HH:MM
	CongregationID *primitive.ObjectID  `bson:"congregation_id,omitempty" json:"congregation_id,omitempty"`
	MinistryID     *primitive.ObjectID  `bson:"ministry_id,omitempty" json:"ministry_id,omitempty"`
	Status         string               `bson:"status" json:"status"` // agendado | realizado | cancelado
	Notes          string               `bson:"notes,omitempty" json:"notes,omitempty"`
	Participants   []primitive.ObjectID `bson:"participants" json:"participants"`

	LegacyID string `bson:"legacy_id,omitempty" json:"legacy_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
