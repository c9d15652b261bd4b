// internal/domain/models/ministry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Ministry struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	NameCI        string               `bson:"name_ci" json:"name_ci"`
	Description   string               `bson:"description,omitempty" json:"description,omitempty"`
	ResponsibleID *primitive.ObjectID  `bson:"responsible_id,omitempty" json:"responsible_id,omitempty"`
	Members       []primitive.ObjectID `bson:"members" json:"members"`

	LegacyID string `bson:"legacy_id,omitempty" json:"legacy_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
