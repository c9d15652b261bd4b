// internal/domain/models/congregation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Congregation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"name_ci"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	CityCI    string             `bson:"city_ci,omitempty" json:"city_ci,omitempty"`
	Contact   string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Latitude  *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`

	LegacyID string `bson:"legacy_id,omitempty" json:"legacy_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasLocation reports whether both coordinates are set.
func (c Congregation) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}
