// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a console account. Roles are additive tags (admin, dirigente,
// obreiro, membro); a user may hold several at once.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FullName       string               `bson:"full_name" json:"full_name"`
	FullNameCI     string               `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email          string               `bson:"email" json:"email"`
	Phone          string               `bson:"phone,omitempty" json:"phone,omitempty"`
	CongregationID *primitive.ObjectID  `bson:"congregation_id,omitempty" json:"congregation_id,omitempty"`
	Roles          []string             `bson:"roles" json:"roles"`
	MinistryIDs    []primitive.ObjectID `bson:"ministry_ids" json:"ministry_ids"`

	AuthMethod   string  `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // password | firebase | google
	PasswordHash *string `bson:"password_hash,omitempty" json:"-"`
	FirebaseUID  *string `bson:"firebase_uid,omitempty" json:"firebase_uid,omitempty"`
	Status       string  `bson:"status,omitempty" json:"status,omitempty"` // active | disabled

	// LegacyID is the document id from the Firestore-era data set.
	LegacyID string `bson:"legacy_id,omitempty" json:"legacy_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasRole reports whether the user carries the given role tag.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User status values.
const (
	UserActive   = "active"
	UserDisabled = "disabled"
)

// Auth methods.
const (
	AuthPassword = "password"
	AuthGoogle   = "google"
	AuthFirebase = "firebase"
)
