// internal/domain/models/collection.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection status values.
const (
	CollectionPending  = "pendente"
	CollectionReceived = "recebido"
)

// Collection is an offering record (dízimo, oferta, especial, outro).
// CollectedAmount, ReceiptNotes and ReceivedAt are only set once the
// collection has been received.
type Collection struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Type           string              `bson:"type" json:"type"`
	Date           time.Time           `bson:"date" json:"date"`
	EventID        *primitive.ObjectID `bson:"event_id,omitempty" json:"event_id,omitempty"`
	ExpectedAmount float64             `bson:"expected_amount" json:"expected_amount"`
	Status         string              `bson:"status" json:"status"`
	Notes          string              `bson:"notes,omitempty" json:"notes,omitempty"`

	CollectedAmount *float64   `bson:"collected_amount,omitempty" json:"collected_amount,omitempty"`
	ReceiptNotes    string     `bson:"receipt_notes,omitempty" json:"receipt_notes,omitempty"`
	ReceivedAt      *time.Time `bson:"received_at,omitempty" json:"received_at,omitempty"`

	LegacyID string `bson:"legacy_id,omitempty" json:"legacy_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsReceived reports whether the collection has a recorded receipt.
func (c Collection) IsReceived() bool {
	return c.Status == CollectionReceived && c.CollectedAmount != nil
}

// DisplayAmount is the collected amount once received, otherwise the
// expected amount.
func (c Collection) DisplayAmount() float64 {
	if c.IsReceived() {
		return *c.CollectedAmount
	}
	return c.ExpectedAmount
}
