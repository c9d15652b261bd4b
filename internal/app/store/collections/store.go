package collectionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LatestLimit caps the dashboard's recent-collections widget.
const LatestLimit = 5

var errBadType = errors.New(`type must be "dizimo"|"oferta"|"especial"|"outro"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("coletas")}
}

// GetByID loads a collection. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error) {
	var c models.Collection
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every collection, most recent date first.
func (s *Store) List(ctx context.Context) ([]models.Collection, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(byDateDesc))
}

// Latest returns the limit most recent collections.
func (s *Store) Latest(ctx context.Context, limit int64) ([]models.Collection, error) {
	if limit <= 0 {
		limit = LatestLimit
	}
	return s.find(ctx, bson.M{}, options.Find().SetSort(byDateDesc).SetLimit(limit))
}

// Between returns the collections dated within [from, to], most recent first.
func (s *Store) Between(ctx context.Context, from, to time.Time) ([]models.Collection, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	return s.find(ctx, filter, options.Find().SetSort(byDateDesc))
}

// MonthSummary totals the collections dated in now's calendar month.
func (s *Store) MonthSummary(ctx context.Context, now time.Time) (Summary, error) {
	now = now.In(format.Location())
	from := format.FirstDayOfMonth(now.Year(), now.Month())
	to := format.EndOfDay(format.LastDayOfMonth(now.Year(), now.Month()))
	list, err := s.Between(ctx, from, to)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(list), nil
}

var byDateDesc = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Collection, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Collection
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of collections.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Create inserts c as pendente; receipt fields are cleared.
func (s *Store) Create(ctx context.Context, c models.Collection) (models.Collection, error) {
	if c.Type == "" {
		c.Type = string(status.Outro)
	}
	if !status.CollectionType(c.Type).Known() {
		return models.Collection{}, errBadType
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.Status = models.CollectionPending
	c.CollectedAmount = nil
	c.ReceiptNotes = ""
	c.ReceivedAt = nil
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Collection{}, err
	}
	return c, nil
}

// Update holds the editable fields of a collection. Status and receipt
// data are only changed through RegisterReceipt.
type Update struct {
	Type           string
	Date           time.Time
	EventID        *primitive.ObjectID
	ExpectedAmount float64
	Notes          string
}

// Update replaces the editable fields. Returns mongo.ErrNoDocuments when
// the collection does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	if upd.Type == "" {
		upd.Type = string(status.Outro)
	}
	if !status.CollectionType(upd.Type).Known() {
		return errBadType
	}
	set := bson.M{
		"type":            upd.Type,
		"date":            upd.Date,
		"expected_amount": upd.ExpectedAmount,
		"notes":           upd.Notes,
		"updated_at":      time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if upd.EventID != nil && !upd.EventID.IsZero() {
		set["event_id"] = *upd.EventID
	} else {
		update["$unset"] = bson.M{"event_id": ""}
	}
	return s.updateOne(ctx, id, update)
}

// RegisterReceipt marks the collection recebido with the amount actually
// collected. Registering again overwrites the previous receipt.
func (s *Store) RegisterReceipt(ctx context.Context, id primitive.ObjectID, collected float64, notes string, at time.Time) error {
	at = at.UTC()
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{
		"status":           models.CollectionReceived,
		"collected_amount": collected,
		"receipt_notes":    notes,
		"received_at":      at,
		"updated_at":       at,
	}})
}

func (s *Store) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the collection. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
