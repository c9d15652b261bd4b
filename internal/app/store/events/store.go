package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpcomingLimit caps the dashboard's upcoming-events widget.
const UpcomingLimit = 5

var errBadStatus = errors.New(`status must be "agendado"|"realizado"|"cancelado"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("eventos")}
}

// GetByID loads an event. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns every event, most recent date first.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}))
}

// Upcoming returns up to limit events dated today or later, soonest first.
func (s *Store) Upcoming(ctx context.Context, from time.Time, limit int64) ([]models.Event, error) {
	if limit <= 0 {
		limit = UpcomingLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	return s.find(ctx, bson.M{"date": bson.M{"$gte": from}}, opts)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Option is an event in a select list.
type Option struct {
	ID    primitive.ObjectID `bson:"_id"`
	Title string             `bson:"title"`
	Date  time.Time          `bson:"date"`
}

// Options returns the events for a select list, most recent first.
func (s *Store) Options(ctx context.Context) ([]Option, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1, "title": 1, "date": 1})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Option
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Title returns the title of id; found is false when the event does not
// exist.
func (s *Store) Title(ctx context.Context, id primitive.ObjectID) (string, bool, error) {
	var doc struct {
		Title string `bson:"title"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"title": 1})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Title, true, nil
}

// Count returns the number of events.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Create inserts e. Status defaults to agendado.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	e.TitleCI = text.Fold(e.Title)
	if e.Status == "" {
		e.Status = string(status.Agendado)
	}
	if !validStatus(e.Status) {
		return models.Event{}, errBadStatus
	}
	if e.Participants == nil {
		e.Participants = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// Update holds the form fields of an event. It replaces every field; a
// nil reference removes it.
type Update struct {
	Title          string
	Date           time.Time
	Time           string
	CongregationID *primitive.ObjectID
	MinistryID     *primitive.ObjectID
	Status         string
	Notes          string
	Participants   []primitive.ObjectID
}

// Update merges upd into the event. Returns mongo.ErrNoDocuments when the
// event does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	if upd.Status == "" {
		upd.Status = string(status.Agendado)
	}
	if !validStatus(upd.Status) {
		return errBadStatus
	}
	if upd.Participants == nil {
		upd.Participants = []primitive.ObjectID{}
	}

	set := bson.M{
		"title":        upd.Title,
		"title_ci":     text.Fold(upd.Title),
		"date":         upd.Date,
		"time":         upd.Time,
		"status":       upd.Status,
		"notes":        upd.Notes,
		"participants": upd.Participants,
		"updated_at":   time.Now().UTC(),
	}
	unset := bson.M{}
	setRef(set, unset, "congregation_id", upd.CongregationID)
	setRef(set, unset, "ministry_id", upd.MinistryID)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the event. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func setRef(set, unset bson.M, key string, id *primitive.ObjectID) {
	if id != nil && !id.IsZero() {
		set[key] = *id
		return
	}
	unset[key] = ""
}

func validStatus(s string) bool {
	for _, st := range status.EventStatuses() {
		if string(st) == s {
			return true
		}
	}
	return false
}
