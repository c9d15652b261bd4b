// internal/app/store/ministries/ministrystore.go
package ministrystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("ministerios")}
}

var byName = bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}

func (s *Store) Create(ctx context.Context, m models.Ministry) (models.Ministry, error) {
	now := time.Now().UTC()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.NameCI = text.Fold(m.Name)
	if m.Members == nil {
		m.Members = []primitive.ObjectID{}
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Ministry{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ministry, error) {
	var m models.Ministry
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns every ministry ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Ministry, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(byName))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Ministry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Option is a ministry in a select list.
type Option struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

func (s *Store) Options(ctx context.Context) ([]Option, error) {
	opts := options.Find().SetSort(byName).SetProjection(bson.M{"_id": 1, "name": 1})
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

// Names returns every ministry name, optionally excluding one record.
func (s *Store) Names(ctx context.Context, exclude primitive.ObjectID) ([]string, error) {
	opts, err := s.Options(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.ID != exclude {
			out = append(out, o.Name)
		}
	}
	return out, nil
}

// Name returns the name of id; found is false when it does not exist.
func (s *Store) Name(ctx context.Context, id primitive.ObjectID) (string, bool, error) {
	var doc struct {
		Name string `bson:"name"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"name": 1})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Name, true, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Update replaces the editable fields; a nil responsible is removed.
// Returns mongo.ErrNoDocuments when the ministry does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, m models.Ministry) error {
	if m.Members == nil {
		m.Members = []primitive.ObjectID{}
	}
	set := bson.M{
		"name":        m.Name,
		"name_ci":     text.Fold(m.Name),
		"description": m.Description,
		"members":     m.Members,
		"updated_at":  time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if m.ResponsibleID != nil && !m.ResponsibleID.IsZero() {
		set["responsible_id"] = *m.ResponsibleID
	} else {
		update["$unset"] = bson.M{"responsible_id": ""}
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

// Delete removes a ministry by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
