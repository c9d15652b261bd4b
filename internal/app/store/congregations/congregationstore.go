// internal/app/store/congregations/congregationstore.go
package congregationstore

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
	return &Store{c: db.Collection("congregacoes")}
}

var byName = bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}

func (s *Store) Create(ctx context.Context, c models.Congregation) (models.Congregation, error) {
	now := time.Now().UTC()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.NameCI = text.Fold(c.Name)
	c.CityCI = text.Fold(c.City)
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Congregation{}, err
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Congregation, error) {
	var c models.Congregation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every congregation ordered by name.
func (s *Store) List(ctx context.Context) ([]models.Congregation, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(byName))
}

// WithLocation returns the congregations that have both coordinates.
func (s *Store) WithLocation(ctx context.Context) ([]models.Congregation, error) {
	filter := bson.M{
		"latitude":  bson.M{"$type": "double"},
		"longitude": bson.M{"$type": "double"},
	}
	return s.find(ctx, filter, options.Find().SetSort(byName))
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Congregation, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Congregation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Option is a congregation in a select list.
type Option struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

// Options returns id and name of every congregation, ordered by name.
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

// Names returns every congregation name, optionally excluding one record.
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

// Update replaces the editable fields. Nil coordinates are removed.
// Returns mongo.ErrNoDocuments when the congregation does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, c models.Congregation) error {
	set := bson.M{
		"name":       c.Name,
		"name_ci":    text.Fold(c.Name),
		"address":    c.Address,
		"city":       c.City,
		"city_ci":    text.Fold(c.City),
		"contact":    c.Contact,
		"updated_at": time.Now().UTC(),
	}
	unset := bson.M{}
	if c.Latitude != nil {
		set["latitude"] = *c.Latitude
	} else {
		unset["latitude"] = ""
	}
	if c.Longitude != nil {
		set["longitude"] = *c.Longitude
	} else {
		unset["longitude"] = ""
	}
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

// Delete removes a congregation by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
