// internal/app/store/passwordreset/store.go
package passwordreset

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultExpiry is how long a reset link stays valid.
const DefaultExpiry = time.Hour

// ErrNotFound is returned when a token is unknown, used or expired.
var ErrNotFound = errors.New("reset token not found or expired")

// Reset is a pending password reset. The token is single-use.
type Reset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Email     string             `bson:"email"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expires_at"` // TTL index field
	CreatedAt time.Time          `bson:"created_at"`
}

type Store struct {
	c      *mongo.Collection
	expiry time.Duration
	now    func() time.Time
}

// New creates a Store. If expiry is 0 or negative, DefaultExpiry is used.
func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{
		c:      db.Collection("password_resets"),
		expiry: expiry,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Expiry returns how long new tokens stay valid.
func (s *Store) Expiry() time.Duration { return s.expiry }

// Create issues a new token for the user, replacing any earlier one.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, email string) (*Reset, error) {
	if _, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return nil, err
	}
	now := s.now()
	r := &Reset{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Peek returns the live reset for token without consuming it, so the form
// can be shown only for valid links.
func (s *Store) Peek(ctx context.Context, token string) (*Reset, error) {
	var r Reset
	err := s.c.FindOne(ctx, s.liveFilter(token)).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Consume deletes and returns the live reset for token.
func (s *Store) Consume(ctx context.Context, token string) (*Reset, error) {
	var r Reset
	err := s.c.FindOneAndDelete(ctx, s.liveFilter(token)).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) liveFilter(token string) bson.M {
	return bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": s.now()},
	}
}

// DeleteExpired removes expired tokens ahead of the TTL monitor.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": s.now()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
