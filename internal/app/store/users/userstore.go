package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when another user already has the e-mail.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`roles must be any of "admin"|"dirigente"|"obreiro"|"membro"`)
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive e-mail. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByFirebaseUID looks up a user linked to a Firebase account.
func (s *Store) GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"firebase_uid": uid}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
// A user without roles becomes a membro.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.Phone = normalize.Phone(u.Phone)
	u.Roles = normalize.Roles(u.Roles)
	if len(u.Roles) == 0 {
		u.Roles = []string{string(authz.Membro)}
	}
	if u.MinistryIDs == nil {
		u.MinistryIDs = []primitive.ObjectID{}
	}
	if u.Status == "" {
		u.Status = models.UserActive
	}
	if u.AuthMethod == "" {
		u.AuthMethod = models.AuthPassword
	}

	if err := validRoles(u.Roles); err != nil {
		return models.User{}, err
	}
	if !validStatus(u.Status) {
		return models.User{}, errBadStatus
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// List returns every user ordered by name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Option is a user in a select list.
type Option struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"full_name"`
}

// Options returns the active users as select options, ordered by name.
func (s *Store) Options(ctx context.Context) ([]Option, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1, "full_name": 1})
	cur, err := s.c.Find(ctx, bson.M{"status": bson.M{"$ne": models.UserDisabled}}, opts)
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

// Name returns the display name of id; found is false when the user does
// not exist.
func (s *Store) Name(ctx context.Context, id primitive.ObjectID) (string, bool, error) {
	var doc struct {
		FullName string `bson:"full_name"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"full_name": 1})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.FullName, true, nil
}

// Count returns the number of users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// ProfileUpdate holds the administrator-editable fields of a user.
type ProfileUpdate struct {
	Roles          []string
	MinistryIDs    []primitive.ObjectID
	CongregationID *primitive.ObjectID
	Status         string
}

// UpdateProfile replaces roles, ministry memberships, congregation and
// status. Returns mongo.ErrNoDocuments when the user does not exist.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	roles := normalize.Roles(upd.Roles)
	if len(roles) == 0 {
		roles = []string{string(authz.Membro)}
	}
	if err := validRoles(roles); err != nil {
		return err
	}
	status := normalize.Status(upd.Status)
	if status == "" {
		status = models.UserActive
	}
	if !validStatus(status) {
		return errBadStatus
	}
	ministries := upd.MinistryIDs
	if ministries == nil {
		ministries = []primitive.ObjectID{}
	}

	set := bson.M{
		"roles":        roles,
		"ministry_ids": ministries,
		"status":       status,
		"updated_at":   time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if upd.CongregationID != nil {
		set["congregation_id"] = *upd.CongregationID
	} else {
		update["$unset"] = bson.M{"congregation_id": ""}
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

// AddRole adds role to the user's tags if missing.
func (s *Store) AddRole(ctx context.Context, id primitive.ObjectID, role string) error {
	role = normalize.Role(role)
	if !authz.Role(role).Valid() {
		return errBadRole
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"roles": role},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// SetPassword stores a new bcrypt hash and marks the account as a
// password account.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"auth_method":   models.AuthPassword,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// LinkFirebase records the Firebase UID of an existing user.
func (s *Store) LinkFirebase(ctx context.Context, id primitive.ObjectID, uid string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"firebase_uid": uid,
		"updated_at":   time.Now().UTC(),
	}})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateEmail
	}
	return err
}

// EmailExistsForOther checks whether another user already has email.
func (s *Store) EmailExistsForOther(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"email": normalize.Email(email),
		"_id":   bson.M{"$ne": excludeID},
	}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

func validRoles(roles []string) error {
	for _, r := range roles {
		if !authz.Role(r).Valid() {
			return errBadRole
		}
	}
	return nil
}

func validStatus(s string) bool {
	return s == models.UserActive || s == models.UserDisabled
}

// EnsureAdmin grants the admin role to the account with email, creating a
// password-less account when none exists; its owner sets a password
// through the reset flow. A disabled account is re-enabled.
func (s *Store) EnsureAdmin(ctx context.Context, email, name string) (created bool, err error) {
	email = normalize.Email(email)
	u, err := s.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		if name == "" {
			name = email
		}
		_, err := s.Create(ctx, models.User{
			FullName: name,
			Email:    email,
			Roles:    []string{string(authz.Admin)},
		})
		if errors.Is(err, ErrDuplicateEmail) {
			return s.EnsureAdmin(ctx, email, name)
		}
		return err == nil, err
	case err != nil:
		return false, err
	}

	_, err = s.c.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{
		"$addToSet": bson.M{"roles": string(authz.Admin)},
		"$set":      bson.M{"status": models.UserActive, "updated_at": time.Now().UTC()},
	})
	return false, err
}
