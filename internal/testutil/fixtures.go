package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts test documents directly, bypassing store validation.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures for db.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s: %v", coll, err)
	}
}

// CreateUser inserts an active user with the given role tags.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string, roles ...string) models.User {
	f.t.Helper()
	u := newUser(fullName, email, roles)
	f.insert(ctx, "users", u)
	return u
}

// CreateAdmin inserts an admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "admin")
}

// CreateDisabledUser inserts a disabled membro.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	u := newUser(fullName, email, nil)
	u.Status = models.UserDisabled
	f.insert(ctx, "users", u)
	return u
}

func newUser(fullName, email string, roles []string) models.User {
	if roles == nil {
		roles = []string{"membro"}
	}
	now := time.Now().UTC()
	return models.User{
		ID:          primitive.NewObjectID(),
		FullName:    fullName,
		FullNameCI:  format.Fold(fullName),
		Email:       email,
		Roles:       roles,
		MinistryIDs: []primitive.ObjectID{},
		AuthMethod:  models.AuthPassword,
		Status:      models.UserActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateCongregation inserts a congregation without coordinates.
func (f *Fixtures) CreateCongregation(ctx context.Context, name, city string) models.Congregation {
	f.t.Helper()
	now := time.Now().UTC()
	c := models.Congregation{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    format.Fold(name),
		City:      city,
		CityCI:    format.Fold(city),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "congregacoes", c)
	return c
}

// CreateMinistry inserts a ministry with the given members.
func (f *Fixtures) CreateMinistry(ctx context.Context, name string, responsible *primitive.ObjectID, members ...primitive.ObjectID) models.Ministry {
	f.t.Helper()
	if members == nil {
		members = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	m := models.Ministry{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        format.Fold(name),
		ResponsibleID: responsible,
		Members:       members,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.insert(ctx, "ministerios", m)
	return m
}

// CreateEvent inserts an agendado event on date.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, date time.Time) models.Event {
	f.t.Helper()
	now := time.Now().UTC()
	e := models.Event{
		ID:           primitive.NewObjectID(),
		Title:        title,
		TitleCI:      format.Fold(title),
		Date:         date,
		Status:       "agendado",
		Participants: []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "eventos", e)
	return e
}

// CreateCollection inserts a pending collection.
func (f *Fixtures) CreateCollection(ctx context.Context, typ string, date time.Time, expected float64, eventID *primitive.ObjectID) models.Collection {
	f.t.Helper()
	now := time.Now().UTC()
	c := models.Collection{
		ID:             primitive.NewObjectID(),
		Type:           typ,
		Date:           date,
		EventID:        eventID,
		ExpectedAmount: expected,
		Status:         models.CollectionPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "coletas", c)
	return c
}
