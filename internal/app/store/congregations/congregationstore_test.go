package congregationstore_test

import (
	"errors"
	"testing"

	congregationstore "github.com/dalemusser/agenda/internal/app/store/congregations"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func coord(f float64) *float64 { return &f }

func TestStore_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := congregationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"Vila Platina", "Central", "Água Limpa"} {
		if _, err := store.Create(ctx, models.Congregation{Name: name, City: "Ituiutaba"}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"Água Limpa", "Central", "Vila Platina"}
	if len(list) != len(want) {
		t.Fatalf("List len = %d, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("List[%d] = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestStore_WithLocation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := congregationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.Create(ctx, models.Congregation{Name: "Com mapa", Latitude: coord(-18.97), Longitude: coord(-49.46)})
	store.Create(ctx, models.Congregation{Name: "Só latitude", Latitude: coord(-18.97)})
	store.Create(ctx, models.Congregation{Name: "Sem mapa"})

	got, err := store.WithLocation(ctx)
	if err != nil {
		t.Fatalf("WithLocation: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Com mapa" {
		t.Errorf("WithLocation = %+v", got)
	}
}

func TestStore_UpdateClearsCoordinates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := congregationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c, _ := store.Create(ctx, models.Congregation{Name: "Central", Latitude: coord(1), Longitude: coord(2)})
	if err := store.Update(ctx, c.ID, models.Congregation{Name: "Sede", City: "Ituiutaba"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.GetByID(ctx, c.ID)
	if got.Name != "Sede" || got.HasLocation() {
		t.Errorf("after update = %+v", got)
	}

	if err := store.Update(ctx, primitive.NewObjectID(), models.Congregation{Name: "x"}); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing congregation err = %v", err)
	}
}

func TestStore_NamesAndName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := congregationstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateCongregation(ctx, "Central", "Ituiutaba")
	fx.CreateCongregation(ctx, "Vila Platina", "Ituiutaba")

	names, err := store.Names(ctx, a.ID)
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(names) != 1 || names[0] != "Vila Platina" {
		t.Errorf("Names = %v", names)
	}

	name, found, err := store.Name(ctx, a.ID)
	if err != nil || !found || name != "Central" {
		t.Errorf("Name = %q %v %v", name, found, err)
	}
	if _, found, _ := store.Name(ctx, primitive.NewObjectID()); found {
		t.Error("unknown id should not be found")
	}
}
