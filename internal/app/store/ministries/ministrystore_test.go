package ministrystore_test

import (
	"errors"
	"testing"

	ministrystore "github.com/dalemusser/agenda/internal/app/store/ministries"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateDefaultsMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ministrystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Create(ctx, models.Ministry{Name: "Louvor"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Members == nil || len(got.Members) != 0 {
		t.Errorf("Members = %v, want empty list", got.Members)
	}
	if got.NameCI != "louvor" {
		t.Errorf("NameCI = %q", got.NameCI)
	}
}

func TestStore_UpdateResponsibleAndMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ministrystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lead := fx.CreateUser(ctx, "Maria Souza", "maria@igreja.org", "dirigente")
	m := fx.CreateMinistry(ctx, "Infantil", &lead.ID)

	member := primitive.NewObjectID()
	err := store.Update(ctx, m.ID, models.Ministry{
		Name:        "Ministério Infantil",
		Description: "Crianças",
		Members:     []primitive.ObjectID{member},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.GetByID(ctx, m.ID)
	if got.ResponsibleID != nil {
		t.Error("responsible should be unset")
	}
	if len(got.Members) != 1 || got.Members[0] != member {
		t.Errorf("Members = %v", got.Members)
	}

	if err := store.Update(ctx, primitive.NewObjectID(), models.Ministry{Name: "x"}); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing ministry err = %v", err)
	}
}

func TestStore_ListByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ministrystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMinistry(ctx, "Louvor", nil)
	fx.CreateMinistry(ctx, "Diaconia", nil)

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Diaconia" {
		t.Errorf("List = %+v", list)
	}

	n, err := store.Delete(ctx, list[0].ID)
	if err != nil || n != 1 {
		t.Errorf("Delete = %d, %v", n, err)
	}
	if c, _ := store.Count(ctx); c != 1 {
		t.Errorf("Count = %d, want 1", c)
	}
}
