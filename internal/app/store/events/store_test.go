package eventstore_test

import (
	"errors"
	"testing"
	"time"

	eventstore "github.com/dalemusser/agenda/internal/app/store/events"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_CreateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e, err := store.Create(ctx, models.Event{Title: "Culto de Ação de Graças", Date: date(2024, 3, 5)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Status != "agendado" {
		t.Errorf("Status = %q, want agendado", e.Status)
	}
	if e.Participants == nil {
		t.Error("Participants should be an empty list")
	}
	if e.TitleCI == "" {
		t.Error("TitleCI should be set")
	}

	if _, err := store.Create(ctx, models.Event{Title: "X", Date: date(2024, 3, 5), Status: "adiado"}); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestStore_ListOrderAndUpcoming(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	today := date(2024, 3, 10)
	fx.CreateEvent(ctx, "Passado", date(2024, 3, 1))
	for i := 0; i < 6; i++ {
		fx.CreateEvent(ctx, "Futuro", today.AddDate(0, 0, i))
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 7 {
		t.Fatalf("List len = %d, want 7", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Date.After(all[i-1].Date) {
			t.Fatal("List should be ordered by date descending")
		}
	}

	up, err := store.Upcoming(ctx, today, 0)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(up) != eventstore.UpcomingLimit {
		t.Fatalf("Upcoming len = %d, want %d", len(up), eventstore.UpcomingLimit)
	}
	if !up[0].Date.Equal(today) {
		t.Errorf("first upcoming = %v, want today", up[0].Date)
	}
	for _, e := range up {
		if e.Title == "Passado" {
			t.Error("past event in upcoming list")
		}
	}
}

func TestStore_UpdateReplacesRefs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cong := fx.CreateCongregation(ctx, "Central", "Ituiutaba")
	e, _ := store.Create(ctx, models.Event{Title: "Ensaio", Date: date(2024, 4, 1), CongregationID: &cong.ID})

	p := primitive.NewObjectID()
	err := store.Update(ctx, e.ID, eventstore.Update{
		Title:        "Ensaio Geral",
		Date:         date(2024, 4, 2),
		Time:         "19:30",
		Status:       "realizado",
		Participants: []primitive.ObjectID{p},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.GetByID(ctx, e.ID)
	if got.Title != "Ensaio Geral" || got.Time != "19:30" || got.Status != "realizado" {
		t.Errorf("updated event = %+v", got)
	}
	if got.CongregationID != nil {
		t.Error("congregation should be unset")
	}
	if len(got.Participants) != 1 || got.Participants[0] != p {
		t.Errorf("Participants = %v", got.Participants)
	}

	if err := store.Update(ctx, primitive.NewObjectID(), eventstore.Update{Title: "x"}); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing event err = %v", err)
	}
}

func TestStore_TitleAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e := fx.CreateEvent(ctx, "Santa Ceia", date(2024, 5, 5))

	title, found, err := store.Title(ctx, e.ID)
	if err != nil || !found || title != "Santa Ceia" {
		t.Errorf("Title = %q %v %v", title, found, err)
	}

	n, err := store.Delete(ctx, e.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v", n, err)
	}
	if _, found, _ := store.Title(ctx, e.ID); found {
		t.Error("event should be gone")
	}
}
