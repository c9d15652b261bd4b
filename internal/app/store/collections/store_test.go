package collectionstore_test

import (
	"errors"
	"testing"
	"time"

	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateIsPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c, err := store.Create(ctx, models.Collection{
		Type:            "oferta",
		Date:            on(2024, 3, 5),
		ExpectedAmount:  80,
		Status:          models.CollectionReceived,
		CollectedAmount: amt(10),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.CollectionPending || got.CollectedAmount != nil {
		t.Errorf("new collection = %+v, want pending without amount", got)
	}

	if _, err := store.Create(ctx, models.Collection{Type: "rifa"}); err == nil {
		t.Error("unknown type should be rejected")
	}
}

func TestStore_RegisterReceipt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateCollection(ctx, "dizimo", on(2024, 3, 5), 100, nil)
	at := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	if err := store.RegisterReceipt(ctx, c.ID, 110.5, "contado", at); err != nil {
		t.Fatalf("RegisterReceipt: %v", err)
	}
	got, _ := store.GetByID(ctx, c.ID)
	if !got.IsReceived() || *got.CollectedAmount != 110.5 || got.ReceiptNotes != "contado" {
		t.Errorf("after receipt = %+v", got)
	}
	if got.ReceivedAt == nil || !got.ReceivedAt.Equal(at) {
		t.Errorf("ReceivedAt = %v, want %v", got.ReceivedAt, at)
	}

	// editing keeps the receipt
	err := store.Update(ctx, c.ID, collectionstore.Update{Type: "oferta", Date: on(2024, 3, 7), ExpectedAmount: 90})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = store.GetByID(ctx, c.ID)
	if got.Type != "oferta" || !got.IsReceived() {
		t.Errorf("after update = %+v", got)
	}

	if err := store.RegisterReceipt(ctx, primitive.NewObjectID(), 1, "", at); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing collection err = %v", err)
	}
}

func TestStore_LatestAndMonthSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for d := 1; d <= 6; d++ {
		fx.CreateCollection(ctx, "oferta", on(2024, 3, d), 10, nil)
	}
	fx.CreateCollection(ctx, "oferta", on(2024, 2, 28), 500, nil)
	r := fx.CreateCollection(ctx, "dizimo", on(2024, 3, 31), 0, nil)
	if err := store.RegisterReceipt(ctx, r.ID, 40, "", time.Now()); err != nil {
		t.Fatalf("RegisterReceipt: %v", err)
	}

	latest, err := store.Latest(ctx, 0)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(latest) != collectionstore.LatestLimit || latest[0].ID != r.ID {
		t.Errorf("Latest = %d rows, first %v", len(latest), latest[0].ID)
	}

	sum, err := store.MonthSummary(ctx, on(2024, 3, 15))
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	want := collectionstore.Summary{Count: 7, TotalRecebido: 40, TotalPendente: 60}
	if sum != want {
		t.Errorf("MonthSummary = %+v, want %+v", sum, want)
	}
}

func TestStore_UpdateClearsEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e := fx.CreateEvent(ctx, "Culto", on(2024, 3, 5))
	c := fx.CreateCollection(ctx, "oferta", on(2024, 3, 5), 10, &e.ID)

	if err := store.Update(ctx, c.ID, collectionstore.Update{Type: "oferta", Date: c.Date}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.GetByID(ctx, c.ID)
	if got.EventID != nil {
		t.Error("event link should be removed")
	}

	n, err := store.Delete(ctx, c.ID)
	if err != nil || n != 1 {
		t.Errorf("Delete = %d, %v", n, err)
	}
}
