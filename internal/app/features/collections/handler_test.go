package collections_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/agenda/internal/app/features/collections"
	uierrors "github.com/dalemusser/agenda/internal/app/features/errors"
	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, db *mongo.Database) *collections.Handler {
	t.Helper()
	return collections.NewHandler(db, testutil.SessionManager(t), uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, format.Location())
}

func TestHandleCreate_StartsPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ev := testutil.NewFixtures(t, db).CreateEvent(ctx, "Culto de Missões", day(2024, time.March, 10))

	form := url.Values{
		"tipo":          {"oferta"},
		"data":          {"2024-03-10"},
		"eventoId":      {ev.ID.Hex()},
		"valorPrevisto": {"1.234,50"},
	}
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/coletas/new", form, testutil.DirigenteUser()))
	rec.AssertRedirect(t, "/coletas")

	list, err := collectionstore.New(db).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d collections, want 1", len(list))
	}
	c := list[0]
	if c.Status != models.CollectionPending {
		t.Errorf("Status = %q, want pendente", c.Status)
	}
	if c.ExpectedAmount != 1234.5 {
		t.Errorf("ExpectedAmount = %v, want 1234.5", c.ExpectedAmount)
	}
	if c.EventID == nil || *c.EventID != ev.ID {
		t.Errorf("EventID = %v", c.EventID)
	}
}

func TestHandleCreate_BlankAmountIsZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{"tipo": {"dizimo"}, "data": {"2024-03-03"}}
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/coletas/new", form, testutil.AdminUser()))
	rec.AssertRedirect(t, "/coletas")

	list, _ := collectionstore.New(db).List(ctx)
	if len(list) != 1 || list[0].ExpectedAmount != 0 || list[0].EventID != nil {
		t.Errorf("stored %+v", list)
	}
}

func TestHandleEdit_PreservesReceipt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := collectionstore.New(db)
	c := testutil.NewFixtures(t, db).CreateCollection(ctx, "dizimo", day(2024, time.March, 3), 100, nil)
	if err := store.RegisterReceipt(ctx, c.ID, 120, "", time.Now()); err != nil {
		t.Fatalf("RegisterReceipt: %v", err)
	}

	form := url.Values{"tipo": {"especial"}, "data": {"2024-03-04"}, "valorPrevisto": {"150"}}
	req := testutil.WithChiURLParam(testutil.NewFormRequest("/coletas/"+c.ID.Hex()+"/edit", form, testutil.DirigenteUser()), "id", c.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleEdit(rec, req)
	rec.AssertRedirect(t, "/coletas")

	got, err := store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Type != "especial" || got.ExpectedAmount != 150 {
		t.Errorf("after edit: %+v", got)
	}
	if got.Status != models.CollectionReceived || got.CollectedAmount == nil || *got.CollectedAmount != 120 {
		t.Errorf("receipt lost on edit: status=%q collected=%v", got.Status, got.CollectedAmount)
	}
}

func TestHandleReceipt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := testutil.NewFixtures(t, db).CreateCollection(ctx, "oferta", day(2024, time.March, 3), 80, nil)

	form := url.Values{"valorRecebido": {"95,00"}, "observacoesRecebimento": {"Contado por dois diáconos"}}
	req := testutil.WithChiURLParam(testutil.NewFormRequest("/coletas/"+c.ID.Hex()+"/receipt", form, testutil.ObreiroUser()), "id", c.ID.Hex())
	before := time.Now().Add(-time.Second)
	rec := testutil.NewRecorder()
	h.HandleReceipt(rec, req)
	rec.AssertRedirect(t, "/coletas")

	got, err := collectionstore.New(db).GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsReceived() || *got.CollectedAmount != 95 {
		t.Fatalf("not received: %+v", got)
	}
	if got.ReceiptNotes != "Contado por dois diáconos" {
		t.Errorf("ReceiptNotes = %q", got.ReceiptNotes)
	}
	if got.ReceivedAt == nil || got.ReceivedAt.Before(before) {
		t.Errorf("ReceivedAt = %v, want server time", got.ReceivedAt)
	}
	if got.DisplayAmount() != 95 {
		t.Errorf("DisplayAmount = %v, want 95", got.DisplayAmount())
	}
}

func TestHandleReceipt_RejectsUnusableAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := testutil.NewFixtures(t, db).CreateCollection(ctx, "oferta", day(2024, time.March, 3), 80, nil)

	for _, amount := range []string{"   ", "Inf", "+Inf", "NaN", "R$"} {
		t.Run(amount, func(t *testing.T) {
			form := url.Values{"valorRecebido": {amount}}
			req := testutil.WithChiURLParam(testutil.NewFormRequest("/coletas/"+c.ID.Hex()+"/receipt", form, testutil.ObreiroUser()), "id", c.ID.Hex())
			rec := testutil.NewRecorder()
			h.HandleReceipt(rec, req)

			if loc := rec.Header().Get("Location"); loc != "" {
				t.Fatalf("redirected to %q, want the receipt form again", loc)
			}
			got, err := collectionstore.New(db).GetByID(ctx, c.ID)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if got.IsReceived() || got.CollectedAmount != nil {
				t.Errorf("stored receipt for %q: %+v", amount, got)
			}
		})
	}
}

func TestRoutes_Permissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sm := testutil.SessionManager(t)
	router := collections.Routes(collections.NewHandler(db, sm, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop()), sm)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := testutil.NewFixtures(t, db).CreateCollection(ctx, "dizimo", day(2024, time.March, 3), 50, nil)
	id := c.ID.Hex()

	tests := []struct {
		name string
		user testutil.TestUser
		path string
		form url.Values
		want int
	}{
		{"obreiro cannot create", testutil.ObreiroUser(), "/new", url.Values{"tipo": {"dizimo"}, "data": {"2024-03-03"}}, http.StatusForbidden},
		{"obreiro cannot edit", testutil.ObreiroUser(), "/" + id + "/edit", url.Values{"tipo": {"dizimo"}, "data": {"2024-03-03"}}, http.StatusForbidden},
		{"membro cannot receive", testutil.MembroUser(), "/" + id + "/receipt", url.Values{"valorRecebido": {"10"}}, http.StatusForbidden},
		{"obreiro receives", testutil.ObreiroUser(), "/" + id + "/receipt", url.Values{"valorRecebido": {"10"}}, http.StatusSeeOther},
		{"dirigente cannot delete", testutil.DirigenteUser(), "/" + id + "/delete", nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, testutil.NewFormRequest(tt.path, tt.form, tt.user))
			rec.AssertStatus(t, tt.want)
		})
	}
}

func TestServeCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateCollection(ctx, "dizimo", day(2024, time.March, 3), 100, nil)
	fx.CreateCollection(ctx, "oferta", day(2024, time.March, 4), 40, nil)

	rec := testutil.NewRecorder()
	h.ServeCSV(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/coletas/export.csv?tipo=dizimo", testutil.MembroUser()))
	rec.AssertStatus(t, http.StatusOK)

	body := rec.Body.String()
	header := strings.SplitN(body, "\n", 2)[0]
	for _, col := range []string{"Tipo", "Data", "Evento", "Valor Previsto", "Valor Recebido", "Status", "Data Recebimento", "Observações"} {
		if !strings.Contains(header, col) {
			t.Errorf("header %q missing %q", header, col)
		}
	}
	if !strings.Contains(body, "Dízimo") || !strings.Contains(body, "Não vinculado") {
		t.Errorf("body missing row data:\n%s", body)
	}
	if strings.Contains(body, "Oferta") {
		t.Error("type filter not applied")
	}
}

func TestServePDF_NoData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	rec := testutil.NewRecorder()
	h.ServePDF(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/coletas/export.pdf", testutil.MembroUser()))
	rec.AssertRedirect(t, "/coletas")
}
