package dashboard_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/agenda/internal/app/features/dashboard"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.uber.org/zap"
)

type chartsBody struct {
	ByType []struct {
		Type  string  `json:"type"`
		Label string  `json:"label"`
		Total float64 `json:"total"`
	} `json:"porTipo"`
	ByMonth []struct {
		Label    string  `json:"label"`
		Recebido float64 `json:"recebido"`
		Pendente float64 `json:"pendente"`
	} `json:"porMes"`
}

func TestServeCharts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := dashboard.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, format.Location())
	fx.CreateCollection(ctx, "dizimo", march, 500, nil)
	fx.CreateCollection(ctx, "oferta", march, 120, nil)
	fx.CreateCollection(ctx, "dizimo", march.AddDate(0, 1, 0), 300, nil)

	rec := testutil.NewRecorder()
	h.ServeCharts(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/charts.json", testutil.MembroUser()))
	rec.AssertStatus(t, http.StatusOK)

	var body chartsBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.ByType) != 2 || body.ByType[0].Type != "dizimo" || body.ByType[0].Total != 800 {
		t.Errorf("porTipo = %+v, want dizimo first with 800", body.ByType)
	}
	if len(body.ByMonth) != 2 {
		t.Fatalf("porMes has %d entries, want 2", len(body.ByMonth))
	}
	if body.ByMonth[0].Label != "Março/2024" || body.ByMonth[0].Pendente != 620 || body.ByMonth[0].Recebido != 0 {
		t.Errorf("first month = %+v", body.ByMonth[0])
	}
}

func TestServeCharts_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := dashboard.NewHandler(db, zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeCharts(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard/charts.json", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"porTipo":[]`)
	rec.AssertContains(t, `"porMes":[]`)
}

func TestRoutes_RequireSignedIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sm := testutil.SessionManager(t)
	router := dashboard.Routes(dashboard.NewHandler(db, zap.NewNop()), sm)

	rec := testutil.NewRecorder()
	req := testutil.NewRequest(http.MethodGet, "/charts.json")
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/charts.json", testutil.MembroUser()))
	rec.AssertStatus(t, http.StatusOK)
}
