package metricsstore_test

import (
	"testing"
	"time"

	metricsstore "github.com/dalemusser/agenda/internal/app/store/metrics"
	"github.com/dalemusser/agenda/internal/testutil"
)

func TestFetchDashboardCounts_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if got := metricsstore.FetchDashboardCounts(ctx, db); got != (metricsstore.Counts{}) {
		t.Errorf("counts on empty db = %+v", got)
	}
}

func TestFetchDashboardCounts_WithData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	e := fx.CreateEvent(ctx, "Culto", day)
	fx.CreateEvent(ctx, "Ensaio", day)
	fx.CreateCollection(ctx, "oferta", day, 10, &e.ID)
	fx.CreateCongregation(ctx, "Central", "Ituiutaba")
	fx.CreateMinistry(ctx, "Louvor", nil)
	fx.CreateMinistry(ctx, "Diaconia", nil)
	fx.CreateAdmin(ctx, "Admin", "admin@igreja.org")

	got := metricsstore.FetchDashboardCounts(ctx, db)
	want := metricsstore.Counts{Events: 2, Collections: 1, Congregations: 1, Ministries: 2, Users: 1}
	if got != want {
		t.Errorf("counts = %+v, want %+v", got, want)
	}
}
