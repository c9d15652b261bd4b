package collectionstore_test

import (
	"testing"
	"time"

	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/domain/models"
)

func amt(f float64) *float64 { return &f }

func on(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, format.Location())
}

func pending(typ string, d time.Time, expected float64) models.Collection {
	return models.Collection{Type: typ, Date: d, ExpectedAmount: expected, Status: models.CollectionPending}
}

func received(typ string, d time.Time, expected, collected float64) models.Collection {
	return models.Collection{Type: typ, Date: d, ExpectedAmount: expected, Status: models.CollectionReceived, CollectedAmount: amt(collected)}
}

func TestSummarize(t *testing.T) {
	list := []models.Collection{
		received("dizimo", on(2024, 3, 3), 100, 120),
		pending("oferta", on(2024, 3, 10), 50),
		pending("especial", on(2024, 3, 17), 0),
	}
	got := collectionstore.Summarize(list)
	want := collectionstore.Summary{Count: 3, TotalRecebido: 120, TotalPendente: 50}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}

	if got := collectionstore.Summarize(nil); got != (collectionstore.Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}
}

func TestSummarize_ReceivedWithoutAmountIsPending(t *testing.T) {
	c := models.Collection{Type: "oferta", ExpectedAmount: 30, Status: models.CollectionReceived}
	got := collectionstore.Summarize([]models.Collection{c})
	if got.TotalPendente != 30 || got.TotalRecebido != 0 {
		t.Errorf("Summarize = %+v", got)
	}
}

func TestByType(t *testing.T) {
	list := []models.Collection{
		pending("oferta", on(2024, 1, 1), 10),
		received("dizimo", on(2024, 1, 2), 100, 90),
		pending("", on(2024, 1, 3), 5),
		pending("oferta", on(2024, 1, 4), 15),
		pending("missoes", on(2024, 1, 5), 7),
	}
	got := collectionstore.ByType(list)
	want := []collectionstore.TypeTotal{
		{Type: "dizimo", Label: "Dízimo", Total: 90},
		{Type: "oferta", Label: "Oferta", Total: 25},
		{Type: "outro", Label: "Outro", Total: 5},
		{Type: "missoes", Label: "missoes", Total: 7},
	}
	if len(got) != len(want) {
		t.Fatalf("ByType len = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ByType[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestByMonth(t *testing.T) {
	var list []models.Collection
	// eight months with data, out of order
	for _, m := range []time.Month{8, 2, 5, 1, 7, 3, 6, 4} {
		list = append(list, pending("oferta", on(2024, m, 10), float64(m)))
	}
	list = append(list, received("dizimo", on(2024, 8, 20), 0, 200))
	list = append(list, pending("oferta", time.Time{}, 999))

	got := collectionstore.ByMonth(list)
	if len(got) != collectionstore.ChartMonths {
		t.Fatalf("ByMonth len = %d, want %d", len(got), collectionstore.ChartMonths)
	}
	if got[0].Month != 3 || got[len(got)-1].Month != 8 {
		t.Errorf("months = %d..%d, want 3..8", got[0].Month, got[len(got)-1].Month)
	}
	last := got[len(got)-1]
	if last.Label != "Agosto/2024" {
		t.Errorf("label = %q, want Agosto/2024", last.Label)
	}
	if last.Recebido != 200 || last.Pendente != 8 {
		t.Errorf("August totals = %+v", last)
	}
}

func TestByMonth_YearBoundary(t *testing.T) {
	list := []models.Collection{
		pending("oferta", on(2024, 1, 5), 1),
		pending("oferta", on(2023, 12, 5), 2),
	}
	got := collectionstore.ByMonth(list)
	if len(got) != 2 || got[0].Year != 2023 || got[1].Year != 2024 {
		t.Errorf("ByMonth = %+v", got)
	}
}

func TestLabel(t *testing.T) {
	c := pending("dizimo", on(2024, 3, 5), 0)
	if got := collectionstore.Label(c); got != "Dízimo - 05/03/2024" {
		t.Errorf("Label = %q", got)
	}
}
