package pdfexport_test

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/pdfexport"
)

func sampleTable(rows int) pdfexport.Table {
	t := pdfexport.Table{
		Title: "Relatório de Coletas",
		Columns: []pdfexport.Column{
			{Header: "Tipo", Key: "tipo", Width: 30},
			{Header: "Data", Key: "data", Width: 25},
			{Header: "Valor Previsto", Key: "previsto"},
			{Header: "Status", Key: "status"},
		},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, map[string]string{
			"tipo":     "Dízimo",
			"data":     "05/03/2024",
			"previsto": "R$ 100,00",
			"status":   "Pendente",
		})
	}
	return t
}

func TestRender_ProducesPDF(t *testing.T) {
	out, err := pdfexport.Render(sampleTable(3), time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", out[:8])
	}
}

func TestRender_ManyRowsPaginates(t *testing.T) {
	small, err := pdfexport.Render(sampleTable(2), time.Now())
	if err != nil {
		t.Fatalf("Render small: %v", err)
	}
	big, err := pdfexport.Render(sampleTable(200), time.Now())
	if err != nil {
		t.Fatalf("Render big: %v", err)
	}
	if bytes.Count(big, []byte("/Type /Page\n")) <= bytes.Count(small, []byte("/Type /Page\n")) {
		t.Error("expected more pages for 200 rows")
	}
}

func TestRender_NoRows(t *testing.T) {
	if _, err := pdfexport.Render(sampleTable(0), time.Now()); !errors.Is(err, pdfexport.ErrNoRows) {
		t.Errorf("err = %v, want ErrNoRows", err)
	}
}

func TestServe_Headers(t *testing.T) {
	rr := httptest.NewRecorder()
	if err := pdfexport.Serve(rr, "coletas_2024-03-05", sampleTable(1)); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="coletas_2024-03-05.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
}
