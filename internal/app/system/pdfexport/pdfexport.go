// Package pdfexport renders simple report tables as PDF downloads.
package pdfexport

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/go-pdf/fpdf"
	"github.com/klauspost/lctime"
)

// ErrNoRows is returned when a table has no rows to render.
var ErrNoRows = errors.New("pdfexport: no rows")

// Column describes one table column. Width is in millimetres; zero shares
// the remaining page width with the other zero-width columns.
type Column struct {
	Header string
	Key    string
	Width  float64
}

// Table is a titled report.
type Table struct {
	Title   string
	Columns []Column
	Rows    []map[string]string
}

const (
	margin     = 14.0
	rowHeight  = 7.0
	headerFont = 10.0
	bodyFont   = 9.0
)

// Render writes t as a PDF document. Tables wider than five columns are
// laid out in landscape.
func Render(t Table, now time.Time) ([]byte, error) {
	if len(t.Rows) == 0 {
		return nil, ErrNoRows
	}
	orientation := "P"
	if len(t.Columns) > 5 {
		orientation = "L"
	}

	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	widths := columnWidths(t.Columns, pageW-2*margin)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr("Página ")+strconv.Itoa(pdf.PageNo())+"/{nb}", "", 0, "C", false, 0, "")
	})

	header := func() {
		pdf.SetFont("Helvetica", "B", headerFont)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		for i, c := range t.Columns {
			pdf.CellFormat(widths[i], rowHeight, tr(c.Header), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", bodyFont)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Gerado em: "+format.Date(now)), "", 1, "L", false, 0, "")
	if long, err := lctime.StrftimeLoc("pt_BR", "%A, %d de %B de %Y", now.In(format.Location())); err == nil {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, tr(long), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
	header()

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for n, row := range t.Rows {
		if pdf.GetY()+rowHeight > pageH-bottom-10 {
			pdf.AddPage()
			header()
		}
		fill := n%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for i, c := range t.Columns {
			text := fit(pdf, tr(row[c.Key]), widths[i]-2)
			pdf.CellFormat(widths[i], rowHeight, text, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Serve renders t and sends it as an attachment named filename.
func Serve(w http.ResponseWriter, filename string, t Table) error {
	out, err := Render(t, time.Now())
	if err != nil {
		return err
	}
	if !strings.HasSuffix(filename, ".pdf") {
		filename += ".pdf"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(out)
	return err
}

func columnWidths(cols []Column, total float64) []float64 {
	widths := make([]float64, len(cols))
	fixed, flex := 0.0, 0
	for i, c := range cols {
		if c.Width > 0 {
			widths[i] = c.Width
			fixed += c.Width
		} else {
			flex++
		}
	}
	if flex > 0 {
		share := (total - fixed) / float64(flex)
		if share < 15 {
			share = 15
		}
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

// fit cuts s so it renders within w millimetres at the current font.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
