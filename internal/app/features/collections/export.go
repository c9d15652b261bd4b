// internal/app/features/collections/export.go
package collections

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/csvexport"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/listfilter"
	"github.com/dalemusser/agenda/internal/app/system/pdfexport"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeCSV exports the collections matching the current filters.
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, ok := h.exportRows(ctx, w, r)
	if !ok {
		return
	}
	records := make([]csvexport.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, csvexport.Record{
			{Key: "Tipo", Value: row.TypeLabel},
			{Key: "Data", Value: row.DateText},
			{Key: "Evento", Value: row.Event},
			{Key: "Valor Previsto", Value: row.ExpectedText},
			{Key: "Valor Recebido", Value: row.CollectedText},
			{Key: "Status", Value: row.Status.Label()},
			{Key: "Data Recebimento", Value: row.ReceivedText},
			{Key: "Observações", Value: row.Notes},
		})
	}

	err := csvexport.Serve(w, h.Log, "coletas_"+format.FilenameDate(time.Now()), records)
	if errors.Is(err, csvexport.ErrNoData) {
		h.noData(w, r)
		return
	}
	if err != nil {
		h.Log.Error("write collections csv failed", zap.Error(err))
	}
}

// ServePDF renders the "Relatório de Coletas" report.
func (h *Handler) ServePDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, ok := h.exportRows(ctx, w, r)
	if !ok {
		return
	}
	table := pdfexport.Table{
		Title: "Relatório de Coletas",
		Columns: []pdfexport.Column{
			{Header: "Tipo", Key: "tipo", Width: 26},
			{Header: "Data", Key: "data", Width: 24},
			{Header: "Evento", Key: "evento"},
			{Header: "Valor", Key: "valor", Width: 32},
			{Header: "Status", Key: "status", Width: 26},
			{Header: "Recebimento", Key: "recebimento", Width: 28},
		},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, map[string]string{
			"tipo":        row.TypeLabel,
			"data":        row.DateText,
			"evento":      row.Event,
			"valor":       row.AmountText,
			"status":      row.Status.Label(),
			"recebimento": row.ReceivedText,
		})
	}

	err := pdfexport.Serve(w, "coletas_"+format.FilenameDate(time.Now()), table)
	if errors.Is(err, pdfexport.ErrNoRows) {
		h.noData(w, r)
		return
	}
	if err != nil {
		h.Log.Error("render collections pdf failed", zap.Error(err))
		http.Error(w, "Erro ao gerar PDF", http.StatusInternalServerError)
	}
}

func (h *Handler) exportRows(ctx context.Context, w http.ResponseWriter, r *http.Request) ([]rowVM, bool) {
	list, err := h.collections.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "export collections failed", err, "Erro ao carregar coletas.", basePath)
		return nil, false
	}
	crit := listfilter.FromRequest(r, keyType, keyStatus, keyEvent)
	return listfilter.Apply(h.rowsFor(ctx, list), crit, filterItem), true
}

func (h *Handler) noData(w http.ResponseWriter, r *http.Request) {
	alerts.Push(w, r, h.Flash, alerts.Warning, "Nenhum dado para exportar")
	http.Redirect(w, r, withQuery(r, ""), http.StatusSeeOther)
}
