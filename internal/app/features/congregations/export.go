// internal/app/features/congregations/export.go
package congregations

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
			{Key: "Nome", Value: row.Name},
			{Key: "Endereço", Value: row.Address},
			{Key: "Cidade", Value: row.City},
			{Key: "Contato", Value: row.Contact},
			{Key: "Latitude", Value: row.Latitude},
			{Key: "Longitude", Value: row.Longitude},
			{Key: "Data de Criação", Value: row.CreatedText},
		})
	}
	err := csvexport.Serve(w, h.Log, "congregacoes_"+format.FilenameDate(time.Now()), records)
	if errors.Is(err, csvexport.ErrNoData) {
		h.noData(w, r)
		return
	}
	if err != nil {
		h.Log.Error("write congregations csv failed", zap.Error(err))
	}
}

func (h *Handler) ServePDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, ok := h.exportRows(ctx, w, r)
	if !ok {
		return
	}
	table := pdfexport.Table{
		Title: "Relatório de Congregações",
		Columns: []pdfexport.Column{
			{Header: "Nome", Key: "nome", Width: 50},
			{Header: "Endereço", Key: "endereco"},
			{Header: "Cidade", Key: "cidade", Width: 36},
			{Header: "Contato", Key: "contato", Width: 40},
		},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, map[string]string{
			"nome":     row.Name,
			"endereco": row.Address,
			"cidade":   row.City,
			"contato":  row.Contact,
		})
	}
	err := pdfexport.Serve(w, "congregacoes_"+format.FilenameDate(time.Now()), table)
	if errors.Is(err, pdfexport.ErrNoRows) {
		h.noData(w, r)
		return
	}
	if err != nil {
		h.Log.Error("render congregations pdf failed", zap.Error(err))
		http.Error(w, "Erro ao gerar PDF", http.StatusInternalServerError)
	}
}

func (h *Handler) exportRows(ctx context.Context, w http.ResponseWriter, r *http.Request) ([]rowVM, bool) {
	list, err := h.congregations.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "export congregations failed", err, "Erro ao carregar congregações.", basePath)
		return nil, false
	}
	rows := make([]rowVM, len(list))
	for i, c := range list {
		rows[i] = toRow(c)
	}
	return listfilter.Apply(rows, listfilter.FromRequest(r), filterItem), true
}

func (h *Handler) noData(w http.ResponseWriter, r *http.Request) {
	alerts.Push(w, r, h.Flash, alerts.Warning, "Nenhum dado para exportar")
	http.Redirect(w, r, withQuery(r, ""), http.StatusSeeOther)
}
