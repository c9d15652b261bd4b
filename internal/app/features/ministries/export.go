// internal/app/features/ministries/export.go
package ministries

import (
	"context"
	"errors"
	"net/http"
	"strconv"
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
			{Key: "Descrição", Value: row.Description},
			{Key: "Responsável", Value: row.Responsible},
			{Key: "Membros", Value: strconv.Itoa(row.MemberCount)},
			{Key: "Data de Criação", Value: row.CreatedText},
		})
	}
	err := csvexport.Serve(w, h.Log, "ministerios_"+format.FilenameDate(time.Now()), records)
	if errors.Is(err, csvexport.ErrNoData) {
		h.noData(w, r)
		return
	}
	if err != nil {
		h.Log.Error("write ministries csv failed", zap.Error(err))
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
		Title: "Relatório de Ministérios",
		Columns: []pdfexport.Column{
			{Header: "Nome", Key: "nome", Width: 50},
			{Header: "Descrição", Key: "descricao"},
			{Header: "Responsável", Key: "responsavel", Width: 45},
			{Header: "Membros", Key: "membros", Width: 20},
		},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, map[string]string{
			"nome":        row.Name,
			"descricao":   row.DescriptionShort,
			"responsavel": row.Responsible,
			"membros":     strconv.Itoa(row.MemberCount),
		})
	}
	err := pdfexport.Serve(w, "ministerios_"+format.FilenameDate(time.Now()), table)
	if errors.Is(err, pdfexport.ErrNoRows) {
		h.noData(w, r)
		return
	}
	if err != nil {
		h.Log.Error("render ministries pdf failed", zap.Error(err))
		http.Error(w, "Erro ao gerar PDF", http.StatusInternalServerError)
	}
}

func (h *Handler) exportRows(ctx context.Context, w http.ResponseWriter, r *http.Request) ([]rowVM, bool) {
	list, err := h.ministries.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "export ministries failed", err, "Erro ao carregar ministérios.", basePath)
		return nil, false
	}
	return listfilter.Apply(h.rowsFor(ctx, list), listfilter.FromRequest(r), filterItem), true
}

func (h *Handler) noData(w http.ResponseWriter, r *http.Request) {
	alerts.Push(w, r, h.Flash, alerts.Warning, "Nenhum dado para exportar")
	http.Redirect(w, r, withQuery(r, ""), http.StatusSeeOther)
}
