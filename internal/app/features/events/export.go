// internal/app/features/events/export.go
package events

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/csvexport"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/listfilter"
	"github.com/dalemusser/agenda/internal/app/system/pdfexport"
	"github.com/dalemusser/agenda/internal/app/system/refnames"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const noDataMessage = "Nenhum dado para exportar"

// ServeCSV exports the events matching the current filters.
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, participants, ok := h.exportRows(ctx, w, r)
	if !ok {
		return
	}

	records := make([]csvexport.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, csvexport.Record{
			{Key: "Título", Value: row.Title},
			{Key: "Data", Value: row.DateText},
			{Key: "Hora", Value: row.Time},
			{Key: "Congregação", Value: row.Congregation},
			{Key: "Ministério", Value: row.Ministry},
			{Key: "Status", Value: row.Status.Label()},
			{Key: "Participantes", Value: strings.Join(participants[row.ID], ", ")},
			{Key: "Observações", Value: row.Notes},
		})
	}

	err := csvexport.Serve(w, h.Log, "eventos_"+format.FilenameDate(time.Now()), records)
	if errors.Is(err, csvexport.ErrNoData) {
		h.noData(w, r)
		return
	}
	if err != nil {
		h.Log.Error("write events csv failed", zap.Error(err))
	}
}

// ServePDF renders the filtered events as a report.
func (h *Handler) ServePDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, _, ok := h.exportRows(ctx, w, r)
	if !ok {
		return
	}

	table := pdfexport.Table{
		Title: "Relatório de Eventos",
		Columns: []pdfexport.Column{
			{Header: "Título", Key: "titulo", Width: 60},
			{Header: "Data", Key: "data", Width: 24},
			{Header: "Hora", Key: "hora", Width: 16},
			{Header: "Congregação", Key: "congregacao"},
			{Header: "Ministério", Key: "ministerio"},
			{Header: "Status", Key: "status", Width: 24},
		},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, map[string]string{
			"titulo":      row.Title,
			"data":        row.DateText,
			"hora":        row.Time,
			"congregacao": row.Congregation,
			"ministerio":  row.Ministry,
			"status":      row.Status.Label(),
		})
	}

	err := pdfexport.Serve(w, "eventos_"+format.FilenameDate(time.Now()), table)
	if errors.Is(err, pdfexport.ErrNoRows) {
		h.noData(w, r)
		return
	}
	if err != nil {
		h.Log.Error("render events pdf failed", zap.Error(err))
		http.Error(w, "Erro ao gerar PDF", http.StatusInternalServerError)
	}
}

// exportRows loads the filtered rows and the participant names of each,
// keyed by event id. On a store failure the response is already written.
func (h *Handler) exportRows(ctx context.Context, w http.ResponseWriter, r *http.Request) ([]rowVM, map[string][]string, bool) {
	list, err := h.events.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "export events failed", err, "Erro ao carregar eventos.", basePath)
		return nil, nil, false
	}
	all := h.rowsFor(ctx, list)
	crit := listfilter.FromRequest(r, keyStatus, keyMinistry, keyCongregation)
	rows := listfilter.Apply(all, crit, filterItem)

	wanted := make(map[string]bool, len(rows))
	for _, row := range rows {
		wanted[row.ID] = true
	}
	participants := make(map[string][]string, len(rows))
	for _, e := range list {
		if wanted[e.ID.Hex()] && len(e.Participants) > 0 {
			participants[e.ID.Hex()] = h.participantNames(ctx, e.Participants)
		}
	}
	return rows, participants, true
}

func (h *Handler) participantNames(ctx context.Context, ids []primitive.ObjectID) []string {
	names := refnames.Names(ctx, ids, refnames.Member, h.users.Name)
	out := names[:0]
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

func (h *Handler) noData(w http.ResponseWriter, r *http.Request) {
	alerts.Push(w, r, h.Flash, alerts.Warning, noDataMessage)
	http.Redirect(w, r, withQuery(r, ""), http.StatusSeeOther)
}
