// internal/app/features/collections/list.go
package collections

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/listfilter"
	"github.com/dalemusser/agenda/internal/app/system/refnames"
	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const (
	keyType   = "tipo"
	keyStatus = "status"
	keyEvent  = "evento"
)

// ServeList handles GET /coletas.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := h.loadPage(ctx, r)
	if crudview.IsHTMX(r) && r.Header.Get("HX-Target") == "collections-table" {
		templates.RenderSnippet(w, "collections_table", data)
		return
	}
	templates.Render(w, r, "collections_list", data)
}

func (h *Handler) loadPage(ctx context.Context, r *http.Request) listData {
	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Coletas", "/dashboard"),
		Modal:  crudview.New(basePath),
		CSVURL: withQuery(r, "/export.csv"),
		PDFURL: withQuery(r, "/export.pdf"),
	}

	crit := listfilter.FromRequest(r, keyType, keyStatus, keyEvent)
	data.Filter = filterVM{
		Q:      crit.Search,
		From:   format.DateForInput(crit.From),
		To:     format.DateForInput(crit.To),
		Type:   crit.Value(keyType),
		Status: crit.Value(keyStatus),
		Event:  crit.Value(keyEvent),
		Active: crit.Active(),
	}
	data.Types = typeOptions(data.Filter.Type)
	data.Statuses = statusOptions(data.Filter.Status)
	data.Events = h.eventOptions(ctx, data.Filter.Event)

	list, err := h.collections.List(ctx)
	if err != nil {
		h.Log.Error("list collections failed", zap.Error(err))
		data.LoadError = true
		data.Alerts = append(data.Alerts, alerts.Alert{Level: alerts.Danger, Message: "Erro ao carregar coletas."})
		return data
	}
	rows := h.rowsFor(ctx, list)
	data.Rows = listfilter.Apply(rows, crit, filterItem)
	data.Total = len(rows)
	data.Summary = h.monthSummary(ctx, time.Now())
	return data
}

// monthSummary fills the current month card. A failure only hides the
// totals; the table is still shown.
func (h *Handler) monthSummary(ctx context.Context, now time.Time) summaryVM {
	now = now.In(format.Location())
	vm := summaryVM{Month: format.MonthName(now.Month()) + "/" + strconv.Itoa(now.Year())}
	s, err := h.collections.MonthSummary(ctx, now)
	if err != nil {
		h.Log.Warn("collection month summary failed", zap.Error(err))
		return vm
	}
	vm.Count = s.Count
	vm.TotalRecebido = format.Money(s.TotalRecebido)
	vm.TotalPendente = format.Money(s.TotalPendente)
	return vm
}

func (h *Handler) rowsFor(ctx context.Context, list []models.Collection) []rowVM {
	refs := make([][]refnames.Ref, len(list))
	for i, c := range list {
		refs[i] = []refnames.Ref{{ID: c.EventID, Kind: refnames.Event, Lookup: h.events.Title}}
	}
	names := refnames.Resolve(ctx, refs, refnames.DefaultLimit)

	rows := make([]rowVM, len(list))
	for i, c := range list {
		rows[i] = toRow(c, names[i][0])
	}
	return rows
}

func toRow(c models.Collection, event string) rowVM {
	row := rowVM{
		ID:           c.ID.Hex(),
		Type:         c.Type,
		TypeLabel:    status.CollectionType(c.Type).Label(),
		Date:         c.Date,
		DateText:     format.Date(c.Date),
		Event:        event,
		ExpectedText: format.Money(c.ExpectedAmount),
		AmountText:   format.Money(c.DisplayAmount()),
		Received:     c.IsReceived(),
		Status:       status.CollectionStatus(c.Status),
		Notes:        c.Notes,
		NotesShort:   format.Truncate(c.Notes, 60),
		ReceiptNotes: c.ReceiptNotes,
	}
	if c.EventID != nil {
		row.EventID = c.EventID.Hex()
	}
	if c.CollectedAmount != nil {
		row.CollectedText = format.Currency(c.CollectedAmount)
	}
	if c.ReceivedAt != nil {
		row.ReceivedText = format.Date(*c.ReceivedAt)
	}
	return row
}

func filterItem(row rowVM) listfilter.Item {
	return listfilter.Item{
		Cells: []string{row.TypeLabel, row.DateText, row.Event, row.AmountText, row.Status.Label(), row.Notes},
		Date:  row.Date,
		Attrs: map[string]string{
			keyType:   row.Type,
			keyStatus: string(row.Status),
			keyEvent:  row.EventID,
		},
	}
}

func typeOptions(selected string) []option {
	out := make([]option, 0, 4)
	for _, t := range status.CollectionTypes() {
		out = append(out, option{Value: string(t), Label: t.Label(), Selected: string(t) == selected})
	}
	return out
}

func statusOptions(selected string) []option {
	out := make([]option, 0, 2)
	for _, s := range status.CollectionStatuses() {
		out = append(out, option{Value: string(s), Label: s.Label(), Selected: string(s) == selected})
	}
	return out
}

// eventOptions loads the event select, labelled "Título - DD/MM/YYYY".
func (h *Handler) eventOptions(ctx context.Context, selected string) []option {
	evs, err := h.events.Options(ctx)
	if err != nil {
		h.Log.Warn("load event options failed", zap.Error(err))
		return nil
	}
	out := make([]option, 0, len(evs))
	for _, e := range evs {
		out = append(out, option{
			Value:    e.ID.Hex(),
			Label:    e.Title + " - " + format.Date(e.Date),
			Selected: e.ID.Hex() == selected,
		})
	}
	return out
}

// withQuery appends the current filters to basePath+suffix.
func withQuery(r *http.Request, suffix string) string {
	if r.URL.RawQuery == "" {
		return basePath + suffix
	}
	return basePath + suffix + "?" + r.URL.RawQuery
}
