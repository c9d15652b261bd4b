// internal/app/features/events/list.go
package events

import (
	"context"
	"net/http"

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

// filter keys read from the query string
const (
	keyStatus       = "status"
	keyMinistry     = "ministerio"
	keyCongregation = "congregacao"
)

// ServeList handles GET /eventos. With HX-Target="events-table" only the
// table is rendered so the filter form can refresh it in place.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := h.loadPage(ctx, r)
	if crudview.IsHTMX(r) && r.Header.Get("HX-Target") == "events-table" {
		templates.RenderSnippet(w, "events_table", data)
		return
	}
	templates.Render(w, r, "events_list", data)
}

// loadPage builds the list page: rows read once, names resolved, then the
// request's filters applied in memory. A store failure leaves the page in
// its error state instead of showing an empty table.
func (h *Handler) loadPage(ctx context.Context, r *http.Request) listData {
	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Eventos", "/dashboard"),
		Modal:  crudview.New(basePath),
		CSVURL: withQuery(r, "/export.csv"),
		PDFURL: withQuery(r, "/export.pdf"),
	}

	crit := listfilter.FromRequest(r, keyStatus, keyMinistry, keyCongregation)
	data.Filter = filterVM{
		Q:            crit.Search,
		From:         format.DateForInput(crit.From),
		To:           format.DateForInput(crit.To),
		Status:       crit.Value(keyStatus),
		Ministry:     crit.Value(keyMinistry),
		Congregation: crit.Value(keyCongregation),
		Active:       crit.Active(),
	}
	data.Statuses = statusOptions(data.Filter.Status)
	data.Ministries, data.Congregations = h.refOptions(ctx, data.Filter.Ministry, data.Filter.Congregation)

	rows, err := h.loadRows(ctx)
	if err != nil {
		h.Log.Error("list events failed", zap.Error(err))
		data.LoadError = true
		data.Alerts = append(data.Alerts, alerts.Alert{Level: alerts.Danger, Message: "Erro ao carregar eventos."})
		return data
	}
	data.Rows = listfilter.Apply(rows, crit, filterItem)
	data.Total = len(rows)
	return data
}

// loadRows reads every event (most recent first) and resolves the
// congregation and ministry names of each row.
func (h *Handler) loadRows(ctx context.Context) ([]rowVM, error) {
	list, err := h.events.List(ctx)
	if err != nil {
		return nil, err
	}
	return h.rowsFor(ctx, list), nil
}

func (h *Handler) rowsFor(ctx context.Context, list []models.Event) []rowVM {
	refs := make([][]refnames.Ref, len(list))
	for i, e := range list {
		refs[i] = []refnames.Ref{
			{ID: e.CongregationID, Kind: refnames.Congregation, Lookup: h.congregations.Name},
			{ID: e.MinistryID, Kind: refnames.Ministry, Lookup: h.ministries.Name},
		}
	}
	names := refnames.Resolve(ctx, refs, refnames.DefaultLimit)

	rows := make([]rowVM, len(list))
	for i, e := range list {
		rows[i] = toRow(e, names[i][0], names[i][1])
	}
	return rows
}

func toRow(e models.Event, congregation, ministry string) rowVM {
	row := rowVM{
		ID:           e.ID.Hex(),
		Title:        e.Title,
		Date:         e.Date,
		DateText:     format.Date(e.Date),
		Time:         format.Time(e.Time),
		Congregation: congregation,
		Ministry:     ministry,
		Status:       status.Status(e.Status),
		Notes:        e.Notes,
		NotesShort:   format.Truncate(e.Notes, 60),
	}
	if e.CongregationID != nil {
		row.CongregationID = e.CongregationID.Hex()
	}
	if e.MinistryID != nil {
		row.MinistryID = e.MinistryID.Hex()
	}
	return row
}

func filterItem(row rowVM) listfilter.Item {
	return listfilter.Item{
		Cells: []string{row.Title, row.DateText, row.Time, row.Congregation, row.Ministry, row.Status.Label(), row.Notes},
		Date:  row.Date,
		Attrs: map[string]string{
			keyStatus:       string(row.Status),
			keyMinistry:     row.MinistryID,
			keyCongregation: row.CongregationID,
		},
	}
}

func statusOptions(selected string) []option {
	out := make([]option, 0, 3)
	for _, s := range status.EventStatuses() {
		out = append(out, option{Value: string(s), Label: s.Label(), Selected: string(s) == selected})
	}
	return out
}

// refOptions loads the ministry and congregation selects. Failures leave
// the select empty; the page still renders.
func (h *Handler) refOptions(ctx context.Context, ministryID, congregationID string) (ministries, congregations []option) {
	if ms, err := h.ministries.Options(ctx); err != nil {
		h.Log.Warn("load ministry options failed", zap.Error(err))
	} else {
		for _, m := range ms {
			ministries = append(ministries, option{Value: m.ID.Hex(), Label: m.Name, Selected: m.ID.Hex() == ministryID})
		}
	}
	if cs, err := h.congregations.Options(ctx); err != nil {
		h.Log.Warn("load congregation options failed", zap.Error(err))
	} else {
		for _, c := range cs {
			congregations = append(congregations, option{Value: c.ID.Hex(), Label: c.Name, Selected: c.ID.Hex() == congregationID})
		}
	}
	return ministries, congregations
}

// withQuery appends the current filters to basePath+suffix, for export links.
func withQuery(r *http.Request, suffix string) string {
	if r.URL.RawQuery == "" {
		return basePath + suffix
	}
	return basePath + suffix + "?" + r.URL.RawQuery
}
