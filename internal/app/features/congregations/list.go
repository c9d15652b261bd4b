// internal/app/features/congregations/list.go
package congregations

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/listfilter"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList handles GET /congregacoes: a searchable table plus the map.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := h.loadPage(ctx, r)
	if crudview.IsHTMX(r) && r.Header.Get("HX-Target") == "congregations-table" {
		templates.RenderSnippet(w, "congregations_table", data)
		return
	}
	templates.Render(w, r, "congregations_list", data)
}

func (h *Handler) loadPage(ctx context.Context, r *http.Request) listData {
	crit := listfilter.FromRequest(r)
	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Congregações", "/dashboard"),
		Modal:  crudview.New(basePath),
		Q:      crit.Search,
		CSVURL: withQuery(r, "/export.csv"),
		PDFURL: withQuery(r, "/export.pdf"),
		MapLat: DefaultLat,
		MapLng: DefaultLng,
	}

	list, err := h.congregations.List(ctx)
	if err != nil {
		h.Log.Error("list congregations failed", zap.Error(err))
		data.LoadError = true
		data.Alerts = append(data.Alerts, alerts.Alert{Level: alerts.Danger, Message: "Erro ao carregar congregações."})
		return data
	}
	rows := make([]rowVM, len(list))
	for i, c := range list {
		rows[i] = toRow(c)
	}
	data.Rows = listfilter.Apply(rows, crit, filterItem)
	data.Total = len(rows)
	return data
}

func toRow(c models.Congregation) rowVM {
	row := rowVM{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Address:     c.Address,
		City:        c.City,
		Contact:     c.Contact,
		HasLocation: c.HasLocation(),
		CreatedAt:   c.CreatedAt,
		CreatedText: format.Date(c.CreatedAt),
	}
	if c.Latitude != nil {
		row.Latitude = coord(*c.Latitude)
	}
	if c.Longitude != nil {
		row.Longitude = coord(*c.Longitude)
	}
	return row
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Search covers name, address, city and contact.
func filterItem(row rowVM) listfilter.Item {
	return listfilter.Item{Cells: []string{row.Name, row.Address, row.City, row.Contact}}
}

// withQuery appends the current filters to basePath+suffix.
func withQuery(r *http.Request, suffix string) string {
	if r.URL.RawQuery == "" {
		return basePath + suffix
	}
	return basePath + suffix + "?" + r.URL.RawQuery
}
