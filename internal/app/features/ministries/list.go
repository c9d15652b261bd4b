// internal/app/features/ministries/list.go
package ministries

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/listfilter"
	"github.com/dalemusser/agenda/internal/app/system/refnames"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList handles GET /ministerios.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := h.loadPage(ctx, r)
	if crudview.IsHTMX(r) && r.Header.Get("HX-Target") == "ministries-table" {
		templates.RenderSnippet(w, "ministries_table", data)
		return
	}
	templates.Render(w, r, "ministries_list", data)
}

func (h *Handler) loadPage(ctx context.Context, r *http.Request) listData {
	crit := listfilter.FromRequest(r)
	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Ministérios", "/dashboard"),
		Modal:  crudview.New(basePath),
		Q:      crit.Search,
		CSVURL: withQuery(r, "/export.csv"),
		PDFURL: withQuery(r, "/export.pdf"),
	}

	list, err := h.ministries.List(ctx)
	if err != nil {
		h.Log.Error("list ministries failed", zap.Error(err))
		data.LoadError = true
		data.Alerts = append(data.Alerts, alerts.Alert{Level: alerts.Danger, Message: "Erro ao carregar ministérios."})
		return data
	}
	rows := h.rowsFor(ctx, list)
	data.Rows = listfilter.Apply(rows, crit, filterItem)
	data.Total = len(rows)
	return data
}

func (h *Handler) rowsFor(ctx context.Context, list []models.Ministry) []rowVM {
	refs := make([][]refnames.Ref, len(list))
	for i, m := range list {
		refs[i] = []refnames.Ref{{ID: m.ResponsibleID, Kind: refnames.Responsible, Lookup: h.users.Name}}
	}
	names := refnames.Resolve(ctx, refs, refnames.DefaultLimit)

	rows := make([]rowVM, len(list))
	for i, m := range list {
		rows[i] = rowVM{
			ID:               m.ID.Hex(),
			Name:             m.Name,
			Description:      m.Description,
			DescriptionShort: format.Truncate(m.Description, 80),
			Responsible:      names[i][0],
			MemberCount:      len(m.Members),
			CreatedAt:        m.CreatedAt,
			CreatedText:      format.Date(m.CreatedAt),
		}
	}
	return rows
}

func filterItem(row rowVM) listfilter.Item {
	return listfilter.Item{Cells: []string{row.Name, row.Description, row.Responsible, strconv.Itoa(row.MemberCount)}}
}

// withQuery appends the current filters to basePath+suffix.
func withQuery(r *http.Request, suffix string) string {
	if r.URL.RawQuery == "" {
		return basePath + suffix
	}
	return basePath + suffix + "?" + r.URL.RawQuery
}
