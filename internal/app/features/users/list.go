// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/listfilter"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/refnames"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const (
	keyRole   = "papel"
	keyStatus = "status"
)

var roleColors = map[authz.Role]string{
	authz.Admin:     "danger",
	authz.Dirigente: "primary",
	authz.Obreiro:   "info",
	authz.Membro:    "secondary",
}

// ServeList handles GET /usuarios.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := h.loadPage(ctx, r)
	if crudview.IsHTMX(r) && r.Header.Get("HX-Target") == "users-table" {
		templates.RenderSnippet(w, "users_table", data)
		return
	}
	templates.Render(w, r, "users_list", data)
}

func (h *Handler) loadPage(ctx context.Context, r *http.Request) listData {
	crit := listfilter.FromRequest(r, keyStatus)
	role := normalize.Role(query.Get(r, keyRole))
	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Usuários", "/dashboard"),
		Modal:  crudview.New(basePath),
		Filter: filterVM{
			Q:      crit.Search,
			Role:   role,
			Status: crit.Value(keyStatus),
			Active: crit.Active() || role != "",
		},
	}
	for _, role := range authz.Roles() {
		data.RoleOpts = append(data.RoleOpts, option{Value: string(role), Label: role.Label(), Selected: string(role) == data.Filter.Role})
	}

	list, err := h.users.List(ctx)
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		data.LoadError = true
		data.Alerts = append(data.Alerts, alerts.Alert{Level: alerts.Danger, Message: "Erro ao carregar usuários."})
		return data
	}
	rows := h.rowsFor(ctx, list)
	data.Rows = listfilter.Apply(withRole(rows, role), crit, filterItem)
	data.Total = len(rows)
	return data
}

func (h *Handler) rowsFor(ctx context.Context, list []models.User) []rowVM {
	refs := make([][]refnames.Ref, len(list))
	for i, u := range list {
		refs[i] = []refnames.Ref{{ID: u.CongregationID, Kind: refnames.Congregation, Lookup: h.congregations.Name}}
	}
	names := refnames.Resolve(ctx, refs, refnames.DefaultLimit)

	rows := make([]rowVM, len(list))
	for i, u := range list {
		tags := normalize.Roles(u.Roles)
		rows[i] = rowVM{
			ID:           u.ID.Hex(),
			Name:         u.FullName,
			Email:        u.Email,
			Phone:        u.Phone,
			Congregation: names[i][0],
			Roles:        badges(tags),
			RoleTags:     tags,
			Ministries:   len(u.MinistryIDs),
			AuthMethod:   u.AuthMethod,
			Disabled:     normalize.Status(u.Status) == models.UserDisabled,
			Linked:       u.FirebaseUID != nil && *u.FirebaseUID != "",
		}
	}
	return rows
}

func badges(tags []string) []roleBadge {
	out := make([]roleBadge, 0, len(tags))
	for _, t := range tags {
		role := authz.Role(t)
		out = append(out, roleBadge{Tag: t, Label: role.Label(), Color: roleColors[role]})
	}
	return out
}

func filterItem(row rowVM) listfilter.Item {
	st := models.UserActive
	if row.Disabled {
		st = models.UserDisabled
	}
	labels := make([]string, len(row.Roles))
	for i, b := range row.Roles {
		labels[i] = b.Label
	}
	return listfilter.Item{
		Cells: []string{row.Name, row.Email, row.Phone, row.Congregation, strings.Join(labels, " ")},
		Attrs: map[string]string{keyStatus: st},
	}
}

// withRole keeps the rows holding role. Roles are additive, so this is a
// membership test rather than an equality filter.
func withRole(rows []rowVM, role string) []rowVM {
	if role == "" {
		return rows
	}
	out := make([]rowVM, 0, len(rows))
	for _, row := range rows {
		for _, t := range row.RoleTags {
			if t == role {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
