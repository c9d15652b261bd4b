// internal/app/features/users/view.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/refnames"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	state := crudview.New(basePath).Open(crudview.View, u.ID.Hex())
	vm := &viewData{
		rowVM:      h.rowsFor(ctx, []models.User{*u})[0],
		ModalTitle: state.Title("Usuário", false),
		Ministries: refnames.Names(ctx, u.MinistryIDs, refnames.Ministry, h.ministries.Name),
		BackURL:    httpnav.ResolveBackURL(r, basePath),
	}

	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "user_view_modal", vm)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.View = vm
	templates.Render(w, r, "users_list", data)
}
