// internal/app/features/ministries/view.go
package ministries

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

// ServeView shows the ministry with its responsible and member names.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	state := crudview.New(basePath).Open(crudview.View, m.ID.Hex())
	vm := &viewData{
		rowVM:      h.rowsFor(ctx, []models.Ministry{*m})[0],
		ModalTitle: state.Title("Ministério", false),
		Members:    refnames.Names(ctx, m.Members, refnames.Member, h.users.Name),
		BackURL:    httpnav.ResolveBackURL(r, basePath),
	}

	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "ministry_view_modal", vm)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.View = vm
	templates.Render(w, r, "ministries_list", data)
}
