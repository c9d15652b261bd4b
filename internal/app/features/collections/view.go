// internal/app/features/collections/view.go
package collections

import (
	"context"
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

type viewData struct {
	rowVM
	ModalTitle string
	BackURL    string
}

// ServeView shows the details modal including the receipt, when present.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	row := h.rowsFor(ctx, []models.Collection{*c})[0]
	state := crudview.New(basePath).Open(crudview.View, c.ID.Hex())
	vm := &viewData{rowVM: row, ModalTitle: state.Title("Coleta", true), BackURL: httpnav.ResolveBackURL(r, basePath)}

	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "collection_view_modal", vm)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.View = vm
	templates.Render(w, r, "collections_list", data)
}
