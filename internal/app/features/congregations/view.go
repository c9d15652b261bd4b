// internal/app/features/congregations/view.go
package congregations

import (
	"context"
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeView shows the details modal; the template adds a small map when
// the congregation has coordinates.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	state := crudview.New(basePath).Open(crudview.View, c.ID.Hex())
	vm := &viewData{rowVM: toRow(*c), ModalTitle: state.Title("Congregação", true), BackURL: httpnav.ResolveBackURL(r, basePath)}

	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "congregation_view_modal", vm)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.View = vm
	templates.Render(w, r, "congregations_list", data)
}
