// internal/app/features/congregations/delete.go
package congregations

import (
	"context"
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	state := crudview.New(basePath).Open(crudview.ConfirmDelete, c.ID.Hex())
	del := &deleteVM{
		Action:    state.FormAction(),
		Label:     c.Name,
		BackURL:   httpnav.ResolveBackURL(r, basePath),
		CSRFToken: csrf.Token(r),
	}
	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "confirm_delete", del)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.Del = del
	templates.Render(w, r, "congregations_list", data)
}

// HandleDelete removes the congregation. Events and users pointing at it
// keep the reference and display "Não encontrada".
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad congregation id", "Congregação não encontrada.", basePath)
		return
	}
	n, err := h.congregations.Delete(ctx, id)
	switch {
	case err != nil:
		h.Log.Error("delete congregation failed", zap.Error(err), zap.String("congregation_id", id.Hex()))
		alerts.Push(w, r, h.Flash, alerts.Danger, "Erro ao excluir congregação.")
	case n == 0:
		alerts.Push(w, r, h.Flash, alerts.Warning, "Congregação não encontrada.")
	default:
		alerts.Push(w, r, h.Flash, alerts.Success, "Congregação excluída com sucesso!")
	}
	crudview.Redirect(w, r, basePath)
}
