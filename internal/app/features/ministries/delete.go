// internal/app/features/ministries/delete.go
package ministries

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

	m, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	state := crudview.New(basePath).Open(crudview.ConfirmDelete, m.ID.Hex())
	del := &deleteVM{
		Action:    state.FormAction(),
		Label:     m.Name,
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
	templates.Render(w, r, "ministries_list", data)
}

// HandleDelete removes the ministry. Events and users pointing at it
// keep the reference and display "Não encontrado".
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad ministry id", "Ministério não encontrado.", basePath)
		return
	}
	n, err := h.ministries.Delete(ctx, id)
	switch {
	case err != nil:
		h.Log.Error("delete ministry failed", zap.Error(err), zap.String("ministry_id", id.Hex()))
		alerts.Push(w, r, h.Flash, alerts.Danger, "Erro ao excluir ministério.")
	case n == 0:
		alerts.Push(w, r, h.Flash, alerts.Warning, "Ministério não encontrado.")
	default:
		alerts.Push(w, r, h.Flash, alerts.Success, "Ministério excluído com sucesso!")
	}
	crudview.Redirect(w, r, basePath)
}
