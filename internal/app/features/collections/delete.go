// internal/app/features/collections/delete.go
package collections

import (
	"context"
	"net/http"

	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// ServeDelete asks for confirmation.
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
		Label:     collectionstore.Label(*c),
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
	templates.Render(w, r, "collections_list", data)
}

// HandleDelete removes the collection.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad collection id", "Coleta não encontrada.", basePath)
		return
	}
	n, err := h.collections.Delete(ctx, id)
	switch {
	case err != nil:
		h.Log.Error("delete collection failed", zap.Error(err), zap.String("collection_id", id.Hex()))
		alerts.Push(w, r, h.Flash, alerts.Danger, "Erro ao excluir coleta.")
	case n == 0:
		alerts.Push(w, r, h.Flash, alerts.Warning, "Coleta não encontrada.")
	default:
		alerts.Push(w, r, h.Flash, alerts.Success, "Coleta excluída com sucesso!")
	}
	crudview.Redirect(w, r, basePath)
}
