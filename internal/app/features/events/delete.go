// internal/app/features/events/delete.go
package events

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeDelete asks for confirmation before removing an event.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad event id", "Evento não encontrado.", basePath)
		return
	}
	e, err := h.events.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogNotFound(w, r, "event not found", "Evento não encontrado.", basePath)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load event failed", err, "Erro ao carregar evento.", basePath)
		return
	}

	state := crudview.New(basePath).Open(crudview.ConfirmDelete, id.Hex())
	del := &deleteVM{
		Action:    state.FormAction(),
		Label:     e.Title,
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
	templates.Render(w, r, "events_list", data)
}

// HandleDelete removes the event. Collections linked to it keep their
// event_id and show "Evento não encontrado" from then on.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad event id", "Evento não encontrado.", basePath)
		return
	}
	n, err := h.events.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete event failed", zap.Error(err), zap.String("event_id", id.Hex()))
		alerts.Push(w, r, h.Flash, alerts.Danger, "Erro ao excluir evento.")
		crudview.Redirect(w, r, basePath)
		return
	}
	if n == 0 {
		alerts.Push(w, r, h.Flash, alerts.Warning, "Evento não encontrado.")
		crudview.Redirect(w, r, basePath)
		return
	}
	alerts.Push(w, r, h.Flash, alerts.Success, "Evento excluído com sucesso!")
	crudview.Redirect(w, r, basePath)
}
