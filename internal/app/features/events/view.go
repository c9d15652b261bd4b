// internal/app/features/events/view.go
package events

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/refnames"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeView shows the read-only details modal with participant names.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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

	names := refnames.Resolve(ctx, [][]refnames.Ref{{
		{ID: e.CongregationID, Kind: refnames.Congregation, Lookup: h.congregations.Name},
		{ID: e.MinistryID, Kind: refnames.Ministry, Lookup: h.ministries.Name},
	}}, refnames.DefaultLimit)[0]

	state := crudview.New(basePath).Open(crudview.View, id.Hex())
	vm := &viewVM{
		rowVM:        toRow(*e, names[0], names[1]),
		ModalTitle:   state.Title("Evento", false),
		Participants: refnames.Names(ctx, e.Participants, refnames.Member, h.users.Name),
		BackURL:      httpnav.ResolveBackURL(r, basePath),
	}

	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "event_view_modal", vm)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.View = vm
	templates.Render(w, r, "events_list", data)
}
