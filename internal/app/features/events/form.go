// internal/app/features/events/form.go
package events

import (
	"context"
	"errors"
	"net/http"

	eventstore "github.com/dalemusser/agenda/internal/app/store/events"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/htmlsanitize"
	"github.com/dalemusser/agenda/internal/app/system/inputval"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/status"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeNew opens the create modal.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	state := crudview.New(basePath).Open(crudview.Create, "")
	form := h.newForm(ctx, r, state, eventInput{Status: string(status.Agendado)})
	h.renderForm(ctx, w, r, state, form)
}

// HandleCreate handles POST /eventos/new.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	state := crudview.New(basePath).Open(crudview.Create, "")
	in, res, err := decodeInput(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode event form failed", err, "Formulário inválido.", basePath)
		return
	}
	if res.HasErrors() {
		form := h.newForm(ctx, r, state, in)
		form.SetResult(res)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	date, _ := format.ParseDate(in.Date)
	_, err = h.events.Create(ctx, models.Event{
		Title:          in.Title,
		Date:           date,
		Time:           in.Time,
		CongregationID: formutil.OptionalID(in.CongregationID),
		MinistryID:     formutil.OptionalID(in.MinistryID),
		Status:         in.Status,
		Notes:          htmlsanitize.StripTags(in.Notes),
		Participants:   formutil.ObjectIDs(in.Participants),
	})
	if err != nil {
		h.Log.Error("create event failed", zap.Error(err))
		form := h.newForm(ctx, r, state, in)
		form.SetError("Erro ao salvar evento.")
		h.renderForm(ctx, w, r, state, form)
		return
	}

	alerts.Push(w, r, h.Flash, alerts.Success, "Evento criado com sucesso!")
	crudview.Redirect(w, r, basePath)
}

// ServeEdit opens the edit modal prefilled from the stored event.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
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

	state := crudview.New(basePath).Open(crudview.Edit, id.Hex())
	form := h.newForm(ctx, r, state, inputFromEvent(*e))
	h.renderForm(ctx, w, r, state, form)
}

// HandleEdit handles POST /eventos/{id}/edit.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad event id", "Evento não encontrado.", basePath)
		return
	}
	state := crudview.New(basePath).Open(crudview.Edit, id.Hex())

	in, res, err := decodeInput(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode event form failed", err, "Formulário inválido.", basePath)
		return
	}
	if res.HasErrors() {
		form := h.newForm(ctx, r, state, in)
		form.SetResult(res)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	date, _ := format.ParseDate(in.Date)
	err = h.events.Update(ctx, id, eventstore.Update{
		Title:          in.Title,
		Date:           date,
		Time:           in.Time,
		CongregationID: formutil.OptionalID(in.CongregationID),
		MinistryID:     formutil.OptionalID(in.MinistryID),
		Status:         in.Status,
		Notes:          htmlsanitize.StripTags(in.Notes),
		Participants:   formutil.ObjectIDs(in.Participants),
	})
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "event not found", "Evento não encontrado.", basePath)
		return
	case err != nil:
		h.Log.Error("update event failed", zap.Error(err), zap.String("event_id", id.Hex()))
		form := h.newForm(ctx, r, state, in)
		form.SetError("Erro ao salvar evento.")
		h.renderForm(ctx, w, r, state, form)
		return
	}

	alerts.Push(w, r, h.Flash, alerts.Success, "Evento atualizado com sucesso!")
	crudview.Redirect(w, r, basePath)
}

func decodeInput(r *http.Request) (eventInput, *inputval.Result, error) {
	var in eventInput
	if err := formutil.Decode(&in, r); err != nil {
		return in, nil, err
	}
	in.CongregationID = normalize.RefID(in.CongregationID)
	in.MinistryID = normalize.RefID(in.MinistryID)
	return in, inputval.Validate(in), nil
}

func inputFromEvent(e models.Event) eventInput {
	in := eventInput{
		Title:  e.Title,
		Date:   format.DateForInput(e.Date),
		Time:   e.Time,
		Status: e.Status,
		Notes:  e.Notes,
	}
	if e.CongregationID != nil {
		in.CongregationID = e.CongregationID.Hex()
	}
	if e.MinistryID != nil {
		in.MinistryID = e.MinistryID.Hex()
	}
	for _, p := range e.Participants {
		in.Participants = append(in.Participants, p.Hex())
	}
	return in
}

// newForm builds the modal view model with every select loaded.
func (h *Handler) newForm(ctx context.Context, r *http.Request, state crudview.State, in eventInput) *formData {
	f := &formData{
		ModalTitle:     state.Title("Evento", false),
		Action:         state.FormAction(),
		EventTitle:     in.Title,
		Date:           in.Date,
		Time:           in.Time,
		CongregationID: in.CongregationID,
		MinistryID:     in.MinistryID,
		Status:         in.Status,
		Notes:          in.Notes,
		Statuses:       statusOptions(in.Status),
	}
	formutil.SetBase(&f.Base, r, f.ModalTitle, basePath)
	f.Ministries, f.Congregations = h.refOptions(ctx, in.MinistryID, in.CongregationID)

	chosen := make(map[string]bool, len(in.Participants))
	for _, p := range in.Participants {
		chosen[p] = true
	}
	users, err := h.users.Options(ctx)
	if err != nil {
		h.Log.Warn("load participant options failed", zap.Error(err))
	}
	for _, u := range users {
		f.Participants = append(f.Participants, option{Value: u.ID.Hex(), Label: u.Name, Selected: chosen[u.ID.Hex()]})
	}
	return f
}

// renderForm shows the modal alone for HTMX requests and inside the full
// list page otherwise.
func (h *Handler) renderForm(ctx context.Context, w http.ResponseWriter, r *http.Request, state crudview.State, form *formData) {
	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "event_form_modal", form)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.Form = form
	templates.Render(w, r, "events_list", data)
}
