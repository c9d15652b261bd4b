// internal/app/features/ministries/form.go
package ministries

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/htmlsanitize"
	"github.com/dalemusser/agenda/internal/app/system/inputval"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/similar"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	state := crudview.New(basePath).Open(crudview.Create, "")
	h.renderForm(ctx, w, r, state, h.newForm(ctx, r, state, ministryInput{}))
}

// HandleCreate handles POST /ministerios/new.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	state := crudview.New(basePath).Open(crudview.Create, "")
	in, res, err := decodeInput(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode ministry form failed", err, "Formulário inválido.", basePath)
		return
	}
	if res.HasErrors() {
		form := h.newForm(ctx, r, state, in)
		form.SetResult(res)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	var lookalikes []string
	if names, err := h.ministries.Names(ctx, primitive.NilObjectID); err != nil {
		h.Log.Warn("load ministry names failed", zap.Error(err))
	} else {
		lookalikes = similar.Matches(in.Name, names)
	}

	if _, err := h.ministries.Create(ctx, fromInput(in)); err != nil {
		h.Log.Error("create ministry failed", zap.Error(err))
		form := h.newForm(ctx, r, state, in)
		form.SetError("Erro ao salvar ministério.")
		h.renderForm(ctx, w, r, state, form)
		return
	}

	alerts.Push(w, r, h.Flash, alerts.Success, "Ministério criado com sucesso!")
	if len(lookalikes) > 0 {
		alerts.Push(w, r, h.Flash, alerts.Warning, "Já existe ministério com nome semelhante: "+strings.Join(lookalikes, ", ")+".")
	}
	crudview.Redirect(w, r, basePath)
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	in := ministryInput{Name: m.Name, Description: m.Description}
	if m.ResponsibleID != nil {
		in.ResponsibleID = m.ResponsibleID.Hex()
	}
	for _, id := range m.Members {
		in.Members = append(in.Members, id.Hex())
	}
	state := crudview.New(basePath).Open(crudview.Edit, m.ID.Hex())
	h.renderForm(ctx, w, r, state, h.newForm(ctx, r, state, in))
}

// HandleEdit handles POST /ministerios/{id}/edit.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad ministry id", "Ministério não encontrado.", basePath)
		return
	}
	state := crudview.New(basePath).Open(crudview.Edit, id.Hex())

	in, res, err := decodeInput(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode ministry form failed", err, "Formulário inválido.", basePath)
		return
	}
	if res.HasErrors() {
		form := h.newForm(ctx, r, state, in)
		form.SetResult(res)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	err = h.ministries.Update(ctx, id, fromInput(in))
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "ministry not found", "Ministério não encontrado.", basePath)
		return
	case err != nil:
		h.Log.Error("update ministry failed", zap.Error(err), zap.String("ministry_id", id.Hex()))
		form := h.newForm(ctx, r, state, in)
		form.SetError("Erro ao salvar ministério.")
		h.renderForm(ctx, w, r, state, form)
		return
	}

	alerts.Push(w, r, h.Flash, alerts.Success, "Ministério atualizado com sucesso!")
	crudview.Redirect(w, r, basePath)
}

func (h *Handler) target(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Ministry, bool) {
	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad ministry id", "Ministério não encontrado.", basePath)
		return nil, false
	}
	m, err := h.ministries.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogNotFound(w, r, "ministry not found", "Ministério não encontrado.", basePath)
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load ministry failed", err, "Erro ao carregar ministério.", basePath)
		return nil, false
	}
	return m, true
}

func decodeInput(r *http.Request) (ministryInput, *inputval.Result, error) {
	var in ministryInput
	if err := formutil.Decode(&in, r); err != nil {
		return in, nil, err
	}
	in.Name = normalize.Name(in.Name)
	in.ResponsibleID = normalize.RefID(in.ResponsibleID)
	return in, inputval.Validate(in), nil
}

func fromInput(in ministryInput) models.Ministry {
	return models.Ministry{
		Name:          in.Name,
		Description:   htmlsanitize.StripTags(in.Description),
		ResponsibleID: formutil.OptionalID(in.ResponsibleID),
		Members:       formutil.ObjectIDs(in.Members),
	}
}

func (h *Handler) newForm(ctx context.Context, r *http.Request, state crudview.State, in ministryInput) *formData {
	f := &formData{
		ModalTitle:    state.Title("Ministério", false),
		Action:        state.FormAction(),
		Name:          in.Name,
		Description:   in.Description,
		ResponsibleID: in.ResponsibleID,
	}
	formutil.SetBase(&f.Base, r, f.ModalTitle, basePath)

	members := make(map[string]bool, len(in.Members))
	for _, id := range in.Members {
		members[id] = true
	}
	users, err := h.users.Options(ctx)
	if err != nil {
		h.Log.Warn("load user options failed", zap.Error(err))
	}
	for _, u := range users {
		hex := u.ID.Hex()
		f.Users = append(f.Users, option{Value: hex, Label: u.Name, Selected: hex == in.ResponsibleID})
		f.Members = append(f.Members, option{Value: hex, Label: u.Name, Selected: members[hex]})
	}
	return f
}

func (h *Handler) renderForm(ctx context.Context, w http.ResponseWriter, r *http.Request, state crudview.State, form *formData) {
	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "ministry_form_modal", form)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.Form = form
	templates.Render(w, r, "ministries_list", data)
}
