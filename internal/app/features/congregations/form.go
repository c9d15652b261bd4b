// internal/app/features/congregations/form.go
package congregations

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
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

// ServeNew opens the create modal.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	state := crudview.New(basePath).Open(crudview.Create, "")
	h.renderForm(ctx, w, r, state, newForm(r, state, congregationInput{}))
}

// HandleCreate handles POST /congregacoes/new. A name close to an existing
// one is saved anyway, with a warning naming the look-alikes.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	state := crudview.New(basePath).Open(crudview.Create, "")
	in, res, err := decodeInput(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode congregation form failed", err, "Formulário inválido.", basePath)
		return
	}
	if res.HasErrors() {
		form := newForm(r, state, in)
		form.SetResult(res)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	var lookalikes []string
	if names, err := h.congregations.Names(ctx, primitive.NilObjectID); err != nil {
		h.Log.Warn("load congregation names failed", zap.Error(err))
	} else {
		lookalikes = similar.Matches(in.Name, names)
	}

	if _, err := h.congregations.Create(ctx, fromInput(in)); err != nil {
		h.Log.Error("create congregation failed", zap.Error(err))
		form := newForm(r, state, in)
		form.SetError("Erro ao salvar congregação.")
		h.renderForm(ctx, w, r, state, form)
		return
	}

	alerts.Push(w, r, h.Flash, alerts.Success, "Congregação criada com sucesso!")
	if len(lookalikes) > 0 {
		alerts.Push(w, r, h.Flash, alerts.Warning, "Já existe congregação com nome semelhante: "+strings.Join(lookalikes, ", ")+".")
	}
	crudview.Redirect(w, r, basePath)
}

// ServeEdit opens the edit modal.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	state := crudview.New(basePath).Open(crudview.Edit, c.ID.Hex())
	row := toRow(*c)
	in := congregationInput{
		Name:      c.Name,
		Address:   c.Address,
		City:      c.City,
		Contact:   c.Contact,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
	}
	h.renderForm(ctx, w, r, state, newForm(r, state, in))
}

// HandleEdit handles POST /congregacoes/{id}/edit.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad congregation id", "Congregação não encontrada.", basePath)
		return
	}
	state := crudview.New(basePath).Open(crudview.Edit, id.Hex())

	in, res, err := decodeInput(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode congregation form failed", err, "Formulário inválido.", basePath)
		return
	}
	if res.HasErrors() {
		form := newForm(r, state, in)
		form.SetResult(res)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	err = h.congregations.Update(ctx, id, fromInput(in))
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "congregation not found", "Congregação não encontrada.", basePath)
		return
	case err != nil:
		h.Log.Error("update congregation failed", zap.Error(err), zap.String("congregation_id", id.Hex()))
		form := newForm(r, state, in)
		form.SetError("Erro ao salvar congregação.")
		h.renderForm(ctx, w, r, state, form)
		return
	}

	alerts.Push(w, r, h.Flash, alerts.Success, "Congregação atualizada com sucesso!")
	crudview.Redirect(w, r, basePath)
}

func (h *Handler) target(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Congregation, bool) {
	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad congregation id", "Congregação não encontrada.", basePath)
		return nil, false
	}
	c, err := h.congregations.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogNotFound(w, r, "congregation not found", "Congregação não encontrada.", basePath)
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load congregation failed", err, "Erro ao carregar congregação.", basePath)
		return nil, false
	}
	return c, true
}

func decodeInput(r *http.Request) (congregationInput, *inputval.Result, error) {
	var in congregationInput
	if err := formutil.Decode(&in, r); err != nil {
		return in, nil, err
	}
	in.Name = normalize.Name(in.Name)
	return in, inputval.Validate(in), nil
}

// fromInput maps the form onto the model. Blank or out-of-range
// coordinates are stored as absent.
func fromInput(in congregationInput) models.Congregation {
	return models.Congregation{
		Name:      in.Name,
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		Contact:   strings.TrimSpace(in.Contact),
		Latitude:  normalize.Coordinate(in.Latitude, 90),
		Longitude: normalize.Coordinate(in.Longitude, 180),
	}
}

func newForm(r *http.Request, state crudview.State, in congregationInput) *formData {
	f := &formData{
		ModalTitle: state.Title("Congregação", true),
		Action:     state.FormAction(),
		Name:       in.Name,
		Address:    in.Address,
		City:       in.City,
		Contact:    in.Contact,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
	}
	formutil.SetBase(&f.Base, r, f.ModalTitle, basePath)
	return f
}

func (h *Handler) renderForm(ctx context.Context, w http.ResponseWriter, r *http.Request, state crudview.State, form *formData) {
	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "congregation_form_modal", form)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.Form = form
	templates.Render(w, r, "congregations_list", data)
}
