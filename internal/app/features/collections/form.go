// internal/app/features/collections/form.go
package collections

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	collectionstore "github.com/dalemusser/agenda/internal/app/store/collections"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/format"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/htmlsanitize"
	"github.com/dalemusser/agenda/internal/app/system/inputval"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
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
	h.renderForm(ctx, w, r, state, h.newForm(ctx, r, state, collectionInput{}))
}

// HandleCreate handles POST /coletas/new. New collections always start
// pendente.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	state := crudview.New(basePath).Open(crudview.Create, "")
	in, res, err := decodeInput(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode collection form failed", err, "Formulário inválido.", basePath)
		return
	}
	if res.HasErrors() {
		form := h.newForm(ctx, r, state, in)
		form.SetResult(res)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	date, _ := format.ParseDate(in.Date)
	_, err = h.collections.Create(ctx, models.Collection{
		Type:           in.Type,
		Date:           date,
		EventID:        formutil.OptionalID(in.EventID),
		ExpectedAmount: amountOrZero(in.ExpectedAmount),
		Notes:          htmlsanitize.StripTags(in.Notes),
	})
	if err != nil {
		h.Log.Error("create collection failed", zap.Error(err))
		form := h.newForm(ctx, r, state, in)
		form.SetError("Erro ao salvar coleta.")
		h.renderForm(ctx, w, r, state, form)
		return
	}

	alerts.Push(w, r, h.Flash, alerts.Success, "Coleta criada com sucesso!")
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
	h.renderForm(ctx, w, r, state, h.newForm(ctx, r, state, inputFromCollection(*c)))
}

// HandleEdit handles POST /coletas/{id}/edit. Status and receipt data are
// left as they are.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad collection id", "Coleta não encontrada.", basePath)
		return
	}
	state := crudview.New(basePath).Open(crudview.Edit, id.Hex())

	in, res, err := decodeInput(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode collection form failed", err, "Formulário inválido.", basePath)
		return
	}
	if res.HasErrors() {
		form := h.newForm(ctx, r, state, in)
		form.SetResult(res)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	date, _ := format.ParseDate(in.Date)
	err = h.collections.Update(ctx, id, collectionstore.Update{
		Type:           in.Type,
		Date:           date,
		EventID:        formutil.OptionalID(in.EventID),
		ExpectedAmount: amountOrZero(in.ExpectedAmount),
		Notes:          htmlsanitize.StripTags(in.Notes),
	})
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "collection not found", "Coleta não encontrada.", basePath)
		return
	case err != nil:
		h.Log.Error("update collection failed", zap.Error(err), zap.String("collection_id", id.Hex()))
		form := h.newForm(ctx, r, state, in)
		form.SetError("Erro ao salvar coleta.")
		h.renderForm(ctx, w, r, state, form)
		return
	}

	alerts.Push(w, r, h.Flash, alerts.Success, "Coleta atualizada com sucesso!")
	crudview.Redirect(w, r, basePath)
}

// target loads the collection named by the {id} param, writing the
// not-found or error response itself when it cannot.
func (h *Handler) target(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Collection, bool) {
	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad collection id", "Coleta não encontrada.", basePath)
		return nil, false
	}
	c, err := h.collections.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogNotFound(w, r, "collection not found", "Coleta não encontrada.", basePath)
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load collection failed", err, "Erro ao carregar coleta.", basePath)
		return nil, false
	}
	return c, true
}

func decodeInput(r *http.Request) (collectionInput, *inputval.Result, error) {
	var in collectionInput
	if err := formutil.Decode(&in, r); err != nil {
		return in, nil, err
	}
	in.EventID = normalize.RefID(in.EventID)
	return in, inputval.Validate(in), nil
}

func inputFromCollection(c models.Collection) collectionInput {
	in := collectionInput{
		Type:           c.Type,
		Date:           format.DateForInput(c.Date),
		ExpectedAmount: amountText(c.ExpectedAmount),
		Notes:          c.Notes,
	}
	if c.EventID != nil {
		in.EventID = c.EventID.Hex()
	}
	return in
}

// amountOrZero reads an already validated amount; blank means 0.
func amountOrZero(s string) float64 {
	if v := normalize.Amount(s); v != nil {
		return *v
	}
	return 0
}

// amountText renders v for a number input.
func amountText(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (h *Handler) newForm(ctx context.Context, r *http.Request, state crudview.State, in collectionInput) *formData {
	f := &formData{
		ModalTitle:     state.Title("Coleta", true),
		Action:         state.FormAction(),
		Type:           in.Type,
		Date:           in.Date,
		EventID:        in.EventID,
		ExpectedAmount: in.ExpectedAmount,
		Notes:          in.Notes,
		Types:          typeOptions(in.Type),
		Events:         h.eventOptions(ctx, in.EventID),
	}
	formutil.SetBase(&f.Base, r, f.ModalTitle, basePath)
	return f
}

func (h *Handler) renderForm(ctx context.Context, w http.ResponseWriter, r *http.Request, state crudview.State, form *formData) {
	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "collection_form_modal", form)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.Form = form
	templates.Render(w, r, "collections_list", data)
}
