// internal/app/features/collections/receipt.go
package collections

import (
	"context"
	"errors"
	"net/http"
	"time"

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

// ServeReceipt opens the receipt modal, prefilled with the expected
// amount or the previously collected one.
func (h *Handler) ServeReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	in := receiptInput{CollectedAmount: amountText(c.DisplayAmount()), ReceiptNotes: c.ReceiptNotes}
	h.renderReceipt(ctx, w, r, h.newReceipt(r, *c, in))
}

// HandleReceipt marks the collection recebido. The receipt date is the
// server's clock, not a form field.
func (h *Handler) HandleReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, ok := h.target(ctx, w, r)
	if !ok {
		return
	}

	var in receiptInput
	if err := formutil.Decode(&in, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode receipt form failed", err, "Formulário inválido.", basePath)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		form := h.newReceipt(r, *c, in)
		form.SetResult(res)
		h.renderReceipt(ctx, w, r, form)
		return
	}

	collected := normalize.Amount(in.CollectedAmount)
	if collected == nil {
		form := h.newReceipt(r, *c, in)
		form.SetError("Valor recebido deve ser um valor válido.")
		h.renderReceipt(ctx, w, r, form)
		return
	}
	err := h.collections.RegisterReceipt(ctx, c.ID, *collected, htmlsanitize.StripTags(in.ReceiptNotes), time.Now())
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "collection not found", "Coleta não encontrada.", basePath)
		return
	case err != nil:
		h.Log.Error("register receipt failed", zap.Error(err), zap.String("collection_id", c.ID.Hex()))
		form := h.newReceipt(r, *c, in)
		form.SetError("Erro ao registrar recebimento.")
		h.renderReceipt(ctx, w, r, form)
		return
	}

	h.Log.Info("collection received",
		zap.String("collection_id", c.ID.Hex()),
		zap.Float64("amount", *collected))
	alerts.Push(w, r, h.Flash, alerts.Success, "Recebimento registrado com sucesso!")
	crudview.Redirect(w, r, basePath)
}

func (h *Handler) newReceipt(r *http.Request, c models.Collection, in receiptInput) *receiptData {
	f := &receiptData{
		Action:          basePath + "/" + c.ID.Hex() + "/receipt",
		Label:           collectionstore.Label(c),
		ExpectedText:    format.Money(c.ExpectedAmount),
		CollectedAmount: in.CollectedAmount,
		ReceiptNotes:    in.ReceiptNotes,
	}
	formutil.SetBase(&f.Base, r, "Registrar Recebimento", basePath)
	return f
}

func (h *Handler) renderReceipt(ctx context.Context, w http.ResponseWriter, r *http.Request, form *receiptData) {
	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "collection_receipt_modal", form)
		return
	}
	data := h.loadPage(ctx, r)
	id, _ := crudview.TargetID(r)
	data.Modal = data.Modal.Open(crudview.Edit, id.Hex())
	data.Receipt = form
	templates.Render(w, r, "collections_list", data)
}
