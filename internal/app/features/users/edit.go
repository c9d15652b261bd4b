// internal/app/features/users/edit.go
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/inputval"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const selfLockout = "Você não pode remover seu próprio papel de administrador nem desativar sua conta. Peça a outro administrador."

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	in := userInput{Roles: normalize.Roles(u.Roles), Status: normalize.Status(u.Status)}
	if in.Status == "" {
		in.Status = models.UserActive
	}
	if u.CongregationID != nil {
		in.CongregationID = u.CongregationID.Hex()
	}
	for _, id := range u.MinistryIDs {
		in.MinistryIDs = append(in.MinistryIDs, id.Hex())
	}
	state := crudview.New(basePath).Open(crudview.Edit, u.ID.Hex())
	h.renderForm(ctx, w, r, state, h.newForm(ctx, r, state, u, in))
}

// HandleEdit handles POST /usuarios/{id}/edit. An administrator cannot
// drop their own admin role or disable themselves. When the user has a
// Firebase account the new role flags are pushed to its custom claims; a
// failed push keeps the local change and shows a warning.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, ok := h.target(ctx, w, r)
	if !ok {
		return
	}
	state := crudview.New(basePath).Open(crudview.Edit, u.ID.Hex())

	var in userInput
	if err := formutil.Decode(&in, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode user form failed", err, "Formulário inválido.", basePath)
		return
	}
	in.Roles = normalize.Roles(in.Roles)
	in.Status = normalize.Status(in.Status)
	in.CongregationID = normalize.RefID(in.CongregationID)

	if res := inputval.Validate(in); res.HasErrors() {
		form := h.newForm(ctx, r, state, u, in)
		form.SetResult(res)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	claims := authz.ClaimsFromRoles(in.Roles)
	if _, _, who, _ := authz.UserCtx(r); who == u.ID && (!claims.Admin || in.Status != models.UserActive) {
		form := h.newForm(ctx, r, state, u, in)
		form.SetError(selfLockout)
		h.renderForm(ctx, w, r, state, form)
		return
	}

	err := h.users.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{
		Roles:          in.Roles,
		MinistryIDs:    formutil.ObjectIDs(in.MinistryIDs),
		CongregationID: formutil.OptionalID(in.CongregationID),
		Status:         in.Status,
	})
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "user not found", "Usuário não encontrado.", basePath)
		return
	case err != nil:
		h.Log.Error("update user failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		form := h.newForm(ctx, r, state, u, in)
		form.SetError("Erro ao salvar usuário.")
		h.renderForm(ctx, w, r, state, form)
		return
	}

	h.Log.Info("user roles updated",
		zap.String("user_id", u.ID.Hex()),
		zap.Strings("roles", in.Roles),
		zap.String("status", in.Status))
	alerts.Push(w, r, h.Flash, alerts.Success, "Usuário atualizado com sucesso!")

	if h.Identity != nil && u.FirebaseUID != nil && *u.FirebaseUID != "" {
		if len(in.Roles) == 0 {
			claims.Membro = true
		}
		if err := h.Identity.SetRoleClaims(ctx, *u.FirebaseUID, claims); err != nil {
			h.Log.Warn("sync firebase claims failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
			alerts.Push(w, r, h.Flash, alerts.Warning, "Papéis salvos, mas não foi possível sincronizar com o Firebase.")
		}
	}
	crudview.Redirect(w, r, basePath)
}

func (h *Handler) target(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := crudview.TargetID(r)
	if !ok {
		h.ErrLog.LogNotFound(w, r, "bad user id", "Usuário não encontrado.", basePath)
		return nil, false
	}
	u, err := h.users.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogNotFound(w, r, "user not found", "Usuário não encontrado.", basePath)
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load user failed", err, "Erro ao carregar usuário.", basePath)
		return nil, false
	}
	return u, true
}

func (h *Handler) newForm(ctx context.Context, r *http.Request, state crudview.State, u *models.User, in userInput) *formData {
	_, _, who, _ := authz.UserCtx(r)
	f := &formData{
		ModalTitle: state.Title("Usuário", false),
		Action:     state.FormAction(),
		Name:       u.FullName,
		Email:      u.Email,
		IsSelf:     who == u.ID,
		Status:     in.Status,
	}
	formutil.SetBase(&f.Base, r, f.ModalTitle, basePath)

	held := make(map[string]bool, len(in.Roles))
	for _, t := range in.Roles {
		held[t] = true
	}
	for _, role := range authz.Roles() {
		f.Roles = append(f.Roles, option{Value: string(role), Label: role.Label(), Selected: held[string(role)]})
	}

	member := make(map[string]bool, len(in.MinistryIDs))
	for _, id := range in.MinistryIDs {
		member[id] = true
	}
	ministries, err := h.ministries.Options(ctx)
	if err != nil {
		h.Log.Warn("load ministry options failed", zap.Error(err))
	}
	for _, m := range ministries {
		f.Ministries = append(f.Ministries, option{Value: m.ID.Hex(), Label: m.Name, Selected: member[m.ID.Hex()]})
	}

	congregations, err := h.congregations.Options(ctx)
	if err != nil {
		h.Log.Warn("load congregation options failed", zap.Error(err))
	}
	for _, c := range congregations {
		f.Congregations = append(f.Congregations, option{Value: c.ID.Hex(), Label: c.Name, Selected: c.ID.Hex() == in.CongregationID})
	}
	return f
}

func (h *Handler) renderForm(ctx context.Context, w http.ResponseWriter, r *http.Request, state crudview.State, form *formData) {
	if crudview.IsHTMX(r) {
		templates.RenderSnippet(w, "user_form_modal", form)
		return
	}
	data := h.loadPage(ctx, r)
	data.Modal = state
	data.Form = form
	templates.Render(w, r, "users_list", data)
}

