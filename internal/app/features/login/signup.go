// internal/app/features/login/signup.go
package login

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/authutil"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/dalemusser/agenda/internal/app/system/formutil"
	"github.com/dalemusser/agenda/internal/app/system/identity"
	"github.com/dalemusser/agenda/internal/app/system/inputval"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const (
	msgFillRequired  = "Por favor, preencha todos os campos obrigatórios."
	msgSignupSuccess = "Cadastro realizado com sucesso!"
)

func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	if h.redirectSignedIn(w, r) {
		return
	}
	h.renderSignup(w, r, signupInput{}, "")
}

// HandleSignup creates a local account holding only the membro role and
// signs it in.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var in signupInput
	if err := formutil.Decode(&in, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode signup form failed", err, "Formulário inválido.", "/login/signup")
		return
	}
	in.Name = normalize.Name(in.Name)
	in.Email = normalize.Email(in.Email)

	if in.Name == "" || in.Email == "" || in.Password == "" || in.Confirm == "" {
		h.renderSignup(w, r, in, msgFillRequired)
		return
	}
	if err := authutil.ValidateNewPassword(in.Password, in.Confirm); err != nil {
		h.renderSignup(w, r, in, authutil.Message(err))
		return
	}
	if !inputval.IsValidEmail(in.Email) {
		h.renderSignup(w, r, in, identity.Message(identity.FlowSignup, identity.CodeInvalidEmail))
		return
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, identity.Message(identity.FlowSignup, ""), "/login/signup")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.users.Create(ctx, models.User{
		FullName:       in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		CongregationID: formutil.OptionalID(in.CongregationID),
		Roles:          []string{string(authz.Membro)},
		AuthMethod:     models.AuthPassword,
		PasswordHash:   &hash,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		h.renderSignup(w, r, in, identity.Message(identity.FlowSignup, identity.CodeEmailInUse))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user failed", err, identity.Message(identity.FlowSignup, ""), "/login/signup")
		return
	}

	h.Log.Info("user signed up", zap.String("user_id", u.ID.Hex()))
	alerts.Push(w, r, h.SessionMgr, alerts.Success, msgSignupSuccess)
	h.signIn(w, r, &u, "")
}

func (h *Handler) renderSignup(w http.ResponseWriter, r *http.Request, in signupInput, msg string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var opts []congregationOption
	list, err := h.congregations.Options(ctx)
	if err != nil {
		h.Log.Warn("load congregation options failed", zap.Error(err))
	}
	for _, c := range list {
		id := c.ID.Hex()
		opts = append(opts, congregationOption{ID: id, Name: c.Name, Selected: id == in.CongregationID})
	}

	templates.Render(w, r, "signup", signupData{
		BaseVM:        viewdata.NewBaseVM(r, "Cadastro", "/login"),
		Error:         msg,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Congregations: opts,
		PasswordRules: authutil.PasswordRules(),
	})
}
