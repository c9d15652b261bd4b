// internal/app/features/login/reset.go
package login

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/agenda/internal/app/store/passwordreset"
	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/dalemusser/agenda/internal/app/system/authutil"
	"github.com/dalemusser/agenda/internal/app/system/identity"
	"github.com/dalemusser/agenda/internal/app/system/inputval"
	"github.com/dalemusser/agenda/internal/app/system/mailer"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	msgEmailRequired = "Por favor, informe seu e-mail."
	msgResetSent     = "E-mail de recuperação enviado. Verifique sua caixa de entrada."
	msgResetDone     = "Senha redefinida. Faça login com a nova senha."
	msgResetInvalid  = "Este link de recuperação é inválido ou expirou. Solicite um novo."
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /login/reset                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeResetRequest(w http.ResponseWriter, r *http.Request) {
	h.renderResetRequest(w, r, "", "")
}

// HandleResetRequest e-mails a single-use link for choosing a new password.
func (h *Handler) HandleResetRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Formulário inválido.", "/login/reset")
		return
	}
	email := normalize.Email(r.FormValue("email"))
	if email == "" {
		h.renderResetRequest(w, r, msgEmailRequired, email)
		return
	}
	if !inputval.IsValidEmail(email) {
		h.renderResetRequest(w, r, identity.Message(identity.FlowReset, identity.CodeInvalidEmail), email)
		return
	}
	if h.Limiter != nil {
		if ok, _ := h.Limiter.Check(r, email); !ok {
			h.renderResetRequest(w, r, identity.Message(identity.FlowLogin, identity.CodeTooManyRequests), email)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.renderResetRequest(w, r, identity.Message(identity.FlowReset, identity.CodeUserNotFound), email)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "database error loading user", err, identity.Message(identity.FlowReset, ""), "/login/reset")
		return
	}
	if normalize.Status(u.Status) == models.UserDisabled {
		h.renderResetRequest(w, r, identity.Message(identity.FlowLogin, identity.CodeUserDisabled), email)
		return
	}

	reset, err := h.resets.Create(ctx, u.ID, u.Email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create reset token failed", err, identity.Message(identity.FlowReset, ""), "/login/reset")
		return
	}

	msg := mailer.BuildPasswordResetEmail(mailer.PasswordResetData{
		SiteName:  viewdata.SiteName(),
		Name:      u.FullName,
		ResetLink: strings.TrimRight(h.BaseURL, "/") + "/login/reset/" + reset.Token,
		ExpiresIn: formatExpiry(h.resets.Expiry()),
	})
	msg.To = u.Email
	if err := h.Mailer.Send(ctx, msg); err != nil {
		h.Log.Error("send reset e-mail failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		h.renderResetRequest(w, r, identity.Message(identity.FlowReset, ""), email)
		return
	}

	h.Log.Info("password reset requested", zap.String("user_id", u.ID.Hex()))
	alerts.Push(w, r, h.SessionMgr, alerts.Success, msgResetSent)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) renderResetRequest(w http.ResponseWriter, r *http.Request, msg, email string) {
	templates.Render(w, r, "reset_request", resetRequestData{
		BaseVM: viewdata.NewBaseVM(r, "Recuperar senha", "/login"),
		Error:  msg,
		Email:  email,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /login/reset/{token}                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	reset, err := h.resets.Peek(ctx, token)
	if errors.Is(err, passwordreset.ErrNotFound) {
		h.renderResetPassword(w, r, token, "", msgResetInvalid, true)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load reset token failed", err, identity.Message(identity.FlowReset, ""), "/login/reset")
		return
	}
	h.renderResetPassword(w, r, token, reset.Email, "", false)
}

// HandleResetPassword validates the new password before consuming the
// token, so a typo does not burn the link.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Formulário inválido.", "/login/reset")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reset, err := h.resets.Peek(ctx, token)
	if errors.Is(err, passwordreset.ErrNotFound) {
		h.renderResetPassword(w, r, token, "", msgResetInvalid, true)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load reset token failed", err, identity.Message(identity.FlowReset, ""), "/login/reset")
		return
	}

	password, confirm := r.FormValue("senha"), r.FormValue("confirmacao")
	if password == "" || confirm == "" {
		h.renderResetPassword(w, r, token, reset.Email, msgFillAll, false)
		return
	}
	if err := authutil.ValidateNewPassword(password, confirm); err != nil {
		h.renderResetPassword(w, r, token, reset.Email, authutil.Message(err), false)
		return
	}
	hash, err := authutil.HashPassword(password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, identity.Message(identity.FlowReset, ""), "/login/reset")
		return
	}

	if _, err := h.resets.Consume(ctx, token); err != nil {
		if errors.Is(err, passwordreset.ErrNotFound) {
			h.renderResetPassword(w, r, token, "", msgResetInvalid, true)
			return
		}
		h.ErrLog.LogServerError(w, r, "consume reset token failed", err, identity.Message(identity.FlowReset, ""), "/login/reset")
		return
	}
	if err := h.users.SetPassword(ctx, reset.UserID, hash); err != nil {
		h.ErrLog.LogServerError(w, r, "set password failed", err, identity.Message(identity.FlowReset, ""), "/login/reset")
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(reset.Email)
	}
	h.Log.Info("password reset completed", zap.String("user_id", reset.UserID.Hex()))
	alerts.Push(w, r, h.SessionMgr, alerts.Success, msgResetDone)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) renderResetPassword(w http.ResponseWriter, r *http.Request, token, email, msg string, invalid bool) {
	templates.Render(w, r, "reset_password", resetPasswordData{
		BaseVM:        viewdata.NewBaseVM(r, "Nova senha", "/login"),
		Error:         msg,
		Token:         token,
		Email:         email,
		Invalid:       invalid,
		PasswordRules: authutil.PasswordRules(),
	})
}

// formatExpiry renders d for the e-mail body, e.g. "1 hora", "30 minutos".
func formatExpiry(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		if n := int(d / time.Hour); n > 1 {
			return fmt.Sprintf("%d horas", n)
		}
		return "1 hora"
	case d >= time.Minute:
		if n := int(d / time.Minute); n > 1 {
			return fmt.Sprintf("%d minutos", n)
		}
		return "1 minuto"
	}
	return "alguns instantes"
}
