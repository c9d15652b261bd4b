// internal/app/features/login/login.go
package login

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/authutil"
	"github.com/dalemusser/agenda/internal/app/system/identity"
	"github.com/dalemusser/agenda/internal/app/system/inputval"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	msgFillAll       = "Por favor, preencha todos os campos."
	msgNoPassword    = "Esta conta ainda não possui senha. Use \"Esqueci minha senha\" para definir uma."
	msgSessionFailed = "Não foi possível iniciar a sessão. Tente novamente."
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if h.redirectSignedIn(w, r) {
		return
	}
	h.renderLogin(w, r, externalError(query.Get(r, "error")), "", query.Get(r, "return"))
}

// externalError maps the ?error= codes set by the Google and Firebase
// sign-in callbacks.
func externalError(code string) string {
	switch code {
	case "":
		return ""
	case "no_account":
		return identity.Message(identity.FlowLogin, identity.CodeUserNotFound)
	case "account_disabled":
		return identity.Message(identity.FlowLogin, identity.CodeUserDisabled)
	case "google_not_configured":
		return "Login com Google não está habilitado."
	case "google_denied":
		return "O acesso pelo Google foi cancelado."
	case "email_unverified":
		return "Confirme seu e-mail no Google antes de entrar."
	}
	return identity.Message(identity.FlowLogin, "")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Formulário inválido.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("senha")
	ret := strings.TrimSpace(r.FormValue("return"))

	if email == "" || password == "" {
		h.renderLogin(w, r, msgFillAll, email, ret)
		return
	}
	if !inputval.IsValidEmail(email) {
		h.renderLogin(w, r, identity.Message(identity.FlowLogin, identity.CodeInvalidEmail), email, ret)
		return
	}
	if h.Limiter != nil {
		if ok, _ := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login throttled", zap.String("email", email))
			h.renderLogin(w, r, identity.Message(identity.FlowLogin, identity.CodeTooManyRequests), email, ret)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.renderLogin(w, r, identity.Message(identity.FlowLogin, identity.CodeUserNotFound), email, ret)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "database error loading user", err, "Ocorreu um erro no servidor.", "/login")
		return
	}

	if normalize.Status(u.Status) == models.UserDisabled {
		h.renderLogin(w, r, identity.Message(identity.FlowLogin, identity.CodeUserDisabled), email, ret)
		return
	}

	if u.PasswordHash == nil || *u.PasswordHash == "" {
		// Accounts created through Google or imported from Firebase.
		if normalize.AuthMethod(u.AuthMethod) == models.AuthGoogle && h.GoogleEnabled {
			http.Redirect(w, r, "/auth/google?return="+url.QueryEscape(ret), http.StatusSeeOther)
			return
		}
		h.renderLogin(w, r, msgNoPassword, email, ret)
		return
	}
	if !authutil.CheckPassword(password, *u.PasswordHash) {
		h.renderLogin(w, r, identity.Message(identity.FlowLogin, identity.CodeWrongPassword), email, ret)
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}
	h.signIn(w, r, u, ret)
}

// signIn stores u in the session cookie and redirects to ret, or to the
// dashboard when ret is not a safe local path.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, u *models.User, ret string) {
	su := userstore.SessionUser(u)
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			h.Log.Warn("session cookie invalid", zap.Error(err), zap.String("user_id", su.ID))
		} else {
			h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", su.ID))
		}
		h.renderLogin(w, r, msgSessionFailed, u.Email, ret)
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", su.ID),
		zap.String("auth_method", normalize.AuthMethod(u.AuthMethod)))

	http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/dashboard"), http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, msg, email, ret string) {
	templates.Render(w, r, "login", loginData{
		BaseVM:        viewdata.NewBaseVM(r, "Entrar", "/"),
		Error:         msg,
		Email:         email,
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}
