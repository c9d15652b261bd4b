// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/agenda/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/auth"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// stateTTL bounds the time between leaving for Google and coming back.
const stateTTL = 10 * time.Minute

var (
	// ErrNoAccount means no local user has the Google account's e-mail.
	ErrNoAccount = errors.New("no account for google e-mail")
	// ErrDisabled means the matching local user is disabled.
	ErrDisabled = errors.New("account disabled")
	// ErrUnverified means Google has not verified the e-mail.
	ErrUnverified = errors.New("google e-mail not verified")
)

// Login page error codes; see login.externalError.
const (
	codeNotConfigured = "google_not_configured"
	codeDenied        = "google_denied"
	codeNoAccount     = "no_account"
	codeDisabled      = "account_disabled"
	codeUnverified    = "email_unverified"
	codeInvalidState  = "invalid_state"
	codeInternal      = "internal"
)

// Handler signs existing users in with Google. Accounts are never created
// here; the Google e-mail must match a local user.
type Handler struct {
	SessionMgr  *auth.SessionManager
	States      *oauthstate.Store
	RedirectURL string // <base_url>/auth/google/callback
	Log         *zap.Logger

	conf  *oauth2.Config
	users *userstore.Store
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	redirect := strings.TrimRight(baseURL, "/") + "/auth/google/callback"
	return &Handler{
		SessionMgr:  sessionMgr,
		States:      oauthstate.New(db),
		RedirectURL: redirect,
		Log:         logger,
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirect,
			Scopes:       []string{"openid", googleoauth.UserinfoEmailScope, googleoauth.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
		users: userstore.New(db),
	}
}

// IsConfigured reports whether client credentials are set.
func (h *Handler) IsConfigured() bool {
	return h.conf.ClientID != "" && h.conf.ClientSecret != ""
}

// ServeLogin handles GET /auth/google: it records a state token with the
// return path and sends the browser to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("google sign-in requested but not configured")
		backToLogin(w, r, codeNotConfigured)
		return
	}

	state, err := newState()
	if err != nil {
		h.Log.Error("generate oauth state failed", zap.Error(err))
		backToLogin(w, r, codeInternal)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.States.Save(ctx, state, query.Get(r, "return"), time.Now().UTC().Add(stateTTL)); err != nil {
		h.Log.Error("save oauth state failed", zap.Error(err))
		backToLogin(w, r, codeInternal)
		return
	}
	http.Redirect(w, r, h.conf.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if e := query.Get(r, "error"); e != "" {
		h.Log.Info("google consent not granted", zap.String("error", e))
		backToLogin(w, r, codeDenied)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ret, ok, err := h.States.Validate(ctx, query.Get(r, "state"))
	switch {
	case err != nil:
		h.Log.Error("validate oauth state failed", zap.Error(err))
		backToLogin(w, r, codeInternal)
		return
	case !ok:
		backToLogin(w, r, codeInvalidState)
		return
	}

	info, err := h.userinfo(ctx, query.Get(r, "code"))
	if err != nil {
		h.Log.Error("google userinfo failed", zap.Error(err))
		backToLogin(w, r, codeInternal)
		return
	}

	verified := info.VerifiedEmail != nil && *info.VerifiedEmail
	u, err := h.FindUser(ctx, info.Email, verified)
	if code := failureCode(err); code != "" {
		if code == codeInternal {
			h.Log.Error("look up google user failed", zap.Error(err))
		} else {
			h.Log.Info("google sign-in refused", zap.String("email", info.Email), zap.String("reason", code))
		}
		backToLogin(w, r, code)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, userstore.SessionUser(u)); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		backToLogin(w, r, codeInternal)
		return
	}
	h.Log.Info("user signed in via google", zap.String("user_id", u.ID.Hex()))
	http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/dashboard"), http.StatusSeeOther)
}

// FindUser returns the active local user owning email.
func (h *Handler) FindUser(ctx context.Context, email string, verified bool) (*models.User, error) {
	if !verified {
		return nil, ErrUnverified
	}
	u, err := h.users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoAccount
	}
	if err != nil {
		return nil, err
	}
	if normalize.Status(u.Status) == models.UserDisabled {
		return nil, ErrDisabled
	}
	return u, nil
}

// userinfo exchanges the authorization code and reads the Google profile.
func (h *Handler) userinfo(ctx context.Context, code string) (*googleoauth.Userinfo, error) {
	if code == "" {
		return nil, errors.New("missing authorization code")
	}
	tok, err := h.conf.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(h.conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, err
	}
	return svc.Userinfo.Get().Context(ctx).Do()
}

func failureCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoAccount):
		return codeNoAccount
	case errors.Is(err, ErrDisabled):
		return codeDisabled
	case errors.Is(err, ErrUnverified):
		return codeUnverified
	}
	return codeInternal
}

func backToLogin(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, "/login?error="+code, http.StatusSeeOther)
}

func newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
