// internal/app/features/authfirebase/handler.go
package authfirebase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/auth"
	"github.com/dalemusser/agenda/internal/app/system/identity"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxBody caps the sign-in request; an ID token is a few kilobytes.
const maxBody = 64 << 10

// Handler exchanges a Firebase ID token for a console session.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Provider   identity.Provider

	users *userstore.Store
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, provider identity.Provider, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Provider:   provider,
		users:      userstore.New(db),
	}
}

type signInRequest struct {
	IDToken string `json:"idToken"`
	Return  string `json:"return"`
}

type signInResponse struct {
	Redirect string `json:"redirect,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HandleSignIn handles POST /auth/firebase.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		writeJSON(w, http.StatusBadRequest, signInResponse{Error: "Requisição inválida."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Provider.Verify(ctx, req.IDToken)
	if err != nil {
		h.Log.Warn("firebase token rejected", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, signInResponse{Error: identity.Message(identity.FlowLogin, "")})
		return
	}

	u, err := h.Resolve(ctx, id)
	switch {
	case errors.Is(err, errDisabled):
		writeJSON(w, http.StatusForbidden, signInResponse{
			Error: identity.Message(identity.FlowLogin, identity.CodeUserDisabled),
		})
		return
	case err != nil:
		h.Log.Error("resolve firebase user failed", zap.Error(err), zap.String("uid", id.UID))
		writeJSON(w, http.StatusInternalServerError, signInResponse{Error: identity.Message(identity.FlowLogin, "")})
		return
	}

	if err := h.SessionMgr.SignIn(w, r, userstore.SessionUser(u)); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		writeJSON(w, http.StatusInternalServerError, signInResponse{Error: identity.Message(identity.FlowLogin, "")})
		return
	}

	h.Log.Info("user signed in via firebase", zap.String("user_id", u.ID.Hex()), zap.String("uid", id.UID))
	writeJSON(w, http.StatusOK, signInResponse{Redirect: urlutil.SafeReturn(req.Return, "", "/dashboard")})
}

var errDisabled = errors.New("account disabled")

// Resolve finds the local user for a verified identity: first by Firebase
// UID, then by e-mail (linking the UID), otherwise a new account is created
// whose roles come from the token's custom claims. Local roles win for
// existing users.
func (h *Handler) Resolve(ctx context.Context, id *identity.Identity) (*models.User, error) {
	u, err := h.users.GetByFirebaseUID(ctx, id.UID)
	if errors.Is(err, mongo.ErrNoDocuments) && id.Email != "" {
		u, err = h.users.GetByEmail(ctx, id.Email)
		if err == nil {
			if linkErr := h.users.LinkFirebase(ctx, u.ID, id.UID); linkErr != nil {
				return nil, linkErr
			}
		}
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		uid := id.UID
		created, cerr := h.users.Create(ctx, models.User{
			FullName:    nameOrEmail(id),
			Email:       id.Email,
			Roles:       id.Claims.Tags(),
			AuthMethod:  models.AuthFirebase,
			FirebaseUID: &uid,
		})
		if cerr != nil {
			return nil, cerr
		}
		h.Log.Info("account created from firebase sign-in", zap.String("user_id", created.ID.Hex()))
		return &created, nil
	}
	if err != nil {
		return nil, err
	}
	if normalize.Status(u.Status) == models.UserDisabled {
		return nil, errDisabled
	}
	return u, nil
}

func nameOrEmail(id *identity.Identity) string {
	if strings.TrimSpace(id.Name) != "" {
		return id.Name
	}
	if at := strings.IndexByte(id.Email, '@'); at > 0 {
		return id.Email[:at]
	}
	return id.Email
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
