package logout

import (
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sessionMgr, Log: logger}
}

// HandleLogout ends the session and sends the browser to /login. A request
// without a session lands on /login as well.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		if err := h.SessionMgr.SignOut(w, r); err != nil {
			h.Log.Error("sign out failed", zap.Error(err), zap.String("user_id", u.ID))
		} else {
			h.Log.Info("user signed out", zap.String("user_id", u.ID))
		}
	}

	// A swapped fragment would keep the signed-in shell on screen.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
