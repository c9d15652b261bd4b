// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/agenda/internal/app/system/auth"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts user administration under /usuarios. Accounts are created
// by sign-up or import, so there is no create or delete here.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(authz.RequirePermission(authz.ManageUsers))

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Get("/{id}/edit", h.ServeEdit)
	r.Post("/{id}/edit", h.HandleEdit)
	return r
}
