// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/agenda/internal/app/system/auth"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the home page under whatever mount point the top-level
// router chooses (normally /dashboard). Every signed-in role can read.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(authz.RequirePermission(authz.Read))
		pr.Get("/", h.ServeDashboard)
		pr.Get("/charts.json", h.ServeCharts)
	})
	return r
}
