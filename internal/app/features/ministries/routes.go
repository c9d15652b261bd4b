// internal/app/features/ministries/routes.go
package ministries

import (
	"github.com/dalemusser/agenda/internal/app/system/auth"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the ministry routes under /ministerios.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequirePermission(authz.Read))
		pr.Get("/", h.ServeList)
		pr.Get("/export.csv", h.ServeCSV)
		pr.Get("/export.pdf", h.ServePDF)
		pr.Get("/{id}", h.ServeView)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequirePermission(authz.Write))
		pr.Get("/new", h.ServeNew)
		pr.Post("/new", h.HandleCreate)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(authz.RequirePermission(authz.Delete))
		pr.Get("/{id}/delete", h.ServeDelete)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
