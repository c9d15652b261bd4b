// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes mounts the public sign-in pages under /login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.Post("/", h.HandleLogin)
	r.Get("/signup", h.ServeSignup)
	r.Post("/signup", h.HandleSignup)
	r.Get("/reset", h.ServeResetRequest)
	r.Post("/reset", h.HandleResetRequest)
	r.Get("/reset/{token}", h.ServeResetPassword)
	r.Post("/reset/{token}", h.HandleResetPassword)
	return r
}
