package health

import "github.com/go-chi/chi/v5"

// Routes serves GET / under the /health mount.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}
