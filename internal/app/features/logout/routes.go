package logout

import "github.com/go-chi/chi/v5"

// Routes accepts POST from the navigation form; GET covers bookmarked links.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogout)
	r.Get("/", h.HandleLogout)
	return r
}
