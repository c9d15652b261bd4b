// internal/app/features/authfirebase/routes.go
package authfirebase

import "github.com/go-chi/chi/v5"

// Routes mounts POST /auth/firebase. The endpoint is public; the ID token
// is the credential.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleSignIn)
	return r
}
