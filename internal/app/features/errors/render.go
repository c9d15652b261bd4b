// internal/app/features/errors/render.go
package errors

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

const (
	msgForbidden    = "Você não tem permissão para acessar esta página."
	msgUnauthorized = "Faça login para continuar."
	msgNotFound     = "Registro não encontrado."
	msgBadRequest   = "Requisição inválida."
	msgServerError  = "Ocorreu um erro inesperado. Tente novamente."
)

func render(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/dashboard")
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, backURL),
		Status:  status,
		Message: msg,
	}
	data.BackURL = backURL
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}

// RenderUnauthorized shows the sign-in required page. An empty backURL
// defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	render(w, r, http.StatusUnauthorized, "Login necessário", msgUnauthorized, backURL)
}

// RenderForbidden shows the access denied page with msg.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = msgForbidden
	}
	render(w, r, http.StatusForbidden, "Acesso negado", msg, backURL)
}

func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = msgNotFound
	}
	render(w, r, http.StatusNotFound, "Não encontrado", msg, backURL)
}

func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = msgBadRequest
	}
	render(w, r, http.StatusBadRequest, "Requisição inválida", msg, backURL)
}

func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = msgServerError
	}
	render(w, r, http.StatusInternalServerError, "Erro", msg, backURL)
}

// HTMXError writes a danger alert fragment for HTMX targets.
func HTMXError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("HX-Reswap", "innerHTML")
	w.Header().Set("HX-Retarget", "#alerts")
	w.WriteHeader(status)
	templates.RenderSnippet(w, "error_alert", struct{ Message template.HTML }{
		Message: template.HTML(template.HTMLEscapeString(msg)),
	})
}

func HTMXBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = msgBadRequest
	}
	HTMXError(w, r, http.StatusBadRequest, msg)
}

func HTMXForbidden(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = msgForbidden
	}
	HTMXError(w, r, http.StatusForbidden, msg)
}

func HTMXNotFound(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = msgNotFound
	}
	HTMXError(w, r, http.StatusNotFound, msg)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
