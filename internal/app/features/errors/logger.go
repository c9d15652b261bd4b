// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/agenda/internal/app/system/auth"
	"go.uber.org/zap"
)

// ErrorLogger logs a handler failure with request context, then renders
// the matching error page (or an HTMX alert fragment).
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	f := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if u, ok := auth.CurrentUser(r); ok {
		f = append(f, zap.String("user_id", u.ID))
	}
	if err != nil {
		f = append(f, zap.Error(err))
	}
	return f
}

// LogServerError logs at error level and renders a 500 page. HTMX requests
// get an alert fragment instead.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, e.fields(r, err)...)
	if isHTMX(r) {
		HTMXError(w, r, http.StatusInternalServerError, orDefault(userMsg, msgServerError))
		return
	}
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, e.fields(r, err)...)
	if isHTMX(r) {
		HTMXBadRequest(w, r, userMsg)
		return
	}
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogNotFound logs at info level and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg string, userMsg, backURL string) {
	e.log.Info(msg, e.fields(r, nil)...)
	if isHTMX(r) {
		HTMXNotFound(w, r, userMsg)
		return
	}
	RenderNotFound(w, r, userMsg, backURL)
}

// HTMXLogServerError always answers with the alert fragment.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Error(msg, e.fields(r, err)...)
	HTMXError(w, r, http.StatusInternalServerError, orDefault(userMsg, msgServerError))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
