// Package alerts carries one-shot notifications across a redirect using
// the session flash store.
package alerts

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Level is the Bootstrap contextual class of an alert.
type Level string

const (
	Success Level = "success"
	Danger  Level = "danger"
	Warning Level = "warning"
	Info    Level = "info"
)

// Alert is a dismissible message shown once.
type Alert struct {
	Level   Level
	Message string
}

// SessionGetter is satisfied by auth.SessionManager.
type SessionGetter interface {
	GetSession(r *http.Request) (*sessions.Session, error)
}

const flashKey = "_alerts"

// Push queues an alert for the next full page render.
func Push(w http.ResponseWriter, r *http.Request, sg SessionGetter, level Level, msg string) error {
	sess, _ := sg.GetSession(r)
	sess.AddFlash(string(level)+"|"+msg, flashKey)
	return sess.Save(r, w)
}

type ctxKey struct{}

// Middleware moves queued alerts from the session into the request context
// on full-page GETs. HTMX requests leave them queued for the next page.
func Middleware(sg SessionGetter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.Header.Get("HX-Request") == "true" {
				next.ServeHTTP(w, r)
				return
			}
			sess, _ := sg.GetSession(r)
			flashes := sess.Flashes(flashKey)
			if len(flashes) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			if err := sess.Save(r, w); err != nil {
				logger.Warn("alerts: session save failed", zap.Error(err))
			}
			list := make([]Alert, 0, len(flashes))
			for _, f := range flashes {
				if s, ok := f.(string); ok {
					list = append(list, decode(s))
				}
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, list)))
		})
	}
}

// FromRequest returns the alerts delivered to this request.
func FromRequest(r *http.Request) []Alert {
	list, _ := r.Context().Value(ctxKey{}).([]Alert)
	return list
}

// With adds alerts to the request context for immediate rendering.
func With(r *http.Request, a ...Alert) *http.Request {
	list := append(FromRequest(r), a...)
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, list))
}

func decode(s string) Alert {
	level, msg, ok := strings.Cut(s, "|")
	if !ok {
		return Alert{Level: Info, Message: s}
	}
	switch Level(level) {
	case Success, Danger, Warning, Info:
		return Alert{Level: Level(level), Message: msg}
	}
	return Alert{Level: Info, Message: msg}
}
