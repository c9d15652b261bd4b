package alerts_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/agenda/internal/app/system/alerts"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type cookieSessions struct{ store *sessions.CookieStore }

func (c cookieSessions) GetSession(r *http.Request) (*sessions.Session, error) {
	return c.store.Get(r, "test")
}

func newSessions() cookieSessions {
	return cookieSessions{store: sessions.NewCookieStore([]byte("alerts-test-key-32-bytes-long!!!"))}
}

func TestPushThenDeliverOnce(t *testing.T) {
	sg := newSessions()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/coletas", nil)
	if err := alerts.Push(rec, req, sg, alerts.Success, "Coleta salva com sucesso!"); err != nil {
		t.Fatalf("Push: %v", err)
	}
	cookie := rec.Result().Cookies()[0]

	var got []alerts.Alert
	h := alerts.Middleware(sg, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = alerts.FromRequest(r)
	}))

	page := httptest.NewRequest("GET", "/coletas", nil)
	page.AddCookie(cookie)
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, page)

	if len(got) != 1 || got[0].Level != alerts.Success || got[0].Message != "Coleta salva com sucesso!" {
		t.Fatalf("delivered alerts = %+v", got)
	}

	// The response cookie no longer carries the flash.
	again := httptest.NewRequest("GET", "/coletas", nil)
	again.AddCookie(rec2.Result().Cookies()[0])
	h.ServeHTTP(httptest.NewRecorder(), again)
	if len(got) != 0 {
		t.Errorf("alert delivered twice: %+v", got)
	}
}

func TestMiddleware_HTMXLeavesAlertsQueued(t *testing.T) {
	sg := newSessions()
	rec := httptest.NewRecorder()
	_ = alerts.Push(rec, httptest.NewRequest("POST", "/", nil), sg, alerts.Danger, "Erro")
	cookie := rec.Result().Cookies()[0]

	var got []alerts.Alert
	h := alerts.Middleware(sg, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = alerts.FromRequest(r)
	}))
	req := httptest.NewRequest("GET", "/eventos/table", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(cookie)
	out := httptest.NewRecorder()
	h.ServeHTTP(out, req)

	if len(got) != 0 {
		t.Errorf("HTMX request consumed alerts: %+v", got)
	}
	if len(out.Result().Cookies()) != 0 {
		t.Error("HTMX request should not rewrite the session")
	}
}

func TestWith(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = alerts.With(r, alerts.Alert{Level: alerts.Warning, Message: "Não há coletas para exportar."})
	r = alerts.With(r, alerts.Alert{Level: alerts.Info, Message: "x"})
	if got := alerts.FromRequest(r); len(got) != 2 || got[0].Level != alerts.Warning {
		t.Errorf("FromRequest = %+v", got)
	}
}
