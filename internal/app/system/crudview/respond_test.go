package crudview_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/agenda/internal/app/system/crudview"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRedirect(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/eventos/new", nil)
	w := httptest.NewRecorder()
	crudview.Redirect(w, r, "/eventos")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/eventos" {
		t.Errorf("plain redirect = %d %q", w.Code, w.Header().Get("Location"))
	}

	r = httptest.NewRequest(http.MethodPost, "/eventos/new", nil)
	r.Header.Set("HX-Request", "true")
	w = httptest.NewRecorder()
	crudview.Redirect(w, r, "/eventos")
	if w.Code != http.StatusOK || w.Header().Get("HX-Redirect") != "/eventos" {
		t.Errorf("htmx redirect = %d %q", w.Code, w.Header().Get("HX-Redirect"))
	}
}

func TestTargetID(t *testing.T) {
	withID := func(v string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", v)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	oid := primitive.NewObjectID()
	if got, ok := crudview.TargetID(withID(oid.Hex())); !ok || got != oid {
		t.Errorf("TargetID(valid) = %v, %v", got, ok)
	}
	if _, ok := crudview.TargetID(withID("nope")); ok {
		t.Error("TargetID(invalid) should fail")
	}
}
