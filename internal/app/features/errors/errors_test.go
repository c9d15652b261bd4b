package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorLogger_HTMXServerErrorRetargetsAlerts(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	el := NewErrorLogger(zap.New(core))

	r := httptest.NewRequest(http.MethodPost, "/eventos/new", nil)
	r.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()

	el.HTMXLogServerError(w, r, "create event failed", errors.New("boom"), "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if got := w.Header().Get("HX-Retarget"); got != "#alerts" {
		t.Errorf("HX-Retarget = %q", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "create event failed" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.ContextMap()["path"] != "/eventos/new" {
		t.Errorf("path field = %v", entry.ContextMap()["path"])
	}
}

func TestErrorLogger_BadRequestLogsAtWarn(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	el := NewErrorLogger(zap.New(core))

	r := httptest.NewRequest(http.MethodPost, "/coletas/new", nil)
	r.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()

	el.LogBadRequest(w, r, "parse form failed", errors.New("bad"), "Dados inválidos.", "/coletas")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if logs.Len() != 1 || logs.All()[0].Level != zap.WarnLevel {
		t.Errorf("expected one warn entry, got %+v", logs.All())
	}
}

func TestOrDefault(t *testing.T) {
	if orDefault("", "x") != "x" || orDefault("y", "x") != "y" {
		t.Error("orDefault mismatch")
	}
}
