package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/agenda/internal/app/features/health"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type body struct {
	Status       string              `json:"status"`
	Database     string              `json:"database"`
	Integrations health.Integrations `json:"integrations"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, body) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var b body
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec, b
}

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	in := health.Integrations{Mail: true, Firebase: true}
	rec, b := serve(t, health.NewHandler(db.Client(), in, zap.NewNop()))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if b.Status != "ok" || b.Database != "connected" {
		t.Errorf("body = %+v", b)
	}
	if b.Integrations != in {
		t.Errorf("integrations = %+v, want %+v", b.Integrations, in)
	}
}

func TestServe_DatabaseUnreachable(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100*time.Millisecond))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx)

	rec, b := serve(t, health.NewHandler(client, health.Integrations{}, zap.NewNop()))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if b.Status != "error" || b.Database != "disconnected" {
		t.Errorf("body = %+v", b)
	}
}
