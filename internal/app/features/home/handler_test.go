package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/agenda/internal/app/features/home"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.uber.org/zap"
)

func TestServeRoot(t *testing.T) {
	h := home.NewHandler(zap.NewNop())

	tests := []struct {
		name     string
		signedIn bool
		want     string
	}{
		{"signed out goes to login", false, "/login"},
		{"signed in goes to dashboard", true, "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.signedIn {
				req = testutil.WithUser(req, testutil.MembroUser())
			}
			rec := httptest.NewRecorder()
			h.ServeRoot(rec, req)

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tt.want {
				t.Errorf("Location = %q, want %q", got, tt.want)
			}
		})
	}
}
