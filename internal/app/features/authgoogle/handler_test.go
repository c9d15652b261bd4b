package authgoogle_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/agenda/internal/app/features/authgoogle"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database, clientID, secret string) *authgoogle.Handler {
	t.Helper()
	return authgoogle.NewHandler(db, testutil.SessionManager(t), clientID, secret, "http://localhost:8080/", zap.NewNop())
}

func TestIsConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	if !newTestHandler(t, db, "id", "secret").IsConfigured() {
		t.Error("IsConfigured() = false with client ID and secret")
	}
	if newTestHandler(t, db, "", "").IsConfigured() {
		t.Error("IsConfigured() = true without credentials")
	}
}

func TestNewHandler_RedirectURL(t *testing.T) {
	h := newTestHandler(t, testutil.SetupTestDB(t), "id", "secret")
	if h.RedirectURL != "http://localhost:8080/auth/google/callback" {
		t.Errorf("RedirectURL = %q", h.RedirectURL)
	}
}

func TestServeLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)

	rec := testutil.NewRecorder()
	newTestHandler(t, db, "", "").ServeLogin(rec, testutil.NewRequest(http.MethodGet, "/auth/google"))
	rec.AssertRedirect(t, "/login?error=google_not_configured")

	rec = testutil.NewRecorder()
	newTestHandler(t, db, "id", "secret").ServeLogin(rec, testutil.NewRequest(http.MethodGet, "/auth/google?return=/eventos"))
	rec.AssertStatus(t, http.StatusTemporaryRedirect)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "accounts.google.com") {
		t.Errorf("Location = %q, want Google consent screen", loc)
	}
}

func TestServeCallback_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"google error", "/auth/google/callback?error=access_denied", "/login?error=google_denied"},
		{"missing state", "/auth/google/callback?code=abc", "/login?error=invalid_state"},
		{"unknown state", "/auth/google/callback?state=nope&code=abc", "/login?error=invalid_state"},
	}
	h := newTestHandler(t, testutil.SetupTestDB(t), "id", "secret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.ServeCallback(rec, testutil.NewRequest(http.MethodGet, tt.target))
			rec.AssertRedirect(t, tt.want)
		})
	}
}

func TestFindUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db, "id", "secret")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	active := fx.CreateUser(ctx, "Ana", "ana@igreja.org", "obreiro")
	fx.CreateDisabledUser(ctx, "Bia", "bia@igreja.org")

	u, err := h.FindUser(ctx, "Ana@Igreja.org", true)
	if err != nil || u.ID != active.ID {
		t.Errorf("FindUser(active) = %v, %v", u, err)
	}
	tests := []struct {
		email    string
		verified bool
		want     error
	}{
		{"ana@igreja.org", false, authgoogle.ErrUnverified},
		{"bia@igreja.org", true, authgoogle.ErrDisabled},
		{"ninguem@igreja.org", true, authgoogle.ErrNoAccount},
	}
	for _, tt := range tests {
		if _, err := h.FindUser(ctx, tt.email, tt.verified); !errors.Is(err, tt.want) {
			t.Errorf("FindUser(%q, %v) error = %v, want %v", tt.email, tt.verified, err, tt.want)
		}
	}
}
