package authfirebase_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/agenda/internal/app/features/authfirebase"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/dalemusser/agenda/internal/app/system/identity"
	"github.com/dalemusser/agenda/internal/domain/models"
	"github.com/dalemusser/agenda/internal/testutil"
	"go.uber.org/zap"
)

func postJSON(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/firebase", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, rec *testutil.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHandleSignIn_CreatesUserFromClaims(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fake := identity.NewFake()
	fake.Tokens["tok-1"] = identity.Identity{
		UID:    "uid-1",
		Email:  "Pedro@Igreja.org",
		Name:   "Pedro Alves",
		Claims: authz.Claims{Obreiro: true, Membro: true},
	}
	h := authfirebase.NewHandler(db, testutil.SessionManager(t), fake, zap.NewNop())

	rec := testutil.NewRecorder()
	h.HandleSignIn(rec, postJSON(`{"idToken":"tok-1","return":"/coletas"}`))
	rec.AssertStatus(t, http.StatusOK)
	if got := decode(t, rec)["redirect"]; got != "/coletas" {
		t.Errorf("redirect = %q, want /coletas", got)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	u, err := userstore.New(db).GetByFirebaseUID(ctx, "uid-1")
	if err != nil {
		t.Fatalf("GetByFirebaseUID: %v", err)
	}
	if u.Email != "pedro@igreja.org" || u.FullName != "Pedro Alves" {
		t.Errorf("user = %q <%q>", u.FullName, u.Email)
	}
	if !u.HasRole("obreiro") || !u.HasRole("membro") || u.HasRole("admin") {
		t.Errorf("Roles = %v, want obreiro and membro", u.Roles)
	}
	if u.AuthMethod != models.AuthFirebase {
		t.Errorf("AuthMethod = %q", u.AuthMethod)
	}
}

func TestResolve_LinksExistingUserByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	existing := testutil.NewFixtures(t, db).CreateUser(ctx, "Rute", "rute@igreja.org", "dirigente")
	h := authfirebase.NewHandler(db, testutil.SessionManager(t), identity.NewFake(), zap.NewNop())

	// Claims never override local roles.
	u, err := h.Resolve(ctx, &identity.Identity{UID: "uid-rute", Email: "rute@igreja.org", Claims: authz.Claims{Admin: true}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if u.ID != existing.ID {
		t.Errorf("resolved %v, want existing %v", u.ID, existing.ID)
	}
	if u.HasRole("admin") {
		t.Error("token claims must not grant admin to an existing user")
	}

	linked, err := userstore.New(db).GetByFirebaseUID(ctx, "uid-rute")
	if err != nil || linked.ID != existing.ID {
		t.Errorf("firebase uid not linked: %v, %v", linked, err)
	}
}

func TestHandleSignIn_Rejections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateDisabledUser(ctx, "Saul", "saul@igreja.org")

	fake := identity.NewFake()
	fake.Tokens["tok-disabled"] = identity.Identity{UID: "uid-saul", Email: "saul@igreja.org"}
	h := authfirebase.NewHandler(db, testutil.SessionManager(t), fake, zap.NewNop())

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed body", `{`, http.StatusBadRequest},
		{"missing token", `{"idToken":"  "}`, http.StatusBadRequest},
		{"unknown token", `{"idToken":"forjado"}`, http.StatusUnauthorized},
		{"disabled account", `{"idToken":"tok-disabled"}`, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			h.HandleSignIn(rec, postJSON(tt.body))
			rec.AssertStatus(t, tt.want)
			if decode(t, rec)["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}
