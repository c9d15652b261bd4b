package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/agenda/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TestUser represents a signed-in user for handler tests.
type TestUser struct {
	ID    string
	Name  string
	Email string
	Roles []string
}

func testUser(name, email string, roles ...string) TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  name,
		Email: email,
		Roles: roles,
	}
}

// AdminUser returns a TestUser with the admin role.
func AdminUser() TestUser { return testUser("Admin Teste", "admin@teste.org", "admin") }

// DirigenteUser returns a TestUser with the dirigente role.
func DirigenteUser() TestUser { return testUser("Dirigente Teste", "dirigente@teste.org", "dirigente") }

// ObreiroUser returns a TestUser with the obreiro role.
func ObreiroUser() TestUser { return testUser("Obreiro Teste", "obreiro@teste.org", "obreiro") }

// MembroUser returns a TestUser with the membro role.
func MembroUser() TestUser { return testUser("Membro Teste", "membro@teste.org", "membro") }

// WithUser injects user into the request context, bypassing the session.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: user.Roles,
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates a request with user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// NewFormRequest creates a url-encoded form POST with user in context.
func NewFormRequest(target string, form url.Values, user TestUser) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return WithUser(r, user)
}

// HTMX marks r as an HTMX request.
func HTMX(r *http.Request) *http.Request {
	r.Header.Set("HX-Request", "true")
	return r
}

// ResponseRecorder wraps httptest.ResponseRecorder with assertions.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

type errorer interface{ Errorf(string, ...any) }

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t errorer, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to location.
func (r *ResponseRecorder) AssertRedirect(t errorer, location string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	if got := r.Header().Get("Location"); got != location {
		t.Errorf("redirect location: got %q, want %q", got, location)
	}
}

// AssertContains checks that the body contains s.
func (r *ResponseRecorder) AssertContains(t errorer, s string) {
	if !strings.Contains(r.Body.String(), s) {
		t.Errorf("response body does not contain %q", s)
	}
}

// SessionManager returns a cookie session manager suitable for flash
// alerts in handler tests.
func SessionManager(t interface{ Fatalf(string, ...any) }) *auth.SessionManager {
	sm, err := auth.NewSessionManager(strings.Repeat("k", 32), "agenda-test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return sm
}
