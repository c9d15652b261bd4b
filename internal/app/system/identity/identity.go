// Package identity connects the console to the Firebase project that
// issued the original accounts: it verifies ID tokens, mirrors role flags
// into custom claims, and translates provider error codes into the
// messages shown on the sign-in pages.
package identity

import (
	"context"
	"errors"

	"github.com/dalemusser/agenda/internal/app/system/authz"
)

// ErrInvalidToken wraps every token verification failure.
var ErrInvalidToken = errors.New("invalid id token")

// Identity is a verified external sign-in.
type Identity struct {
	UID           string
	Email         string
	Name          string
	EmailVerified bool
	Claims        authz.Claims
}

// Provider verifies ID tokens and stores role claims for a user.
type Provider interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
	SetRoleClaims(ctx context.Context, uid string, c authz.Claims) error
}
