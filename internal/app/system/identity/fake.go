package identity

import (
	"context"
	"sync"

	"github.com/dalemusser/agenda/internal/app/system/authz"
)

// Fake is an in-memory Provider for tests. Tokens maps an ID token to the
// identity it verifies as; Claims records every SetRoleClaims call.
type Fake struct {
	mu     sync.Mutex
	Tokens map[string]Identity
	Claims map[string]authz.Claims
	Err    error // returned by SetRoleClaims when set
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{Tokens: map[string]Identity{}, Claims: map[string]authz.Claims{}}
}

func (f *Fake) Verify(_ context.Context, idToken string) (*Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.Tokens[idToken]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &id, nil
}

func (f *Fake) SetRoleClaims(_ context.Context, uid string, c authz.Claims) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Claims[uid] = c
	return nil
}

// ClaimsFor returns the last claims stored for uid.
func (f *Fake) ClaimsFor(uid string) (authz.Claims, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.Claims[uid]
	return c, ok
}
