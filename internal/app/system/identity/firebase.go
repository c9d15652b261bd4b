package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/dalemusser/agenda/internal/app/system/authz"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"google.golang.org/api/option"
)

// Firebase is the Provider backed by Firebase Authentication.
type Firebase struct {
	client *auth.Client
}

// NewFirebase initializes the Admin SDK for projectID. With an empty
// credentialsFile Application Default Credentials are used.
func NewFirebase(ctx context.Context, projectID, credentialsFile string) (*Firebase, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return &Firebase{client: client}, nil
}

// Verify checks the signature, audience and expiry of idToken.
func (f *Firebase) Verify(ctx context.Context, idToken string) (*Identity, error) {
	tok, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	email, _ := tok.Claims["email"].(string)
	name, _ := tok.Claims["name"].(string)
	verified, _ := tok.Claims["email_verified"].(bool)
	return &Identity{
		UID:           tok.UID,
		Email:         normalize.Email(email),
		Name:          name,
		EmailVerified: verified,
		Claims:        authz.ClaimsFromMap(tok.Claims),
	}, nil
}

// SetRoleClaims replaces the user's custom claims with the role flags.
func (f *Firebase) SetRoleClaims(ctx context.Context, uid string, c authz.Claims) error {
	if err := f.client.SetCustomUserClaims(ctx, uid, c.Map()); err != nil {
		return fmt.Errorf("set custom claims for %s: %w", uid, err)
	}
	return nil
}
