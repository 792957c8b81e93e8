package auth

import (
	"context"
	"crypto"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier creates a Verifier that checks tokens against the issuer's
// published JWKS. Keys are fetched lazily and cached by go-oidc.
// Returns nil when identity is disabled.
func NewVerifier(cfg *Config) Verifier {
	if !cfg.Enabled() {
		return nil
	}
	keySet := oidc.NewRemoteKeySet(context.Background(), cfg.JWKSURL)
	return newVerifier(cfg, keySet)
}

// NewStaticVerifier creates a Verifier backed by a fixed set of public keys.
func NewStaticVerifier(cfg *Config, keys ...crypto.PublicKey) Verifier {
	return newVerifier(cfg, &oidc.StaticKeySet{PublicKeys: keys})
}

func newVerifier(cfg *Config, keySet oidc.KeySet) Verifier {
	return &oidcVerifier{
		verifier: oidc.NewVerifier(cfg.Issuer, keySet, &oidc.Config{
			ClientID:          cfg.Audience,
			SkipClientIDCheck: cfg.Audience == "",
		}),
	}
}

func (v *oidcVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var c claims
	if err := token.Claims(&c); err != nil {
		return nil, fmt.Errorf("%w: decode claims: %w", ErrInvalidToken, err)
	}

	return &Identity{
		UserID: token.Subject,
		Email:  c.Email,
		Name:   c.Name,
	}, nil
}
