package calendar

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// OAuthRefresher mints access tokens from refresh tokens with an OAuth client.
type OAuthRefresher struct {
	cfg *oauth2.Config
}

// NewRefresher returns a refresher for the OAuth client, or nil when the
// client id or secret is missing.
func NewRefresher(clientID, clientSecret string, endpoint oauth2.Endpoint) TokenRefresher {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &OAuthRefresher{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     endpoint,
		},
	}
}

// Refresh exchanges refreshToken for a new access token.
func (r *OAuthRefresher) Refresh(ctx context.Context, refreshToken string) (string, error) {
	tok, err := r.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}
	return tok.AccessToken, nil
}
