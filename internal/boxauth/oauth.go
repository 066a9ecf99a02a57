package boxauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// Endpoint is the Box OAuth2 endpoint pair. Tests override the URLs on a
// per-config basis.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://app.box.com/api/oauth2/authorize",
	TokenURL: "https://api.box.com/oauth2/token",
}

// Token is the pair of credentials stored per account.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// OAuthConfig returns the oauth2 configuration for a Box application.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
		RedirectURL:  redirectURL,
	}
}

// Exchange trades an authorization code for tokens.
func Exchange(ctx context.Context, conf *oauth2.Config, code string) (*Token, error) {
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return &Token{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}, nil
}

// Refresh trades a refresh token for a fresh access token. The response is
// authoritative: when the provider rotates the refresh token, the returned
// Token carries the new one.
func Refresh(ctx context.Context, conf *oauth2.Config, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("no refresh token available")
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	refreshed := &Token{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = refreshToken
	}
	return refreshed, nil
}
