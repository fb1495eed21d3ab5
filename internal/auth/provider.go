package auth

import (
	"context"

	"golang.org/x/oauth2"

	"hermes/pkg/errors"
)

// TokenProvider supplies a bearer token per call. Providers own expiry
// and refresh timing; the API clients just present whatever they get.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenProvider returns a pre-minted access token, e.g. one set
// via GOOGLE_ACCESS_TOKEN for non-interactive runs.
type StaticTokenProvider struct {
	AccessToken string
}

// Token returns the configured token.
func (p StaticTokenProvider) Token(ctx context.Context) (string, error) {
	if p.AccessToken == "" {
		return "", errors.Wrap(errors.ErrAuth, "no access token configured")
	}
	return p.AccessToken, nil
}

// OAuthTokenProvider adapts an oauth2.TokenSource; refresh happens
// inside the source when the access token expires.
type OAuthTokenProvider struct {
	Source oauth2.TokenSource
}

// Token returns a currently-valid access token, refreshing if needed.
func (p OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	if p.Source == nil {
		return "", errors.Wrap(errors.ErrAuth, "no token source configured")
	}
	token, err := p.Source.Token()
	if err != nil {
		return "", errors.Wrapf(errors.ErrAuth, "token refresh: %v", err)
	}
	return token.AccessToken, nil
}
