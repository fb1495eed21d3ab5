package auth

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"hermes/pkg/errors"
)

// Flow drives the browser-based OAuth2 authorization-code exchange. It
// produces tokens; it never stores them. The API clients take tokens as
// call parameters, so token lifetime is entirely the caller's concern.
type Flow struct {
	config *oauth2.Config
	state  string
}

// FlowConfig carries the OAuth client registration.
type FlowConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
}

// NewFlow builds a consent flow against Google's authorization endpoint.
func NewFlow(cfg FlowConfig) (*Flow, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.Wrap(errors.ErrInvalidArgument, "client id and secret are required")
	}
	if cfg.RedirectURI == "" {
		return nil, errors.Wrap(errors.ErrInvalidArgument, "redirect uri is required")
	}

	return &Flow{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint:     googleoauth.Endpoint,
		},
		state: uuid.New().String(),
	}, nil
}

// AuthURL returns the consent URL the user must open. Offline access and
// a forced consent screen are requested so the exchange yields a refresh
// token.
func (f *Flow) AuthURL() string {
	return f.config.AuthCodeURL(f.state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// State returns the anti-forgery state attached to AuthURL.
func (f *Flow) State() string {
	return f.state
}

// ParseRedirect extracts the authorization code from the redirect URL the
// user was sent back to (pasted or captured by the callback server). The
// state parameter must match the one issued with AuthURL; an `error`
// query parameter surfaces as ErrConsent.
func (f *Flow) ParseRedirect(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(errors.ErrConsent, "parse redirect url: %v", err)
	}

	query := parsed.Query()
	if errCode := query.Get("error"); errCode != "" {
		return "", errors.Wrapf(errors.ErrConsent, "authorization denied: %s", errCode)
	}

	if state := query.Get("state"); state != f.state {
		return "", errors.Wrap(errors.ErrConsent, "state mismatch")
	}

	code := query.Get("code")
	if code == "" {
		return "", errors.Wrap(errors.ErrConsent, "redirect url carries no code")
	}
	return code, nil
}

// Exchange trades an authorization code for tokens.
func (f *Flow) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, errors.Wrap(errors.ErrInvalidArgument, "authorization code is required")
	}

	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(errors.ErrTimeout, "%v", ctx.Err())
		}
		return nil, errors.Wrapf(errors.ErrAuth, "code exchange: %v", err)
	}
	return token, nil
}

// TokenSource wraps the exchanged token in a self-refreshing source.
func (f *Flow) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return f.config.TokenSource(ctx, token)
}
