package auth

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"hermes/pkg/errors"
)

func newTestFlow(t *testing.T) *Flow {
	t.Helper()
	flow, err := NewFlow(FlowConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8000/callback",
		Scopes:       []string{"openid", "https://www.googleapis.com/auth/gmail.readonly"},
	})
	require.NoError(t, err)
	return flow
}

func TestNewFlowRequiresCredentials(t *testing.T) {
	_, err := NewFlow(FlowConfig{RedirectURI: "http://localhost:8000/callback"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = NewFlow(FlowConfig{ClientID: "id", ClientSecret: "s"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestAuthURLRequestsOfflineConsent(t *testing.T) {
	flow := newTestFlow(t)

	parsed, err := url.Parse(flow.AuthURL())
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "accounts.google.com", parsed.Host)
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "http://localhost:8000/callback", query.Get("redirect_uri"))
	assert.Equal(t, "offline", query.Get("access_type"))
	assert.Equal(t, "force", query.Get("approval_prompt"))
	assert.Equal(t, flow.State(), query.Get("state"))
	assert.Contains(t, query.Get("scope"), "gmail.readonly")
}

func TestParseRedirectExtractsCode(t *testing.T) {
	flow := newTestFlow(t)

	redirect := "http://localhost:8000/callback?code=4%2FabcDEF&state=" + flow.State() + "&scope=openid"
	code, err := flow.ParseRedirect(redirect)
	require.NoError(t, err)
	assert.Equal(t, "4/abcDEF", code)
}

func TestParseRedirectRejectsStateMismatch(t *testing.T) {
	flow := newTestFlow(t)

	_, err := flow.ParseRedirect("http://localhost:8000/callback?code=abc&state=forged")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConsent))
}

func TestParseRedirectSurfacesDenial(t *testing.T) {
	flow := newTestFlow(t)

	_, err := flow.ParseRedirect("http://localhost:8000/callback?error=access_denied&state=" + flow.State())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConsent))
	assert.Contains(t, err.Error(), "access_denied")
}

func TestParseRedirectRequiresCode(t *testing.T) {
	flow := newTestFlow(t)

	_, err := flow.ParseRedirect("http://localhost:8000/callback?state=" + flow.State())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConsent))
}

func TestExchangeRequiresCode(t *testing.T) {
	flow := newTestFlow(t)

	_, err := flow.Exchange(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestStaticTokenProvider(t *testing.T) {
	tok, err := StaticTokenProvider{AccessToken: "abc"}.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = StaticTokenProvider{}.Token(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAuth))
}

func TestOAuthTokenProvider(t *testing.T) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "fresh"})
	tok, err := OAuthTokenProvider{Source: source}.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)

	_, err = OAuthTokenProvider{}.Token(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAuth))
}
