package google

import (
	"context"
	"net/url"
	"strings"

	"hermes/pkg/errors"
)

// IdentityClient talks to Google's OAuth2 identity endpoints. Tokens are
// always supplied per call; the client never acquires, stores, or
// refreshes credentials.
type IdentityClient struct {
	*Client
}

// NewIdentityClient builds an identity client on the shared transport.
func NewIdentityClient(c *Client) *IdentityClient {
	return &IdentityClient{Client: c}
}

// TokenInfo describes an access or ID token as reported by
// POST /oauth2/v2/tokeninfo. Email and VerifiedEmail are only present
// when the token carries the email scope.
type TokenInfo struct {
	Audience      string `json:"audience"`
	Email         string `json:"email,omitempty"`
	ExpiresIn     int    `json:"expires_in"`
	IssuedTo      string `json:"issued_to"`
	Scope         string `json:"scope"`
	UserID        string `json:"user_id"`
	VerifiedEmail bool   `json:"verified_email,omitempty"`
}

// Scopes splits the space-separated scope list into individual grants.
func (t TokenInfo) Scopes() []string {
	return strings.Fields(t.Scope)
}

// Expired reports whether the token has no remaining lifetime.
func (t TokenInfo) Expired() bool {
	return t.ExpiresIn <= 0
}

// UserInfo is the profile record returned by GET /oauth2/v2/userinfo.
// Every field except ID is optional; VerifiedEmail defaults to true
// when the response omits it.
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	Gender        string `json:"gender,omitempty"`
	HostedDomain  string `json:"hd,omitempty"`
	Link          string `json:"link,omitempty"`
	Locale        string `json:"locale,omitempty"`
	Picture       string `json:"picture,omitempty"`
	VerifiedEmail bool   `json:"verified_email"`
}

// TokenInfoRequest selects the token to inspect. Exactly one of the two
// fields must be set.
type TokenInfoRequest struct {
	AccessToken string
	IDToken     string
}

// TokenInfo inspects a token via POST /oauth2/v2/tokeninfo. Exactly one
// of AccessToken/IDToken must be supplied; both or neither fails with
// ErrInvalidArgument before any request is sent. Google answers 400 for
// expired or malformed tokens, which surfaces as ErrAuth.
func (c *IdentityClient) TokenInfo(ctx context.Context, req TokenInfoRequest) (TokenInfo, error) {
	if (req.AccessToken == "") == (req.IDToken == "") {
		return TokenInfo{}, errors.Wrap(errors.ErrInvalidArgument, "exactly one of access_token or id_token must be set")
	}

	params := url.Values{}
	if req.AccessToken != "" {
		params.Set("access_token", req.AccessToken)
	} else {
		params.Set("id_token", req.IDToken)
	}

	var info TokenInfo
	if err := c.post(ctx, "oauth2", "tokeninfo", "/oauth2/v2/tokeninfo", params, "", nil, &info); err != nil {
		// The tokeninfo endpoint reports invalid/expired tokens as 400
		// with an error body, which is a credential rejection here.
		var se *StatusError
		if errors.As(err, &se) && se.Status == 400 {
			return TokenInfo{}, errors.Wrapf(errors.ErrAuth, "%s", se.Message)
		}
		return TokenInfo{}, err
	}

	if info.ExpiresIn < 0 {
		return TokenInfo{}, errors.Wrapf(errors.ErrDecode, "negative expires_in %d", info.ExpiresIn)
	}
	return info, nil
}

// UserInfo fetches the authenticated user's profile via
// GET /oauth2/v2/userinfo. Scope enforcement (openid or the
// userinfo.email/userinfo.profile scopes) happens server-side; a 401/403
// surfaces as ErrAuth with the server's message.
func (c *IdentityClient) UserInfo(ctx context.Context, bearerToken string) (UserInfo, error) {
	return c.userInfo(ctx, "userinfo", "/oauth2/v2/userinfo", bearerToken)
}

// UserInfoMe is the endpoint-parity alias for GET /userinfo/v2/me,
// identical in contract to UserInfo.
func (c *IdentityClient) UserInfoMe(ctx context.Context, bearerToken string) (UserInfo, error) {
	return c.userInfo(ctx, "userinfo_me", "/userinfo/v2/me", bearerToken)
}

func (c *IdentityClient) userInfo(ctx context.Context, endpoint, path, bearerToken string) (UserInfo, error) {
	if bearerToken == "" {
		return UserInfo{}, errors.Wrap(errors.ErrInvalidArgument, "bearer token is required")
	}

	// verified_email defaults to true when the response omits it, so the
	// wire struct uses a pointer to distinguish absent from false.
	var wire struct {
		UserInfo
		VerifiedEmail *bool `json:"verified_email"`
	}
	if err := c.get(ctx, "oauth2", endpoint, path, nil, bearerToken, &wire); err != nil {
		return UserInfo{}, err
	}

	info := wire.UserInfo
	info.VerifiedEmail = wire.VerifiedEmail == nil || *wire.VerifiedEmail
	return info, nil
}
