package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/adapters/google"
	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewTokenInfoTool returns a tool that inspects an OAuth2 token.
func NewTokenInfoTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "oauth2_token_info",
			Description: "Inspect an OAuth2 access or id token: audience, scopes, expiry, and user id. With no arguments the current session token is inspected.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := tokenInfo(ctx, deps, args)
			metrics.RecordToolCall("oauth2_token_info", err)
			return result, err
		})
	return t
}

func tokenInfo(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	if !deps.HasIdentity() {
		return nil, fmt.Errorf("oauth2_token_info: identity client not configured")
	}

	req := google.TokenInfoRequest{
		AccessToken: shared.StringArg(args, "access_token"),
		IDToken:     shared.StringArg(args, "id_token"),
	}
	if req.AccessToken == "" && req.IDToken == "" {
		token, err := deps.Tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("oauth2_token_info: %w", err)
		}
		req.AccessToken = token
	}

	info, err := deps.Identity.TokenInfo(ctx, req)
	if err != nil {
		deps.Log.Warnw("Tool: oauth2_token_info failed", "error", err)
		return nil, fmt.Errorf("oauth2_token_info: %w", err)
	}

	expiresAt := deps.Clock()().Add(time.Duration(info.ExpiresIn) * time.Second)
	result := map[string]interface{}{
		"audience":   info.Audience,
		"issued_to":  info.IssuedTo,
		"user_id":    info.UserID,
		"scopes":     info.Scopes(),
		"expires_in": info.ExpiresIn,
		"expired":    info.Expired(),
		"expires":    humanize.Time(expiresAt),
	}
	if info.Email != "" {
		result["email"] = info.Email
		result["verified_email"] = info.VerifiedEmail
	}

	deps.Log.Debugw("Tool: oauth2_token_info success", "user_id", info.UserID, "expires_in", info.ExpiresIn)
	return result, nil
}
