package identity

import (
	"context"
	"fmt"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewUserInfoTool returns a tool that fetches the signed-in user's
// Google profile.
func NewUserInfoTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "oauth2_user_info",
			Description: "Fetch the signed-in user's Google profile: id, email, name, picture, locale.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := userInfo(ctx, deps)
			metrics.RecordToolCall("oauth2_user_info", err)
			return result, err
		})
	return t
}

func userInfo(ctx context.Context, deps shared.Deps) (map[string]interface{}, error) {
	if !deps.HasIdentity() {
		return nil, fmt.Errorf("oauth2_user_info: identity client not configured")
	}

	token, err := deps.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("oauth2_user_info: %w", err)
	}

	info, err := deps.Identity.UserInfo(ctx, token)
	if err != nil {
		deps.Log.Warnw("Tool: oauth2_user_info failed", "error", err)
		return nil, fmt.Errorf("oauth2_user_info: %w", err)
	}

	result := map[string]interface{}{
		"id":             info.ID,
		"verified_email": info.VerifiedEmail,
	}
	for key, value := range map[string]string{
		"email":       info.Email,
		"name":        info.Name,
		"given_name":  info.GivenName,
		"family_name": info.FamilyName,
		"picture":     info.Picture,
		"locale":      info.Locale,
		"hd":          info.HostedDomain,
	} {
		if value != "" {
			result[key] = value
		}
	}

	deps.Log.Debugw("Tool: oauth2_user_info success", "id", info.ID)
	return result, nil
}
