package gmail

import (
	"context"
	"fmt"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewGetProfileTool returns a tool that fetches the user's mailbox profile.
func NewGetProfileTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "gmail_users_get_profile",
			Description: "Fetch the signed-in user's Gmail profile: email address, total messages and total threads.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := getProfile(ctx, deps)
			metrics.RecordToolCall("gmail_users_get_profile", err)
			return result, err
		})
	return t
}

func getProfile(ctx context.Context, deps shared.Deps) (map[string]interface{}, error) {
	if !deps.HasGmail() {
		return nil, fmt.Errorf("gmail_users_get_profile: gmail client not configured")
	}

	token, err := deps.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("gmail_users_get_profile: %w", err)
	}

	profile, err := deps.Gmail.GetProfile(ctx, token)
	if err != nil {
		deps.Log.Warnw("Tool: gmail_users_get_profile failed", "error", err)
		return nil, fmt.Errorf("gmail_users_get_profile: %w", err)
	}

	deps.Log.Debugw("Tool: gmail_users_get_profile success", "email", profile.EmailAddress)
	return map[string]interface{}{
		"email_address":  profile.EmailAddress,
		"messages_total": profile.MessagesTotal,
		"threads_total":  profile.ThreadsTotal,
		"history_id":     profile.HistoryID,
	}, nil
}
