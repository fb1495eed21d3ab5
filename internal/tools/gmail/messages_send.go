package gmail

import (
	"context"
	"fmt"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewMessagesSendTool returns a tool that sends a prepared raw message.
func NewMessagesSendTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "gmail_users_messages_send",
			Description: "Send an email from the signed-in user's account. 'raw' must be a base64url-encoded RFC 822 message, typically produced by create_raw_email_message.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := messagesSend(ctx, deps, args)
			metrics.RecordToolCall("gmail_users_messages_send", err)
			return result, err
		})
	return t
}

func messagesSend(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	if !deps.HasGmail() {
		return nil, fmt.Errorf("gmail_users_messages_send: gmail client not configured")
	}

	raw := shared.StringArg(args, "raw")
	if raw == "" {
		return nil, fmt.Errorf("gmail_users_messages_send: 'raw' is required")
	}

	token, err := deps.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("gmail_users_messages_send: %w", err)
	}

	msg, err := deps.Gmail.SendMessage(ctx, token, raw)
	if err != nil {
		deps.Log.Warnw("Tool: gmail_users_messages_send failed", "error", err)
		return nil, fmt.Errorf("gmail_users_messages_send: %w", err)
	}

	deps.Log.Infow("Tool: gmail_users_messages_send success", "id", msg.ID)
	return map[string]interface{}{
		"id":        msg.ID,
		"thread_id": msg.ThreadID,
		"label_ids": msg.LabelIDs,
	}, nil
}
