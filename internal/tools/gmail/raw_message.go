package gmail

import (
	"context"
	"fmt"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/adapters/google"
	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewRawMessageTool returns a tool that assembles a raw email message.
// It performs no network calls; the result feeds gmail_users_messages_send.
func NewRawMessageTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "create_raw_email_message",
			Description: "Build a base64url-encoded RFC 822 email from 'to', 'subject' and 'body' (plain text, 'from' optional). Pass the returned 'raw' value to gmail_users_messages_send.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := rawMessage(ctx, deps, args)
			metrics.RecordToolCall("create_raw_email_message", err)
			return result, err
		})
	return t
}

func rawMessage(_ context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	to := shared.StringArg(args, "to")
	if to == "" {
		return nil, fmt.Errorf("create_raw_email_message: 'to' is required")
	}

	raw, err := google.BuildRawMessage(
		shared.StringArg(args, "from"),
		to,
		shared.StringArg(args, "subject"),
		shared.StringArg(args, "body"),
	)
	if err != nil {
		return nil, fmt.Errorf("create_raw_email_message: %w", err)
	}

	deps.Log.Debugw("Tool: create_raw_email_message success", "to", to)
	return map[string]interface{}{"raw": raw}, nil
}
