package gmail

import (
	"context"
	"fmt"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewMessagesGetTool returns a tool that fetches a single Gmail message.
func NewMessagesGetTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "gmail_users_messages_get",
			Description: "Fetch one Gmail message by 'id'. Returns subject, from, to, date, snippet and the plain-text body. Optional 'format' is one of minimal|full|raw|metadata.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := messagesGet(ctx, deps, args)
			metrics.RecordToolCall("gmail_users_messages_get", err)
			return result, err
		})
	return t
}

func messagesGet(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	if !deps.HasGmail() {
		return nil, fmt.Errorf("gmail_users_messages_get: gmail client not configured")
	}

	id := shared.StringArg(args, "id")
	if id == "" {
		return nil, fmt.Errorf("gmail_users_messages_get: 'id' is required")
	}

	token, err := deps.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("gmail_users_messages_get: %w", err)
	}

	msg, err := deps.Gmail.GetMessage(ctx, token, id, shared.StringArg(args, "format"))
	if err != nil {
		deps.Log.Warnw("Tool: gmail_users_messages_get failed", "id", id, "error", err)
		return nil, fmt.Errorf("gmail_users_messages_get: %w", err)
	}

	body, err := msg.PlainText()
	if err != nil {
		deps.Log.Warnw("Tool: gmail_users_messages_get body decode failed", "id", id, "error", err)
		return nil, fmt.Errorf("gmail_users_messages_get: %w", err)
	}

	result := map[string]interface{}{
		"id":        msg.ID,
		"thread_id": msg.ThreadID,
		"snippet":   msg.Snippet,
	}
	if len(msg.LabelIDs) > 0 {
		result["label_ids"] = msg.LabelIDs
	}
	for key, value := range map[string]string{
		"subject": msg.Header("Subject"),
		"from":    msg.Header("From"),
		"to":      msg.Header("To"),
		"date":    msg.Header("Date"),
		"body":    body,
	} {
		if value != "" {
			result[key] = value
		}
	}

	deps.Log.Debugw("Tool: gmail_users_messages_get success", "id", msg.ID)
	return result, nil
}
