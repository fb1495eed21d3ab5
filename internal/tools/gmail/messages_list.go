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

// NewMessagesListTool returns a tool that lists message ids matching a
// Gmail search query.
func NewMessagesListTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "gmail_users_messages_list",
			Description: "List Gmail message ids for the signed-in user. Supports Gmail search syntax via 'q' (e.g. 'from:alice is:unread'), 'label_ids', 'max_results', and 'page_token'.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := messagesList(ctx, deps, args)
			metrics.RecordToolCall("gmail_users_messages_list", err)
			return result, err
		})
	return t
}

func messagesList(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	if !deps.HasGmail() {
		return nil, fmt.Errorf("gmail_users_messages_list: gmail client not configured")
	}

	token, err := deps.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("gmail_users_messages_list: %w", err)
	}

	req := google.ListMessagesRequest{
		Query:      shared.StringArg(args, "q"),
		LabelIDs:   shared.StringSliceArg(args, "label_ids"),
		MaxResults: shared.IntArg(args, "max_results"),
		PageToken:  shared.StringArg(args, "page_token"),
	}

	list, err := deps.Gmail.ListMessages(ctx, token, req)
	if err != nil {
		deps.Log.Warnw("Tool: gmail_users_messages_list failed", "query", req.Query, "error", err)
		return nil, fmt.Errorf("gmail_users_messages_list: %w", err)
	}

	messages := make([]map[string]interface{}, 0, len(list.Messages))
	for _, ref := range list.Messages {
		messages = append(messages, map[string]interface{}{
			"id":        ref.ID,
			"thread_id": ref.ThreadID,
		})
	}

	result := map[string]interface{}{
		"messages":             messages,
		"result_size_estimate": list.ResultSizeEstimate,
	}
	if list.NextPageToken != "" {
		result["next_page_token"] = list.NextPageToken
	}

	deps.Log.Debugw("Tool: gmail_users_messages_list success", "count", len(messages))
	return result, nil
}
