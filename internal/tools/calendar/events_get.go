package calendar

import (
	"context"
	"fmt"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewEventsGetTool returns a tool that fetches a single event.
func NewEventsGetTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "calendar_events_get",
			Description: "Fetch one calendar event by 'event_id'. Optional 'calendar_id' defaults to primary.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := eventsGet(ctx, deps, args)
			metrics.RecordToolCall("calendar_events_get", err)
			return result, err
		})
	return t
}

func eventsGet(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	if !deps.HasCalendar() {
		return nil, fmt.Errorf("calendar_events_get: calendar client not configured")
	}

	eventID := shared.StringArg(args, "event_id")
	if eventID == "" {
		return nil, fmt.Errorf("calendar_events_get: 'event_id' is required")
	}

	token, err := deps.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("calendar_events_get: %w", err)
	}

	event, err := deps.Calendar.GetEvent(ctx, token, shared.StringArg(args, "calendar_id"), eventID)
	if err != nil {
		deps.Log.Warnw("Tool: calendar_events_get failed", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("calendar_events_get: %w", err)
	}

	deps.Log.Debugw("Tool: calendar_events_get success", "event_id", event.ID)
	return eventResult(&event), nil
}
