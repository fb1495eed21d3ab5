package calendar

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/adapters/google"
	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewEventsInsertTool returns a tool that creates a calendar event.
func NewEventsInsertTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "calendar_events_insert",
			Description: "Create a calendar event. Required: 'summary', 'start', 'end' (RFC3339 timestamps, or YYYY-MM-DD for all-day events). Optional: 'calendar_id' (default primary), 'description', 'location', 'time_zone', 'attendees' (list of emails).",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := eventsInsert(ctx, deps, args)
			metrics.RecordToolCall("calendar_events_insert", err)
			return result, err
		})
	return t
}

func eventsInsert(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	if !deps.HasCalendar() {
		return nil, fmt.Errorf("calendar_events_insert: calendar client not configured")
	}

	summary := shared.StringArg(args, "summary")
	start := shared.StringArg(args, "start")
	end := shared.StringArg(args, "end")
	switch {
	case summary == "":
		return nil, fmt.Errorf("calendar_events_insert: 'summary' is required")
	case start == "":
		return nil, fmt.Errorf("calendar_events_insert: 'start' is required")
	case end == "":
		return nil, fmt.Errorf("calendar_events_insert: 'end' is required")
	}

	token, err := deps.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("calendar_events_insert: %w", err)
	}

	timeZone := shared.StringArg(args, "time_zone")
	event := google.Event{
		Summary:     summary,
		Description: shared.StringArg(args, "description"),
		Location:    shared.StringArg(args, "location"),
		Start:       eventDateTime(start, timeZone),
		End:         eventDateTime(end, timeZone),
	}
	for _, email := range shared.StringSliceArg(args, "attendees") {
		event.Attendees = append(event.Attendees, google.EventAttendee{Email: email})
	}

	created, err := deps.Calendar.InsertEvent(ctx, token, shared.StringArg(args, "calendar_id"), event)
	if err != nil {
		deps.Log.Warnw("Tool: calendar_events_insert failed", "summary", summary, "error", err)
		return nil, fmt.Errorf("calendar_events_insert: %w", err)
	}

	deps.Log.Infow("Tool: calendar_events_insert success", "id", created.ID, "summary", created.Summary)
	return eventResult(&created), nil
}

// eventDateTime builds a timed instant from an RFC3339 value, or an
// all-day date when the value carries no time component.
func eventDateTime(value, timeZone string) *google.EventDateTime {
	if !strings.Contains(value, "T") {
		return &google.EventDateTime{Date: value}
	}
	return &google.EventDateTime{DateTime: value, TimeZone: timeZone}
}
