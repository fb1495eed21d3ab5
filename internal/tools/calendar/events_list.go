package calendar

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/adapters/google"
	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewEventsListTool returns a tool that lists events from a calendar.
func NewEventsListTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "calendar_events_list",
			Description: "List events from a calendar. Optional: 'calendar_id' (default primary), 'time_min'/'time_max' as RFC3339 timestamps, free-text 'q', 'max_results', 'page_token'. Recurring events are expanded and ordered by start time.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := eventsList(ctx, deps, args)
			metrics.RecordToolCall("calendar_events_list", err)
			return result, err
		})
	return t
}

func eventsList(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	if !deps.HasCalendar() {
		return nil, fmt.Errorf("calendar_events_list: calendar client not configured")
	}

	token, err := deps.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("calendar_events_list: %w", err)
	}

	req := google.ListEventsRequest{
		CalendarID:   shared.StringArg(args, "calendar_id"),
		Query:        shared.StringArg(args, "q"),
		MaxResults:   shared.IntArg(args, "max_results"),
		PageToken:    shared.StringArg(args, "page_token"),
		SingleEvents: true,
		OrderBy:      "startTime",
	}
	if req.TimeMin, err = timeArg(args, "time_min"); err != nil {
		return nil, fmt.Errorf("calendar_events_list: %w", err)
	}
	if req.TimeMax, err = timeArg(args, "time_max"); err != nil {
		return nil, fmt.Errorf("calendar_events_list: %w", err)
	}

	list, err := deps.Calendar.ListEvents(ctx, token, req)
	if err != nil {
		deps.Log.Warnw("Tool: calendar_events_list failed", "calendar_id", req.CalendarID, "error", err)
		return nil, fmt.Errorf("calendar_events_list: %w", err)
	}

	events := make([]map[string]interface{}, 0, len(list.Items))
	for i := range list.Items {
		events = append(events, eventResult(&list.Items[i]))
	}

	result := map[string]interface{}{"events": events}
	if list.TimeZone != "" {
		result["time_zone"] = list.TimeZone
	}
	if list.NextPageToken != "" {
		result["next_page_token"] = list.NextPageToken
	}

	deps.Log.Debugw("Tool: calendar_events_list success", "count", len(events))
	return result, nil
}

// timeArg parses an optional RFC3339 timestamp argument.
func timeArg(args map[string]interface{}, key string) (time.Time, error) {
	raw := shared.StringArg(args, key)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("'%s' must be RFC3339 (e.g. 2026-08-30T09:00:00+05:30): %v", key, err)
	}
	return parsed, nil
}

// eventResult flattens an event into the shape relayed to the model.
func eventResult(ev *google.Event) map[string]interface{} {
	result := map[string]interface{}{"id": ev.ID}
	for key, value := range map[string]string{
		"status":      ev.Status,
		"summary":     ev.Summary,
		"description": ev.Description,
		"location":    ev.Location,
		"html_link":   ev.HTMLLink,
	} {
		if value != "" {
			result[key] = value
		}
	}
	if ev.Start != nil {
		result["start"] = eventTime(ev.Start)
	}
	if ev.End != nil {
		result["end"] = eventTime(ev.End)
	}
	if len(ev.Attendees) > 0 {
		attendees := make([]map[string]interface{}, 0, len(ev.Attendees))
		for _, a := range ev.Attendees {
			attendees = append(attendees, map[string]interface{}{
				"email":           a.Email,
				"response_status": a.ResponseStatus,
			})
		}
		result["attendees"] = attendees
	}
	return result
}

func eventTime(dt *google.EventDateTime) string {
	if dt.DateTime != "" {
		return dt.DateTime
	}
	return dt.Date
}
