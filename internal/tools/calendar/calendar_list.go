package calendar

import (
	"context"
	"fmt"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewCalendarListTool returns a tool that lists the user's calendars.
func NewCalendarListTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "calendar_calendar_list_list",
			Description: "List the calendars visible to the signed-in user, with their ids and time zones. Optional 'page_token' continues a previous page.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := calendarList(ctx, deps, args)
			metrics.RecordToolCall("calendar_calendar_list_list", err)
			return result, err
		})
	return t
}

func calendarList(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	if !deps.HasCalendar() {
		return nil, fmt.Errorf("calendar_calendar_list_list: calendar client not configured")
	}

	token, err := deps.Tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("calendar_calendar_list_list: %w", err)
	}

	list, err := deps.Calendar.ListCalendars(ctx, token, shared.StringArg(args, "page_token"))
	if err != nil {
		deps.Log.Warnw("Tool: calendar_calendar_list_list failed", "error", err)
		return nil, fmt.Errorf("calendar_calendar_list_list: %w", err)
	}

	calendars := make([]map[string]interface{}, 0, len(list.Items))
	for _, entry := range list.Items {
		item := map[string]interface{}{
			"id":      entry.ID,
			"summary": entry.Summary,
		}
		if entry.TimeZone != "" {
			item["time_zone"] = entry.TimeZone
		}
		if entry.Primary {
			item["primary"] = true
		}
		calendars = append(calendars, item)
	}

	result := map[string]interface{}{"calendars": calendars}
	if list.NextPageToken != "" {
		result["next_page_token"] = list.NextPageToken
	}

	deps.Log.Debugw("Tool: calendar_calendar_list_list success", "count", len(calendars))
	return result, nil
}
