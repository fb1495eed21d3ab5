// Package clock exposes the current wall time to agents so that
// relative phrases ("tomorrow at 3pm") resolve against the user's
// configured time zone rather than the model's training cutoff.
package clock

import (
	"fmt"
	"time"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"hermes/internal/metrics"
	"hermes/internal/tools/shared"
)

// NewNowTool returns a tool reporting the current date and time in the
// given IANA time zone.
func NewNowTool(deps shared.Deps, timezone string) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "get_current_date_time",
			Description: "Get the current date, time, time zone and weekday. Call this before interpreting relative dates like 'tomorrow' or 'next Friday'.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			result, err := now(deps, timezone)
			metrics.RecordToolCall("get_current_date_time", err)
			return result, err
		})
	return t
}

func now(deps shared.Deps, timezone string) (map[string]interface{}, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("get_current_date_time: unknown time zone %q: %v", timezone, err)
	}

	current := deps.Clock()().In(loc)
	return map[string]interface{}{
		"date_time": current.Format(time.RFC3339),
		"date":      current.Format("2006-01-02"),
		"time":      current.Format("15:04:05"),
		"weekday":   current.Weekday().String(),
		"time_zone": timezone,
	}, nil
}
