package callbacks

import (
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/genai"

	"hermes/pkg/logger"
)

// timeStateKey is where the current timestamp lives in session state.
// Instruction templates reference it so the model sees a fresh clock on
// every turn rather than its training cutoff.
const timeStateKey = "_time"

// TimestampBeforeCallback stamps the current date/time into session
// state before each agent run. The timestamp is rendered in the given
// IANA time zone; a bad zone name falls back to UTC.
func TimestampBeforeCallback(now func() time.Time, timezone string) agent.BeforeAgentCallback {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Get().Warnf("Unknown time zone %q, falling back to UTC", timezone)
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}

	return func(ctx agent.CallbackContext) (*genai.Content, error) {
		formatted := now().In(loc).Format("2006-01-02 15:04:05 MST")
		if err := ctx.State().Set(timeStateKey, formatted); err != nil {
			logger.Get().Warnf("Failed to stamp time into state: %v", err)
		}

		logger.Get().Debugw("Agent turn starting",
			"agent", ctx.AgentName(),
			"user", ctx.UserID(),
			"time", formatted,
		)
		return nil, nil
	}
}
