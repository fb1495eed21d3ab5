package tools

import (
	"hermes/internal/tools/calendar"
	"hermes/internal/tools/clock"
	"hermes/internal/tools/gmail"
	"hermes/internal/tools/identity"
	"hermes/internal/tools/shared"
)

// RegisterAllTools registers all available tools in the registry.
// Timezone names the IANA zone get_current_date_time reports in.
func RegisterAllTools(registry *Registry, deps shared.Deps, timezone string) {
	log := deps.Log.With("component", "tool_registration")

	// Identity
	registry.Register("oauth2_token_info", identity.NewTokenInfoTool(deps))
	registry.Register("oauth2_user_info", identity.NewUserInfoTool(deps))
	log.Debug("Registered identity tools")

	// Gmail
	registry.Register("gmail_users_messages_list", gmail.NewMessagesListTool(deps))
	registry.Register("gmail_users_messages_get", gmail.NewMessagesGetTool(deps))
	registry.Register("gmail_users_messages_send", gmail.NewMessagesSendTool(deps))
	registry.Register("gmail_users_get_profile", gmail.NewGetProfileTool(deps))
	registry.Register("create_raw_email_message", gmail.NewRawMessageTool(deps))
	log.Debug("Registered Gmail tools")

	// Calendar
	registry.Register("calendar_events_list", calendar.NewEventsListTool(deps))
	registry.Register("calendar_events_insert", calendar.NewEventsInsertTool(deps))
	registry.Register("calendar_events_get", calendar.NewEventsGetTool(deps))
	registry.Register("calendar_calendar_list_list", calendar.NewCalendarListTool(deps))
	log.Debug("Registered Calendar tools")

	// Clock
	registry.Register("get_current_date_time", clock.NewNowTool(deps, timezone))

	log.Infof("Tool registration complete: %d tools available", len(registry.List()))
}
