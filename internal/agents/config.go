package agents

// AgentType identifies one of the assistant's agents.
type AgentType string

const (
	AgentGmail    AgentType = "gmail"
	AgentCalendar AgentType = "calendar"
	AgentRoot     AgentType = "root"
)

// AgentConfig captures the static settings of an agent instance.
type AgentConfig struct {
	Type                AgentType
	Name                string
	Description         string
	Tools               []string
	InstructionTemplate string
}

// DefaultAgentConfigs defines the assistant's agent tree: two delegate
// agents owning the Gmail and Calendar tool sets, and a root agent that
// routes between them. Agent names are part of the delegation contract
// referenced in the instruction templates.
var DefaultAgentConfigs = map[AgentType]AgentConfig{
	AgentGmail: {
		Type:        AgentGmail,
		Name:        "google_gmail_agent",
		Description: "Handles Gmail tasks like reading emails, sending emails, and checking user profiles.",
		Tools: []string{
			"gmail_users_messages_list",
			"gmail_users_messages_get",
			"gmail_users_messages_send",
			"gmail_users_get_profile",
			"create_raw_email_message",
			"get_current_date_time",
		},
		InstructionTemplate: "agents/gmail",
	},
	AgentCalendar: {
		Type:        AgentCalendar,
		Name:        "google_calendar_agent",
		Description: "Handles Calendar tasks like listing events, creating events, and getting event details.",
		Tools: []string{
			"calendar_events_list",
			"calendar_events_insert",
			"calendar_events_get",
			"calendar_calendar_list_list",
			"get_current_date_time",
		},
		InstructionTemplate: "agents/calendar",
	},
	AgentRoot: {
		Type:        AgentRoot,
		Name:        "task_root_agent",
		Description: "Acts as the main interface, routing tasks to Gmail or Calendar agents or answering general questions.",
		Tools: []string{
			"oauth2_token_info",
			"oauth2_user_info",
			"get_current_date_time",
		},
		InstructionTemplate: "agents/root",
	},
}
