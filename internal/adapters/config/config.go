package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"hermes/pkg/errors"
)

type Config struct {
	App           AppConfig
	Google        GoogleConfig
	AI            AIConfig
	Server        ServerConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"hermes"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

// GoogleConfig carries OAuth client credentials and API client settings.
// CLIENT_ID/CLIENT_SECRET are only required when the interactive consent
// flow is used; a pre-minted GOOGLE_ACCESS_TOKEN bypasses it.
type GoogleConfig struct {
	ClientID     string        `envconfig:"CLIENT_ID"`
	ClientSecret string        `envconfig:"CLIENT_SECRET"`
	RedirectURI  string        `envconfig:"REDIRECT_URI" default:"http://localhost:8000/callback"`
	Scopes       []string      `envconfig:"GOOGLE_SCOPES"`
	AccessToken  string        `envconfig:"GOOGLE_ACCESS_TOKEN"`
	APIBaseURL   string        `envconfig:"GOOGLE_API_BASE_URL" default:"https://www.googleapis.com"`
	HTTPTimeout  time.Duration `envconfig:"GOOGLE_HTTP_TIMEOUT" default:"10s"`

	// Requests per minute against googleapis.com; 0 disables limiting
	RequestsPerMinute int `envconfig:"GOOGLE_REQUESTS_PER_MINUTE" default:"0"`
}

// DefaultScopes covers Gmail read/send, user profile, and Calendar access.
var DefaultScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/calendar.calendarlist",
}

// ResolvedScopes returns configured scopes or the default set.
func (c GoogleConfig) ResolvedScopes() []string {
	if len(c.Scopes) > 0 {
		return c.Scopes
	}
	return DefaultScopes
}

// HasOAuthClient reports whether consent-flow credentials are configured.
func (c GoogleConfig) HasOAuthClient() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type AIConfig struct {
	RootModel string `envconfig:"ROOT_MODEL_NAME" default:"gemini-2.5-pro"`
	ToolModel string `envconfig:"TOOL_MODEL_NAME" default:"gemini-2.5-flash"`
	Timezone  string `envconfig:"AGENT_TIMEZONE" default:"Asia/Colombo"`
}

type ServerConfig struct {
	Enabled bool   `envconfig:"CALLBACK_SERVER_ENABLED" default:"true"`
	Addr    string `envconfig:"CALLBACK_SERVER_ADDR" default:":8000"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
