package shared

import (
	"time"

	"hermes/internal/adapters/google"
	"hermes/internal/auth"
	"hermes/pkg/logger"
)

// Deps bundles dependencies required by concrete tool implementations.
// Tools receive tokens per call from the TokenProvider; no credential
// state lives in the tools themselves.
type Deps struct {
	Identity *google.IdentityClient
	Gmail    *google.GmailClient
	Calendar *google.CalendarClient
	Tokens   auth.TokenProvider
	Now      func() time.Time
	Log      *logger.Logger
}

// Clock returns the configured time source, defaulting to time.Now.
func (d Deps) Clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}

// HasIdentity reports whether the identity client is wired.
func (d Deps) HasIdentity() bool {
	return d.Identity != nil && d.Tokens != nil
}

// HasGmail reports whether the Gmail client is wired.
func (d Deps) HasGmail() bool {
	return d.Gmail != nil && d.Tokens != nil
}

// HasCalendar reports whether the Calendar client is wired.
func (d Deps) HasCalendar() bool {
	return d.Calendar != nil && d.Tokens != nil
}
