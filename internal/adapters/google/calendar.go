package google

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"hermes/pkg/errors"
)

// CalendarClient covers the Calendar endpoints the assistant's agents
// use. CalendarID defaults to `primary` wherever it is omitted.
type CalendarClient struct {
	*Client
}

// NewCalendarClient builds a Calendar client on the shared transport.
func NewCalendarClient(c *Client) *CalendarClient {
	return &CalendarClient{Client: c}
}

// PrimaryCalendarID addresses the user's main calendar.
const PrimaryCalendarID = "primary"

// EventDateTime is either a timed instant (DateTime) or an all-day date.
type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// EventAttendee is a guest on an event.
type EventAttendee struct {
	Email          string `json:"email"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

// Event is a Calendar event record.
type Event struct {
	ID          string          `json:"id,omitempty"`
	Status      string          `json:"status,omitempty"`
	HTMLLink    string          `json:"htmlLink,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	Start       *EventDateTime  `json:"start,omitempty"`
	End         *EventDateTime  `json:"end,omitempty"`
	Attendees   []EventAttendee `json:"attendees,omitempty"`
	Creator     *EventPerson    `json:"creator,omitempty"`
	Organizer   *EventPerson    `json:"organizer,omitempty"`
}

// EventPerson identifies an event's creator or organizer.
type EventPerson struct {
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Self        bool   `json:"self,omitempty"`
}

// EventList is one page of GET .../events.
type EventList struct {
	Summary       string  `json:"summary,omitempty"`
	TimeZone      string  `json:"timeZone,omitempty"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
	Items         []Event `json:"items"`
}

// CalendarListEntry is one calendar visible to the user.
type CalendarListEntry struct {
	ID       string `json:"id"`
	Summary  string `json:"summary,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
	Primary  bool   `json:"primary,omitempty"`
}

// CalendarList is one page of GET /calendar/v3/users/me/calendarList.
type CalendarList struct {
	NextPageToken string              `json:"nextPageToken,omitempty"`
	Items         []CalendarListEntry `json:"items"`
}

// ListEventsRequest narrows an event listing.
type ListEventsRequest struct {
	CalendarID   string
	TimeMin      time.Time
	TimeMax      time.Time
	Query        string
	MaxResults   int
	SingleEvents bool
	OrderBy      string
	PageToken    string
}

// ListEvents fetches one page of events from the given calendar.
func (c *CalendarClient) ListEvents(ctx context.Context, bearerToken string, req ListEventsRequest) (EventList, error) {
	if bearerToken == "" {
		return EventList{}, errors.Wrap(errors.ErrInvalidArgument, "bearer token is required")
	}

	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = PrimaryCalendarID
	}

	params := url.Values{}
	if !req.TimeMin.IsZero() {
		params.Set("timeMin", req.TimeMin.Format(time.RFC3339))
	}
	if !req.TimeMax.IsZero() {
		params.Set("timeMax", req.TimeMax.Format(time.RFC3339))
	}
	if req.Query != "" {
		params.Set("q", req.Query)
	}
	if req.MaxResults > 0 {
		params.Set("maxResults", strconv.Itoa(req.MaxResults))
	}
	if req.SingleEvents {
		params.Set("singleEvents", "true")
	}
	if req.OrderBy != "" {
		params.Set("orderBy", req.OrderBy)
	}
	if req.PageToken != "" {
		params.Set("pageToken", req.PageToken)
	}

	var list EventList
	path := "/calendar/v3/calendars/" + url.PathEscape(calendarID) + "/events"
	if err := c.get(ctx, "calendar", "events_list", path, params, bearerToken, &list); err != nil {
		return EventList{}, err
	}
	return list, nil
}

// InsertEvent creates an event on the given calendar.
func (c *CalendarClient) InsertEvent(ctx context.Context, bearerToken, calendarID string, event Event) (Event, error) {
	if bearerToken == "" {
		return Event{}, errors.Wrap(errors.ErrInvalidArgument, "bearer token is required")
	}
	if event.Start == nil || event.End == nil {
		return Event{}, errors.Wrap(errors.ErrInvalidArgument, "event start and end are required")
	}
	if calendarID == "" {
		calendarID = PrimaryCalendarID
	}

	var created Event
	path := "/calendar/v3/calendars/" + url.PathEscape(calendarID) + "/events"
	if err := c.post(ctx, "calendar", "events_insert", path, nil, bearerToken, event, &created); err != nil {
		return Event{}, err
	}
	return created, nil
}

// GetEvent fetches a single event by id.
func (c *CalendarClient) GetEvent(ctx context.Context, bearerToken, calendarID, eventID string) (Event, error) {
	if bearerToken == "" {
		return Event{}, errors.Wrap(errors.ErrInvalidArgument, "bearer token is required")
	}
	if eventID == "" {
		return Event{}, errors.Wrap(errors.ErrInvalidArgument, "event id is required")
	}
	if calendarID == "" {
		calendarID = PrimaryCalendarID
	}

	var event Event
	path := "/calendar/v3/calendars/" + url.PathEscape(calendarID) + "/events/" + url.PathEscape(eventID)
	if err := c.get(ctx, "calendar", "events_get", path, nil, bearerToken, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// ListCalendars fetches one page of the user's calendar list.
func (c *CalendarClient) ListCalendars(ctx context.Context, bearerToken, pageToken string) (CalendarList, error) {
	if bearerToken == "" {
		return CalendarList{}, errors.Wrap(errors.ErrInvalidArgument, "bearer token is required")
	}

	params := url.Values{}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var list CalendarList
	if err := c.get(ctx, "calendar", "calendar_list", "/calendar/v3/users/me/calendarList", params, bearerToken, &list); err != nil {
		return CalendarList{}, err
	}
	return list, nil
}
