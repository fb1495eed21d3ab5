package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/pkg/errors"
)

func newTestCalendar(t *testing.T, handler http.HandlerFunc) *CalendarClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCalendarClient(NewClient(Config{BaseURL: srv.URL}))
}

func TestListEventsDefaultsToPrimary(t *testing.T) {
	timeMin := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	client := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/v3/calendars/primary/events", r.URL.Path)
		assert.Equal(t, timeMin.Format(time.RFC3339), r.URL.Query().Get("timeMin"))
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		assert.Equal(t, "startTime", r.URL.Query().Get("orderBy"))
		w.Write([]byte(`{"summary":"user@example.com","timeZone":"Asia/Colombo","items":[{"id":"e1","summary":"Standup","start":{"dateTime":"2026-08-31T09:00:00+05:30"},"end":{"dateTime":"2026-08-31T09:15:00+05:30"}}]}`))
	})

	list, err := client.ListEvents(context.Background(), "tok", ListEventsRequest{
		TimeMin:      timeMin,
		SingleEvents: true,
		OrderBy:      "startTime",
	})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Standup", list.Items[0].Summary)
	assert.Equal(t, "Asia/Colombo", list.TimeZone)
}

func TestListEventsCustomCalendarIsEscaped(t *testing.T) {
	client := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/v3/calendars/team%40group.calendar.google.com/events", r.URL.EscapedPath())
		w.Write([]byte(`{"items":[]}`))
	})

	_, err := client.ListEvents(context.Background(), "tok", ListEventsRequest{CalendarID: "team@group.calendar.google.com"})
	require.NoError(t, err)
}

func TestInsertEvent(t *testing.T) {
	client := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendar/v3/calendars/primary/events", r.URL.Path)

		var event Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		assert.Equal(t, "Project review", event.Summary)
		require.NotNil(t, event.Start)
		assert.Equal(t, "2026-09-01T14:00:00+05:30", event.Start.DateTime)
		require.Len(t, event.Attendees, 1)
		assert.Equal(t, "bob@example.com", event.Attendees[0].Email)

		event.ID = "created1"
		event.Status = "confirmed"
		json.NewEncoder(w).Encode(event)
	})

	created, err := client.InsertEvent(context.Background(), "tok", "", Event{
		Summary:   "Project review",
		Start:     &EventDateTime{DateTime: "2026-09-01T14:00:00+05:30", TimeZone: "Asia/Colombo"},
		End:       &EventDateTime{DateTime: "2026-09-01T15:00:00+05:30", TimeZone: "Asia/Colombo"},
		Attendees: []EventAttendee{{Email: "bob@example.com"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "created1", created.ID)
	assert.Equal(t, "confirmed", created.Status)
}

func TestInsertEventRequiresStartAndEnd(t *testing.T) {
	client := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.InsertEvent(context.Background(), "tok", "", Event{Summary: "no times"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestGetEvent(t *testing.T) {
	client := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/v3/calendars/primary/events/e42", r.URL.Path)
		w.Write([]byte(`{"id":"e42","summary":"Dentist","start":{"date":"2026-09-02"},"end":{"date":"2026-09-03"}}`))
	})

	event, err := client.GetEvent(context.Background(), "tok", "", "e42")
	require.NoError(t, err)
	assert.Equal(t, "Dentist", event.Summary)
	assert.Equal(t, "2026-09-02", event.Start.Date)
}

func TestListCalendars(t *testing.T) {
	client := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/v3/users/me/calendarList", r.URL.Path)
		w.Write([]byte(`{"items":[{"id":"primary","summary":"user@example.com","primary":true,"timeZone":"Asia/Colombo"},{"id":"team@group.calendar.google.com","summary":"Team"}]}`))
	})

	list, err := client.ListCalendars(context.Background(), "tok", "")
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.True(t, list.Items[0].Primary)
}

func TestListEventsUnauthorized(t *testing.T) {
	client := newTestCalendar(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials","status":"UNAUTHENTICATED"}}`))
	})

	_, err := client.ListEvents(context.Background(), "stale", ListEventsRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAuth))
}
