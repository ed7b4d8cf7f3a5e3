package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// GoogleBridge implements Bridge against the Google Calendar API.
type GoogleBridge struct {
	srv        *gcal.Service
	calendarID string
	timeZone   string
}

// NewGoogleBridge creates a bridge inserting into the given calendar
// ("primary" for the user's default) with times rendered in the given IANA
// time zone.
func NewGoogleBridge(srv *gcal.Service, calendarID, timeZone string) *GoogleBridge {
	return &GoogleBridge{srv: srv, calendarID: calendarID, timeZone: timeZone}
}

// CreateEvent inserts the event and returns its id.
func (b *GoogleBridge) CreateEvent(ctx context.Context, event Event) (string, error) {
	request := &gcal.Event{
		Summary:     event.Title,
		Description: event.Description,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: b.timeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: b.timeZone,
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "popup", Minutes: ReminderEarlyMinutes},
				{Method: "popup", Minutes: ReminderLateMinutes},
			},
			// UseDefault must reach the wire even though it's the zero value
			ForceSendFields: []string{"UseDefault"},
		},
	}

	if event.Recurrence != "" {
		request.Recurrence = []string{event.Recurrence}
	}

	created, err := b.srv.Events.Insert(b.calendarID, request).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("error creating calendar event for '%s': %w", event.Title, err)
	}

	return created.Id, nil
}
