// Package calendar mirrors tasks into an external calendar. The core only ever
// needs one capability from it: create an event, get back an opaque id.
package calendar

import (
	"context"
	"time"

	"github.com/matt-steen/lifequest/pkg/model"
)

// Reminder offsets applied to every event, in minutes before the start time.
const (
	ReminderEarlyMinutes = 60
	ReminderLateMinutes  = 10
)

// EventDuration is the slot blocked out for a task on the calendar.
const EventDuration = time.Hour

// Event is the request shape passed to a Bridge.
type Event struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	// Recurrence is a single repeat-rule token, empty for one-off events.
	Recurrence string
}

// Bridge creates calendar entries and returns an opaque reference id.
type Bridge interface {
	CreateEvent(ctx context.Context, event Event) (string, error)
}

// RecurrenceRule maps a task's recurring type to its repeat-rule token, or ""
// for types without one.
func RecurrenceRule(recurringType string) string {
	switch recurringType {
	case model.RecurringDaily:
		return "RRULE:FREQ=DAILY"
	case model.RecurringWeekly:
		return "RRULE:FREQ=WEEKLY"
	case model.RecurringMonthly:
		return "RRULE:FREQ=MONTHLY"
	case model.RecurringYearly:
		return "RRULE:FREQ=YEARLY"
	default:
		return ""
	}
}

// EventForTask builds the event request for a task: a one-hour slot starting at
// the due date, repeating per the task's recurring type.
func EventForTask(task *model.Task) Event {
	event := Event{
		Title:       task.Title,
		Description: task.Description,
		Start:       task.DueDate,
		End:         task.DueDate.Add(EventDuration),
	}

	if task.IsRecurring {
		event.Recurrence = RecurrenceRule(task.RecurringType)
	}

	return event
}
