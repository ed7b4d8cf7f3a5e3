package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matt-steen/lifequest/pkg/calendar"
	"github.com/matt-steen/lifequest/pkg/gamify"
	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/matt-steen/lifequest/pkg/rowstore"
	"github.com/rs/zerolog/log"
)

// TaskInput is what the form collects for a new task.
type TaskInput struct {
	Title         string
	Description   string
	Priority      string
	DueDate       time.Time
	IsRecurring   bool
	RecurringType string
	AddToCalendar bool
}

func (in *TaskInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}

	if !model.ValidPriority(in.Priority) {
		return ErrInvalidPriority
	}

	if in.DueDate.IsZero() {
		return ErrDueDateRequired
	}

	if in.IsRecurring && !model.ValidRecurringType(in.RecurringType) {
		return ErrRecurringTypeRequired
	}

	return nil
}

// CreateTask builds a task from the input, fixes its category from the due
// date, and appends it locally and remotely. A remote failure does not roll
// the task back: it stays in memory and in the cached snapshot, and the error
// comes back for a generic notification.
func (s *Session) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	task := &model.Task{
		ID:          s.nextID(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Category:    model.Categorize(input.DueDate, now),
		IsRecurring: input.IsRecurring,
		CreatedDate: now,
	}

	if input.IsRecurring {
		task.RecurringType = input.RecurringType
	}

	// a calendar failure degrades to no link; the task is still persisted
	if input.AddToCalendar && s.bridge != nil {
		eventID, err := s.bridge.CreateEvent(ctx, calendar.EventForTask(task))
		if err != nil {
			log.Warn().Err(err).Str("id", task.ID).Msg("error adding task to calendar")
		} else {
			task.CalendarEventID = eventID
		}
	}

	s.Tasks = append(s.Tasks, task)

	if _, err := s.store.AppendRow(ctx, rowstore.Tasks, task.Row()); err != nil {
		s.saveSnapshot(ctx)

		return task, fmt.Errorf("error saving task '%s': %w", task.Title, err)
	}

	s.saveSnapshot(ctx)

	return task, nil
}

// ToggleTask flips the completion flag of the task with the given id.
// Completing a task awards points and persists the stats rows; un-completing
// flips the flag only and never claws anything back.
func (s *Session) ToggleTask(ctx context.Context, id string) (Outcome, error) {
	task := s.findTask(id)
	if task == nil {
		return OutcomeNotFound, ErrTaskNotFound
	}

	task.IsCompleted = !task.IsCompleted

	if task.IsCompleted {
		s.Stats = gamify.ApplyCompletion(s.Stats, task.Priority, time.Now())

		if err := s.saveStats(ctx); err != nil {
			log.Warn().Err(err).Msg("error persisting stats after completion")
		}
	}

	outcome, err := s.updateTaskRow(ctx, task)

	s.saveSnapshot(ctx)

	return outcome, err
}

// UpdateTask overwrites the remote row backing the task with its current
// in-memory state.
func (s *Session) UpdateTask(ctx context.Context, id string) (Outcome, error) {
	task := s.findTask(id)
	if task == nil {
		return OutcomeNotFound, ErrTaskNotFound
	}

	outcome, err := s.updateTaskRow(ctx, task)

	s.saveSnapshot(ctx)

	return outcome, err
}

// DeleteTask removes the task locally and, when its row can be found, remotely.
// A missing remote row is a local-only no-op, not an error.
func (s *Session) DeleteTask(ctx context.Context, id string) (Outcome, error) {
	if s.findTask(id) == nil {
		return OutcomeNotFound, ErrTaskNotFound
	}

	kept := []*model.Task{}

	for _, task := range s.Tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}

	s.Tasks = kept

	rowIndex, err := s.findRow(ctx, rowstore.Tasks, id)
	if err != nil {
		s.saveSnapshot(ctx)

		return OutcomeNotFound, err
	}

	if rowIndex == 0 {
		log.Warn().Str("id", id).Msg("task row not found in remote store; nothing to delete")
		s.saveSnapshot(ctx)

		return OutcomeNotFound, nil
	}

	if err := s.store.DeleteRow(ctx, rowstore.Tasks, rowIndex); err != nil {
		s.saveSnapshot(ctx)

		return OutcomeNotFound, err
	}

	s.saveSnapshot(ctx)

	return OutcomeDeleted, nil
}

// SyncCalendar creates a calendar event for every task that is incomplete and
// not yet linked, writing each new link back to the remote store. It returns
// how many tasks were linked; individual calendar failures are skipped.
func (s *Session) SyncCalendar(ctx context.Context) (int, error) {
	if s.bridge == nil {
		return 0, nil
	}

	synced := 0

	for _, task := range s.Tasks {
		if task.IsCompleted || task.CalendarEventID != "" {
			continue
		}

		eventID, err := s.bridge.CreateEvent(ctx, calendar.EventForTask(task))
		if err != nil {
			log.Warn().Err(err).Str("id", task.ID).Msg("error syncing task to calendar")

			continue
		}

		task.CalendarEventID = eventID

		if _, err := s.updateTaskRow(ctx, task); err != nil {
			s.saveSnapshot(ctx)

			return synced, err
		}

		synced++
	}

	s.saveSnapshot(ctx)

	return synced, nil
}

// updateTaskRow locates the task's row by id and overwrites its full column
// range. A vanished row is logged and reported as NotFound, which callers
// treat the same as success.
func (s *Session) updateTaskRow(ctx context.Context, task *model.Task) (Outcome, error) {
	rowIndex, err := s.findRow(ctx, rowstore.Tasks, task.ID)
	if err != nil {
		return OutcomeNotFound, err
	}

	if rowIndex == 0 {
		log.Warn().Str("id", task.ID).Msg("task row not found in remote store; update skipped")

		return OutcomeNotFound, nil
	}

	if err := s.store.WriteAt(ctx, rowstore.Tasks, rowIndex, [][]string{task.Row()}); err != nil {
		return OutcomeNotFound, fmt.Errorf("error updating task '%s': %w", task.Title, err)
	}

	return OutcomeUpdated, nil
}

func (s *Session) findTask(id string) *model.Task {
	for _, task := range s.Tasks {
		if task.ID == id {
			return task
		}
	}

	return nil
}
