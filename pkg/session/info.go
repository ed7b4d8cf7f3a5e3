package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/matt-steen/lifequest/pkg/rowstore"
	"github.com/rs/zerolog/log"
)

// InfoInput is what the form collects for a new info entry.
type InfoInput struct {
	Title    string
	Content  string
	Category string
}

// CreateInfo appends an info entry locally and remotely, with the same
// no-rollback failure semantics as CreateTask.
func (s *Session) CreateInfo(ctx context.Context, input InfoInput) (*model.ImportantInfo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	entry := &model.ImportantInfo{
		ID:          s.nextID(),
		Title:       input.Title,
		Content:     input.Content,
		Category:    input.Category,
		CreatedDate: time.Now(),
	}

	s.Info = append(s.Info, entry)

	if _, err := s.store.AppendRow(ctx, rowstore.ImportantInfo, entry.Row()); err != nil {
		s.saveSnapshot(ctx)

		return entry, fmt.Errorf("error saving info '%s': %w", entry.Title, err)
	}

	s.saveSnapshot(ctx)

	return entry, nil
}

// DeleteInfo removes the entry locally and, when its row can be found, remotely.
func (s *Session) DeleteInfo(ctx context.Context, id string) (Outcome, error) {
	found := false

	kept := []*model.ImportantInfo{}

	for _, entry := range s.Info {
		if entry.ID == id {
			found = true

			continue
		}

		kept = append(kept, entry)
	}

	if !found {
		return OutcomeNotFound, ErrInfoNotFound
	}

	s.Info = kept

	rowIndex, err := s.findRow(ctx, rowstore.ImportantInfo, id)
	if err != nil {
		s.saveSnapshot(ctx)

		return OutcomeNotFound, err
	}

	if rowIndex == 0 {
		log.Warn().Str("id", id).Msg("info row not found in remote store; nothing to delete")
		s.saveSnapshot(ctx)

		return OutcomeNotFound, nil
	}

	if err := s.store.DeleteRow(ctx, rowstore.ImportantInfo, rowIndex); err != nil {
		s.saveSnapshot(ctx)

		return OutcomeNotFound, err
	}

	s.saveSnapshot(ctx)

	return OutcomeDeleted, nil
}
