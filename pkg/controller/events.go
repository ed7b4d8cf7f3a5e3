package controller

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/lifequest/pkg/gamify"
	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/matt-steen/lifequest/pkg/session"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.events = map[tcell.Key]KeyEvent{}
	c.formEvents = map[tcell.Key]KeyEvent{}

	c.initShowEvents(c.events)
	c.initActionEvents(c.events)
	c.initExitEvent(c.events)

	c.formEvents[tcell.KeyEscape] = KeyEvent{
		Description: "Back",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showCategory(c.selectedCategory)

			return nil
		},
	}
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.app.Stop()

		log.Info().Msg("terminating application")

		os.Exit(0)

		return key
	}
}

func (c *Controller) initExitEvent(events map[tcell.Key]KeyEvent) {
	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) getShowAction(category string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.showCategory(category)

		return key
	}
}

func (c *Controller) initShowEvents(events map[tcell.Key]KeyEvent) {
	keys := []tcell.Key{Key1, Key2, Key3, Key4, Key5}

	for i, category := range model.Categories() {
		events[keys[i]] = KeyEvent{
			Description: fmt.Sprintf("Show %s", category),
			Action:      c.getShowAction(category),
		}
	}

	events[KeyI] = KeyEvent{
		Description: "Show Important Info",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showInfo()

			return key
		},
	}

	events[KeyA] = KeyEvent{
		Description: "Show Achievements",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.pages.SwitchToPage(pageName(pageAchievements))

			return key
		},
	}
}

func (c *Controller) initActionEvents(events map[tcell.Key]KeyEvent) {
	events[KeyN] = KeyEvent{
		Description: "New Task",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToTaskForm()

			return nil
		},
	}

	events[KeyShiftN] = KeyEvent{
		Description: "New Info",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToInfoForm()

			return nil
		},
	}

	events[KeyC] = KeyEvent{
		Description: "Toggle Complete",
		Action:      c.getToggleAction(),
	}

	events[KeyD] = KeyEvent{
		Description: "Delete",
		Action:      c.getDeleteAction(),
	}

	events[KeyS] = KeyEvent{
		Description: "Sync Calendar",
		Action:      c.getSyncAction(),
	}
}

func (c *Controller) getToggleAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selectedTask == nil {
			return key
		}

		task := c.selectedTask

		outcome, err := c.session.ToggleTask(c.ctx, task.ID)
		if err != nil {
			log.Warn().Err(err).Str("id", task.ID).Msg("error toggling task")
			c.notify("failed to sync the change; it is kept locally")
		} else if task.IsCompleted {
			c.notify(fmt.Sprintf("+%d points! Task completed!", gamify.Points(task.Priority)))
		} else {
			c.notify("task reopened")
		}

		log.Debug().Str("id", task.ID).Stringer("outcome", outcome).Msg("toggled task")

		c.refresh()

		return nil
	}
}

func (c *Controller) getDeleteAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		var err error

		switch {
		case c.onInfoPage() && c.selectedInfo != nil:
			_, err = c.session.DeleteInfo(c.ctx, c.selectedInfo.ID)
			c.selectedInfo = nil
		case c.selectedTask != nil:
			_, err = c.session.DeleteTask(c.ctx, c.selectedTask.ID)
			c.selectedTask = nil
		default:
			return key
		}

		if err != nil && !session.IsNotFound(err) {
			log.Warn().Err(err).Msg("error deleting entry")
			c.notify("failed to sync the delete; it is kept locally")
		} else {
			c.notify("deleted")
		}

		c.refresh()

		return nil
	}
}

func (c *Controller) getSyncAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		synced, err := c.session.SyncCalendar(c.ctx)
		if err != nil && !errors.Is(err, session.ErrTaskNotFound) {
			log.Warn().Err(err).Msg("error syncing tasks to calendar")
			c.notify(fmt.Sprintf("calendar sync stopped after %d tasks", synced))
		} else {
			c.notify(fmt.Sprintf("%d tasks synced to calendar", synced))
		}

		c.refresh()

		return nil
	}
}

func (c *Controller) onInfoPage() bool {
	name, _ := c.pages.GetFrontPage()

	return name == pageName(pageInfo)
}
