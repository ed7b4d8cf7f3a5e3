// Package controller mediates between the session and the terminal view.
package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/matt-steen/lifequest/pkg/session"
	"github.com/rivo/tview"
)

const descTitleRatio = 2

// page names that are not category buckets.
const (
	pageInfo         = "info"
	pageAchievements = "achievements"
	pageTaskForm     = "taskForm"
	pageInfoForm     = "infoForm"
)

// Controller mediates between the session and the view.
type Controller struct {
	ctx     context.Context
	session *session.Session
	app     *tview.Application
	pages   *tview.Pages

	categoryTables   map[string]*tview.Table
	categoryContents map[string]*categoryContent
	infoTable        *tview.Table
	infoContent      *infoContent
	statusBars       map[string]*tview.TextView
	statsCells       map[string]*tview.TableCell

	taskForm *tview.Form
	infoForm *tview.Form

	selectedCategory string
	selectedTask     *model.Task
	selectedInfo     *model.ImportantInfo

	events     map[tcell.Key]KeyEvent
	formEvents map[tcell.Key]KeyEvent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, sess *session.Session) (*Controller, error) {
	c := Controller{
		ctx:              ctx,
		session:          sess,
		app:              tview.NewApplication(),
		pages:            tview.NewPages(),
		categoryTables:   map[string]*tview.Table{},
		categoryContents: map[string]*categoryContent{},
		statusBars:       map[string]*tview.TextView{},
		statsCells:       map[string]*tview.TableCell{},
		selectedCategory: model.CategoryToday,
	}

	c.initEvents()

	return &c, nil
}

// Go builds the pages and starts the app on the Today bucket.
func (c *Controller) Go() {
	for _, category := range model.Categories() {
		c.pages.AddPage(pageName(category), c.getCategoryGrid(category), true, false)
	}

	c.pages.AddPage(pageName(pageInfo), c.getInfoGrid(), true, false)
	c.pages.AddPage(pageName(pageAchievements), c.getAchievementsGrid(), true, false)
	c.pages.AddPage(pageName(pageTaskForm), c.getTaskFormGrid(), true, false)
	c.pages.AddPage(pageName(pageInfoForm), c.getInfoFormGrid(), true, false)

	if c.session.Offline {
		c.notify("loaded from offline cache; remote changes will not be visible")
	}

	c.showCategory(model.CategoryToday)

	if err := c.app.SetRoot(c.pages, true).SetFocus(c.pages).Run(); err != nil {
		panic(err)
	}
}

func pageName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if k, ok := c.events[key]; ok {
		return k.Action(evt)
	}

	return evt
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if k, ok := c.formEvents[key]; ok {
		return k.Action(evt)
	}

	return evt
}

// refresh re-derives every view from the session collections.
func (c *Controller) refresh() {
	for _, category := range model.Categories() {
		c.categoryContents[category].refresh()
	}

	if c.infoContent != nil {
		c.infoContent.refresh()
	}

	c.updateHeaders()
}

// notify shows a one-line message on every status bar; the closest thing a
// full-screen terminal app has to a toast.
func (c *Controller) notify(message string) {
	for _, bar := range c.statusBars {
		bar.SetText(fmt.Sprintf("[orange]%s", message))
	}
}

// statsLine renders the gamification header.
func (c *Controller) statsLine() string {
	stats := c.session.Stats
	mode := ""

	if c.session.Offline {
		mode = " [red](offline)"
	}

	progressPct := int(c.session.DailyProgress() * 100)

	return fmt.Sprintf(
		"[green]Level %d[white] | %d pts | %d day streak | %d completed | today %d%%%s",
		stats.Level(),
		stats.CurrentPoints,
		stats.CurrentStreak,
		stats.CompletedTasks,
		progressPct,
		mode,
	)
}
