package controller

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/matt-steen/lifequest/pkg/session"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	titleMax       = 50
	descriptionMax = 500
)

func (c *Controller) switchToTaskForm() {
	c.resetTaskForm()

	c.taskForm.SetFocus(0)

	c.pages.SwitchToPage(pageName(pageTaskForm))

	c.app.SetInputCapture(c.handleFormKeys)
}

func (c *Controller) switchToInfoForm() {
	c.infoForm.SetFocus(0)

	c.pages.SwitchToPage(pageName(pageInfoForm))

	c.app.SetInputCapture(c.handleFormKeys)
}

func (c *Controller) getTaskFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true).SetRows(4, 0)

	c.initTaskForm()

	grid.AddItem(c.getFormHeader("New Task"), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.taskForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getInfoFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true).SetRows(4, 0)

	c.initInfoForm()

	grid.AddItem(c.getFormHeader("New Important Info"), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.infoForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getFormHeader(title string) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	table.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))

	row := 1

	for key, event := range c.formEvents {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)
		table.SetCell(row, 0, tview.NewTableCell(text))
		row++
	}

	return table
}

func (c *Controller) initTaskForm() {
	c.taskForm = tview.NewForm().
		AddInputField("Title", "", titleMax, nil, nil).
		AddInputField("Description", "", descriptionMax, nil, nil).
		AddDropDown("Priority", []string{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}, 1, nil).
		AddInputField("Due date", "", len(dateLayout)+2, nil, nil).
		AddCheckbox("Recurring", false, nil).
		AddDropDown("Repeat", []string{
			model.RecurringDaily, model.RecurringWeekly, model.RecurringMonthly, model.RecurringYearly,
		}, 0, nil).
		AddCheckbox("Add to calendar", false, nil)

	c.taskForm.AddButton("Save", func() {
		input, err := c.readTaskForm()
		if err != nil {
			c.notify(err.Error())

			return
		}

		task, err := c.session.CreateTask(c.ctx, input)
		if err != nil && task == nil {
			// validation failure, stay on the form
			c.notify(err.Error())

			return
		}

		if err != nil {
			log.Warn().Err(err).Msg("error saving the new task")
			c.notify("task kept locally; saving to the sheet failed")
		} else {
			c.notify("task added and synced")
		}

		c.showCategory(task.Category)
	})

	c.taskForm.AddButton("Cancel", func() {
		c.showCategory(c.selectedCategory)
	})
}

// readTaskForm collects the form fields into a TaskInput, parsing the due date.
func (c *Controller) readTaskForm() (session.TaskInput, error) {
	title, _ := c.taskForm.GetFormItemByLabel("Title").(*tview.InputField)
	description, _ := c.taskForm.GetFormItemByLabel("Description").(*tview.InputField)
	priority, _ := c.taskForm.GetFormItemByLabel("Priority").(*tview.DropDown)
	dueField, _ := c.taskForm.GetFormItemByLabel("Due date").(*tview.InputField)
	recurring, _ := c.taskForm.GetFormItemByLabel("Recurring").(*tview.Checkbox)
	repeat, _ := c.taskForm.GetFormItemByLabel("Repeat").(*tview.DropDown)
	toCalendar, _ := c.taskForm.GetFormItemByLabel("Add to calendar").(*tview.Checkbox)

	due, err := time.ParseInLocation(dateLayout, dueField.GetText(), time.Local)
	if err != nil {
		return session.TaskInput{}, fmt.Errorf("due date must look like %s", dateLayout)
	}

	_, priorityText := priority.GetCurrentOption()
	_, repeatText := repeat.GetCurrentOption()

	return session.TaskInput{
		Title:         title.GetText(),
		Description:   description.GetText(),
		Priority:      priorityText,
		DueDate:       due,
		IsRecurring:   recurring.IsChecked(),
		RecurringType: repeatText,
		AddToCalendar: toCalendar.IsChecked(),
	}, nil
}

// resetTaskForm clears the fields and defaults the due date to tomorrow morning.
func (c *Controller) resetTaskForm() {
	title, _ := c.taskForm.GetFormItemByLabel("Title").(*tview.InputField)
	description, _ := c.taskForm.GetFormItemByLabel("Description").(*tview.InputField)
	dueField, _ := c.taskForm.GetFormItemByLabel("Due date").(*tview.InputField)

	title.SetText("")
	description.SetText("")

	tomorrow := time.Now().AddDate(0, 0, 1)
	nineAM := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, time.Local)
	dueField.SetText(nineAM.Format(dateLayout))
}

func (c *Controller) initInfoForm() {
	c.infoForm = tview.NewForm().
		AddInputField("Title", "", titleMax, nil, nil).
		AddTextArea("Content", "", 0, 5, 0, nil).
		AddInputField("Category", "", titleMax, nil, nil)

	c.infoForm.AddButton("Save", func() {
		title, _ := c.infoForm.GetFormItemByLabel("Title").(*tview.InputField)
		content, _ := c.infoForm.GetFormItemByLabel("Content").(*tview.TextArea)
		category, _ := c.infoForm.GetFormItemByLabel("Category").(*tview.InputField)

		input := session.InfoInput{
			Title:    title.GetText(),
			Content:  content.GetText(),
			Category: category.GetText(),
		}

		entry, err := c.session.CreateInfo(c.ctx, input)
		if err != nil && entry == nil {
			c.notify(err.Error())

			return
		}

		if err != nil {
			log.Warn().Err(err).Msg("error saving the new info entry")
			c.notify("info kept locally; saving to the sheet failed")
		} else {
			c.notify("information added and synced")
		}

		title.SetText("")
		content.SetText("", false)
		category.SetText("")

		c.showInfo()
	})

	c.infoForm.AddButton("Cancel", func() {
		c.showCategory(c.selectedCategory)
	})
}
