package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/matt-steen/lifequest/pkg/session"
	"github.com/rivo/tview"
)

const dateLayout = "2006-01-02 15:04"

func priorityColor(priority string) tcell.Color {
	switch priority {
	case model.PriorityHigh:
		return tcell.ColorRed
	case model.PriorityMedium:
		return tcell.ColorYellow
	default:
		return tcell.ColorGreen
	}
}

// categoryContent implements tview.TableContent over one category bucket,
// which tview.Table uses to update data.
type categoryContent struct {
	tview.TableContentReadOnly
	session  *session.Session
	category string
	tasks    []*model.Task
}

// refresh re-derives the bucket from the session, highest priority first.
func (cc *categoryContent) refresh() {
	cc.tasks = cc.session.TasksByCategory(cc.category)
}

// GetCell returns the cell at the given position or nil if no cell.
func (cc *categoryContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		headers := []string{" ", "title", "priority", "due", "description"}
		if col >= len(headers) {
			return nil
		}

		expansion := 1
		if col == 4 {
			expansion = descTitleRatio
		}

		return tview.NewTableCell(headers[col]).SetExpansion(expansion).
			SetTextColor(tcell.ColorYellow).SetSelectable(false)
	}

	if row-1 >= len(cc.tasks) {
		return nil
	}

	task := cc.tasks[row-1]

	switch col {
	case 0:
		mark := " "
		if task.IsCompleted {
			mark = "x"
		}

		return tview.NewTableCell(mark).SetTextColor(tcell.ColorGreen).SetReference(task)
	case 1:
		return tview.NewTableCell(task.Title).SetExpansion(1)
	case 2:
		return tview.NewTableCell(task.Priority).SetTextColor(priorityColor(task.Priority)).SetExpansion(1)
	case 3:
		due := task.DueDate.Format(dateLayout)
		if task.IsRecurring {
			due += " (" + task.RecurringType + ")"
		}

		return tview.NewTableCell(due).SetExpansion(1)
	case 4:
		return tview.NewTableCell(task.Description).SetExpansion(descTitleRatio)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (cc *categoryContent) GetRowCount() int {
	return len(cc.tasks) + 1
}

// GetColumnCount returns the number of columns in the table.
func (cc *categoryContent) GetColumnCount() int {
	return 5
}

// infoContent implements tview.TableContent over the important info entries.
type infoContent struct {
	tview.TableContentReadOnly
	session *session.Session
	info    []*model.ImportantInfo
}

func (ic *infoContent) refresh() {
	ic.info = ic.session.Info
}

// GetCell returns the cell at the given position or nil if no cell.
func (ic *infoContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		headers := []string{"title", "category", "content"}
		if col >= len(headers) {
			return nil
		}

		expansion := 1
		if col == 2 {
			expansion = descTitleRatio
		}

		return tview.NewTableCell(headers[col]).SetExpansion(expansion).
			SetTextColor(tcell.ColorYellow).SetSelectable(false)
	}

	if row-1 >= len(ic.info) {
		return nil
	}

	entry := ic.info[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(entry.Title).SetExpansion(1).SetReference(entry)
	case 1:
		return tview.NewTableCell(entry.Category).SetTextColor(tcell.ColorGreen).SetExpansion(1)
	case 2:
		return tview.NewTableCell(entry.Content).SetExpansion(descTitleRatio)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (ic *infoContent) GetRowCount() int {
	return len(ic.info) + 1
}

// GetColumnCount returns the number of columns in the table.
func (ic *infoContent) GetColumnCount() int {
	return 3
}
