package controller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (c *Controller) getCategoryGrid(category string) *tview.Grid {
	header := c.getPageHeader(category)
	c.categoryTables[category] = c.getCategoryTable(category)

	grid := tview.NewGrid().SetBorders(true).SetRows(6, 0, 1)

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.categoryTables[category], 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.getStatusBar(category), 2, 0, 1, 1, 0, 0, false)

	return grid
}

// getPageHeader returns the header shown above each list: the page name and the
// stats line, followed by 3 columns of keyboard shortcuts. The first column
// holds "Show" shortcuts, the second actions, the third everything else, each
// sorted alphabetically.
func (c *Controller) getPageHeader(name string) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	row := 0
	table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", name)))
	row++

	statsView := tview.NewTableCell(c.statsLine()).SetExpansion(1)
	table.SetCell(row, 0, statsView)
	c.statsCells[name] = statsView
	row++

	shortcuts := map[int][]string{0: {}, 1: {}, 2: {}}

	for key, event := range c.events {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)

		switch {
		case strings.HasPrefix(event.Description, "Show"):
			shortcuts[0] = append(shortcuts[0], text)
		case strings.HasPrefix(event.Description, "New") ||
			strings.HasPrefix(event.Description, "Toggle") ||
			strings.HasPrefix(event.Description, "Delete") ||
			strings.HasPrefix(event.Description, "Sync"):
			shortcuts[1] = append(shortcuts[1], text)
		default:
			shortcuts[2] = append(shortcuts[2], text)
		}
	}

	for col := 0; col < 3; col++ {
		sort.Strings(shortcuts[col])
	}

	base := row

	for row < base+maxLen(shortcuts) {
		for col := 0; col < 3; col++ {
			if row-base < len(shortcuts[col]) {
				table.SetCell(row, col, tview.NewTableCell(shortcuts[col][row-base]).SetExpansion(1))
			}
		}

		row++
	}

	return table
}

func maxLen(shortcuts map[int][]string) int {
	longest := 0

	for _, list := range shortcuts {
		if len(list) > longest {
			longest = len(list)
		}
	}

	return longest
}

func (c *Controller) getStatusBar(name string) *tview.TextView {
	bar := tview.NewTextView().SetDynamicColors(true)
	bar.SetScrollable(false)

	c.statusBars[name] = bar

	return bar
}

func (c *Controller) getCategoryTable(category string) *tview.Table {
	table := tview.NewTable().SetBorders(false)

	content := &categoryContent{session: c.session, category: category}
	content.refresh()

	c.categoryContents[category] = content

	table.SetContent(content)
	table.SetSelectable(true, false)

	table.SetSelectionChangedFunc(func(row, col int) {
		c.setSelectedTask(content, row)
	})

	return table
}

func (c *Controller) setSelectedTask(content *categoryContent, row int) {
	// adjust for the header row
	if idx := row - 1; idx >= 0 && idx < len(content.tasks) {
		c.selectedTask = content.tasks[idx]
	} else {
		c.selectedTask = nil
	}
}

func (c *Controller) showCategory(category string) {
	c.selectedCategory = category

	c.app.SetInputCapture(c.handleKeys)

	c.refresh()

	content := c.categoryContents[category]
	table := c.categoryTables[category]

	row, _ := table.GetSelection()
	if row < 1 && len(content.tasks) > 0 {
		row = 1
		table.Select(1, 0).SetFixed(1, 0)
	}

	c.setSelectedTask(content, row)

	c.pages.SwitchToPage(pageName(category))
}

func (c *Controller) getInfoGrid() *tview.Grid {
	header := c.getPageHeader("Important Info")

	c.infoContent = &infoContent{session: c.session}
	c.infoContent.refresh()

	c.infoTable = tview.NewTable().SetBorders(false)
	c.infoTable.SetContent(c.infoContent)
	c.infoTable.SetSelectable(true, false)

	c.infoTable.SetSelectionChangedFunc(func(row, col int) {
		if idx := row - 1; idx >= 0 && idx < len(c.infoContent.info) {
			c.selectedInfo = c.infoContent.info[idx]
		} else {
			c.selectedInfo = nil
		}
	})

	grid := tview.NewGrid().SetBorders(true).SetRows(6, 0, 1)

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.infoTable, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.getStatusBar(pageInfo), 2, 0, 1, 1, 0, 0, false)

	return grid
}

func (c *Controller) showInfo() {
	c.app.SetInputCapture(c.handleKeys)

	c.refresh()

	if row, _ := c.infoTable.GetSelection(); row < 1 && len(c.infoContent.info) > 0 {
		c.infoTable.Select(1, 0).SetFixed(1, 0)
	}

	c.pages.SwitchToPage(pageName(pageInfo))
}

func (c *Controller) getAchievementsGrid() *tview.Grid {
	header := c.getPageHeader("Achievements")

	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	for col, text := range []string{"name", "description", "earned"} {
		table.SetCell(0, col, tview.NewTableCell(text).SetExpansion(1).
			SetTextColor(tcell.ColorYellow).SetSelectable(false))
	}

	for row, achievement := range c.session.Achievements {
		earned := "no"
		if achievement.Earned {
			earned = "yes"
		}

		table.SetCell(row+1, 0, tview.NewTableCell(achievement.Name).SetExpansion(1))
		table.SetCell(row+1, 1, tview.NewTableCell(achievement.Description).SetExpansion(descTitleRatio))
		table.SetCell(row+1, 2, tview.NewTableCell(earned).SetTextColor(tcell.ColorGreen).SetExpansion(1))
	}

	grid := tview.NewGrid().SetBorders(true).SetRows(6, 0, 1)

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(table, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.getStatusBar(pageAchievements), 2, 0, 1, 1, 0, 0, false)

	return grid
}

// updateHeaders refreshes the stats line on every page header.
func (c *Controller) updateHeaders() {
	for _, cell := range c.statsCells {
		cell.SetText(c.statsLine())
	}
}
