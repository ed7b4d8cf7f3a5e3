package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Column counts for the fixed sheet layouts.
const (
	TaskColumns = 12
	InfoColumns = 5
	StatColumns = 2
)

// Stat names used for the fixed rows of the User_Stats sheet.
const (
	StatPoints         = "Current Points"
	StatStreak         = "Current Streak"
	StatLevel          = "Level"
	StatCompletedTasks = "Completed Tasks"
	StatLastActivity   = "Last Activity Date"
)

// TaskHeader is row 1 of the Tasks sheet.
func TaskHeader() []string {
	return []string{
		"ID", "Title", "Description", "Priority", "Due Date", "Category",
		"Is Recurring", "Recurring Type", "Is Completed", "Created Date",
		"Subtasks", "Calendar Event ID",
	}
}

// InfoHeader is row 1 of the Important_Info sheet.
func InfoHeader() []string {
	return []string{"ID", "Title", "Content", "Category", "Created Date"}
}

// StatsHeader is row 1 of the User_Stats sheet.
func StatsHeader() []string {
	return []string{"Stat Name", "Value"}
}

// AchievementHeader is row 1 of the Achievements sheet.
func AchievementHeader() []string {
	return []string{"Achievement ID", "Name", "Description", "Is Earned", "Date Earned"}
}

// Row flattens a Task into its Tasks!A:L representation.
func (t *Task) Row() []string {
	subtasks := t.Subtasks
	if subtasks == nil {
		subtasks = []Subtask{}
	}

	// Marshaling a slice of plain structs cannot fail.
	encoded, _ := json.Marshal(subtasks)

	return []string{
		t.ID,
		t.Title,
		t.Description,
		t.Priority,
		formatTime(t.DueDate),
		t.Category,
		formatBool(t.IsRecurring),
		t.RecurringType,
		formatBool(t.IsCompleted),
		formatTime(t.CreatedDate),
		string(encoded),
		t.CalendarEventID,
	}
}

// TaskFromRow parses a Tasks sheet row. Rows shorter than the full column range are
// padded with empty cells, which is how the sheet reports trailing blanks.
func TaskFromRow(row []string) (*Task, error) {
	row = pad(row, TaskColumns)

	due, err := parseTime(row[4])
	if err != nil {
		return nil, fmt.Errorf("error parsing due date of task %s: %w", row[0], err)
	}

	created, err := parseTime(row[9])
	if err != nil {
		return nil, fmt.Errorf("error parsing created date of task %s: %w", row[0], err)
	}

	task := Task{
		ID:              row[0],
		Title:           row[1],
		Description:     row[2],
		Priority:        row[3],
		DueDate:         due,
		Category:        row[5],
		IsRecurring:     parseBool(row[6]),
		RecurringType:   row[7],
		IsCompleted:     parseBool(row[8]),
		CreatedDate:     created,
		CalendarEventID: row[11],
	}

	if row[10] != "" && row[10] != "[]" {
		if err := json.Unmarshal([]byte(row[10]), &task.Subtasks); err != nil {
			return nil, fmt.Errorf("error parsing subtasks of task %s: %w", row[0], err)
		}
	}

	return &task, nil
}

// Row flattens an ImportantInfo into its Important_Info!A:E representation.
func (i *ImportantInfo) Row() []string {
	return []string{i.ID, i.Title, i.Content, i.Category, formatTime(i.CreatedDate)}
}

// InfoFromRow parses an Important_Info sheet row.
func InfoFromRow(row []string) (*ImportantInfo, error) {
	row = pad(row, InfoColumns)

	created, err := parseTime(row[4])
	if err != nil {
		return nil, fmt.Errorf("error parsing created date of info %s: %w", row[0], err)
	}

	return &ImportantInfo{
		ID:          row[0],
		Title:       row[1],
		Content:     row[2],
		Category:    row[3],
		CreatedDate: created,
	}, nil
}

// StatsRows flattens UserStats into the five fixed named rows of the User_Stats
// sheet. The Level row is written for sheet readers but is derived from points.
func StatsRows(s UserStats) [][]string {
	return [][]string{
		{StatPoints, strconv.Itoa(s.CurrentPoints)},
		{StatStreak, strconv.Itoa(s.CurrentStreak)},
		{StatLevel, strconv.Itoa(s.Level())},
		{StatCompletedTasks, strconv.Itoa(s.CompletedTasks)},
		{StatLastActivity, formatTime(s.LastActivityDate)},
	}
}

// StatsFromRows rebuilds UserStats from named rows. Unknown names are ignored,
// missing or malformed numbers default to zero, and the stored Level cell is
// discarded in favor of the derived value.
func StatsFromRows(rows [][]string) UserStats {
	byName := map[string]string{}

	for _, row := range rows {
		row = pad(row, StatColumns)
		byName[row[0]] = row[1]
	}

	lastActivity, err := parseTime(byName[StatLastActivity])
	if err != nil {
		lastActivity = time.Time{}
	}

	return UserStats{
		CurrentPoints:    parseInt(byName[StatPoints]),
		CurrentStreak:    parseInt(byName[StatStreak]),
		CompletedTasks:   parseInt(byName[StatCompletedTasks]),
		LastActivityDate: lastActivity,
	}
}

// Row flattens an Achievement into its Achievements!A:E representation.
func (a *Achievement) Row() []string {
	return []string{
		strconv.Itoa(a.ID), a.Name, a.Description, formatBool(a.Earned), formatTime(a.DateEarned),
	}
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}

	return "FALSE"
}

// parseBool matches the sheet's boolean rendering: "TRUE" is true, anything else
// (including blank trailing cells) is false.
func parseBool(s string) bool {
	return s == "TRUE"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.RFC3339, s)
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}

func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}

	return row
}
