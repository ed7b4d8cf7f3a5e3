package model

import "time"

// These constants refer to the due-date buckets tasks are grouped under.
const (
	CategoryToday     = "Today"
	CategoryIn3Days   = "In 3 Days"
	CategoryThisWeek  = "This Week"
	CategoryThisMonth = "This Month"
	CategoryLongTerm  = "Long-term Plan"
)

// Priorities supported by the app, in ascending order of reward.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Recurring types map one-to-one onto calendar repeat rules.
const (
	RecurringDaily   = "daily"
	RecurringWeekly  = "weekly"
	RecurringMonthly = "monthly"
	RecurringYearly  = "yearly"
)

// Categories returns the buckets in display order.
func Categories() []string {
	return []string{CategoryToday, CategoryIn3Days, CategoryThisWeek, CategoryThisMonth, CategoryLongTerm}
}

// Task is a single quest entry. The ID is assigned once at creation and identifies
// the task's row in the remote sheet; Category is fixed at creation time and is not
// recomputed as the due date approaches.
type Task struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Priority        string    `json:"priority"`
	DueDate         time.Time `json:"dueDate"`
	Category        string    `json:"category"`
	IsRecurring     bool      `json:"isRecurring"`
	RecurringType   string    `json:"recurringType,omitempty"`
	IsCompleted     bool      `json:"isCompleted"`
	CreatedDate     time.Time `json:"createdDate"`
	Subtasks        []Subtask `json:"subtasks"`
	CalendarEventID string    `json:"calendarEventId,omitempty"`
}

// Subtask is carried through the sheet as an opaque JSON payload; the core logic
// never inspects it.
type Subtask struct {
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// UserStats is the per-user gamification state. Level is always derived from
// CurrentPoints so the stored value can never drift.
type UserStats struct {
	CurrentPoints    int       `json:"currentPoints"`
	CurrentStreak    int       `json:"currentStreak"`
	CompletedTasks   int       `json:"completedTasks"`
	LastActivityDate time.Time `json:"lastActivityDate"`
}

// Level is one per hundred points, starting at 1.
func (s UserStats) Level() int {
	return s.CurrentPoints/100 + 1
}

// ImportantInfo is a free-form note kept alongside tasks.
type ImportantInfo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	CreatedDate time.Time `json:"createdDate"`
}

// Achievement is a catalog entry; earning is not yet evaluated anywhere.
type Achievement struct {
	ID          int
	Name        string
	Description string
	Earned      bool
	DateEarned  time.Time
}

// ValidPriority reports whether p is one of the three supported priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidRecurringType reports whether r is a supported repeat interval.
func ValidRecurringType(r string) bool {
	return r == RecurringDaily || r == RecurringWeekly || r == RecurringMonthly || r == RecurringYearly
}
