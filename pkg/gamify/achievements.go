package gamify

import "github.com/matt-steen/lifequest/pkg/model"

// Thresholds for the fixed achievement catalog. They are carried as data only;
// no code evaluates or persists earned transitions yet.
const (
	FirstStepsTasks     = 1
	ConsistencyStreak   = 7
	HighAchieverPoints  = 1000
	TaskMasterCompleted = 50
)

// Achievements returns the static catalog, all unearned.
func Achievements() []*model.Achievement {
	return []*model.Achievement{
		{ID: 1, Name: "First Steps", Description: "Complete your first task"},
		{ID: 2, Name: "Consistency", Description: "Maintain a 7-day streak"},
		{ID: 3, Name: "High Achiever", Description: "Earn 1000 points"},
		{ID: 4, Name: "Task Master", Description: "Complete 50 tasks"},
	}
}
