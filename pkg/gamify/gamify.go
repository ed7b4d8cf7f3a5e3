// Package gamify holds the reward rules applied when tasks are completed.
package gamify

import (
	"time"

	"github.com/matt-steen/lifequest/pkg/model"
)

// Points awarded per priority when a task is completed.
const (
	PointsHigh   = 15
	PointsMedium = 10
	PointsLow    = 5
)

// Points returns the award for completing a task of the given priority.
func Points(priority string) int {
	switch priority {
	case model.PriorityHigh:
		return PointsHigh
	case model.PriorityMedium:
		return PointsMedium
	default:
		return PointsLow
	}
}

// ApplyCompletion returns the stats after a task of the given priority goes from
// incomplete to complete. Un-completing a task awards nothing and reverses
// nothing; there is no inverse of this function.
//
// CurrentStreak is carried through untouched. Consecutive-day detection has never
// been defined, so nothing increments it yet.
func ApplyCompletion(stats model.UserStats, priority string, now time.Time) model.UserStats {
	stats.CurrentPoints += Points(priority)
	stats.CompletedTasks++
	stats.LastActivityDate = now

	return stats
}
