package model

import (
	"math"
	"time"
)

const hoursPerDay = 24

// Categorize maps a due date to its display bucket relative to now. The day count
// rounds up, so a due date at or before now lands in Today (diff of zero days),
// and the boundaries at 3, 7 and 30 days belong to the earlier bucket.
func Categorize(due, now time.Time) string {
	diffDays := int(math.Ceil(due.Sub(now).Hours() / hoursPerDay))

	switch {
	case diffDays <= 0:
		return CategoryToday
	case diffDays <= 3:
		return CategoryIn3Days
	case diffDays <= 7:
		return CategoryThisWeek
	case diffDays <= 30:
		return CategoryThisMonth
	default:
		return CategoryLongTerm
	}
}
