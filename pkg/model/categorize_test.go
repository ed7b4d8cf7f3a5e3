package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestCategorizeBoundaries(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		days     int
		expected string
	}{
		{-5, model.CategoryToday},
		{0, model.CategoryToday},
		{1, model.CategoryIn3Days},
		{3, model.CategoryIn3Days},
		{4, model.CategoryThisWeek},
		{7, model.CategoryThisWeek},
		{8, model.CategoryThisMonth},
		{30, model.CategoryThisMonth},
		{31, model.CategoryLongTerm},
		{365, model.CategoryLongTerm},
	}

	for _, test := range tests {
		due := now.Add(time.Duration(test.days) * 24 * time.Hour)
		assert.Equal(test.expected, model.Categorize(due, now), fmt.Sprintf("%d days out", test.days))
	}
}

func TestCategorizeDueNow(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// a due date exactly at now rounds to zero days, not negative, and is Today
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(model.CategoryToday, model.Categorize(now, now))
}

func TestCategorizePartialDaysRoundUp(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// 3 days and one hour out rounds up to 4 days and leaves the 3-day bucket
	due := now.Add(3*24*time.Hour + time.Hour)
	assert.Equal(model.CategoryThisWeek, model.Categorize(due, now))

	// one minute out rounds up to a full day
	assert.Equal(model.CategoryIn3Days, model.Categorize(now.Add(time.Minute), now))
}

func TestCategorizeTotal(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	buckets := map[string]bool{}

	for _, category := range model.Categories() {
		buckets[category] = true
	}

	for hours := -100 * 24; hours <= 100*24; hours += 7 {
		category := model.Categorize(now.Add(time.Duration(hours)*time.Hour), now)
		assert.True(buckets[category], fmt.Sprintf("unknown bucket %s at %d hours", category, hours))
	}
}
