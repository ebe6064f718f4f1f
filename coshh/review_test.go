package coshh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReviewDate(t *testing.T) {
	tests := []struct {
		name     string
		assessed time.Time
		want     time.Time
	}{
		{"ordinary day", day(2026, time.October, 19), day(2027, time.October, 19)},
		{"leap day clamps", day(2024, time.February, 29), day(2025, time.February, 28)},
		{"into leap year", day(2023, time.March, 1), day(2024, time.March, 1)},
		{"feb 28 stays", day(2023, time.February, 28), day(2024, time.February, 28)},
		{"new year's eve", day(2026, time.December, 31), day(2027, time.December, 31)},
		{"time of day dropped", time.Date(2026, time.May, 4, 23, 59, 0, 0, time.UTC), day(2027, time.May, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReviewDate(tt.assessed))
		})
	}
}

func TestDueWithin(t *testing.T) {
	now := time.Date(2026, time.October, 19, 15, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour

	assert.True(t, DueWithin(day(2026, time.October, 1), now, window), "overdue")
	assert.True(t, DueWithin(day(2026, time.November, 18), now, window), "last day of window")
	assert.False(t, DueWithin(day(2026, time.November, 19), now, window))
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, time.October, 19, 15, 0, 0, 0, time.UTC)
	assert.True(t, Overdue(day(2026, time.October, 18), now))
	assert.False(t, Overdue(day(2026, time.October, 19), now), "due today is not yet overdue")
	assert.False(t, Overdue(day(2026, time.November, 1), now))
}
