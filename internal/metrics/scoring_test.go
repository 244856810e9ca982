package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/OMEGA178/faktury/internal/models"
)

func TestScore(t *testing.T) {
	assert.Equal(t, 10, Score(true))
	assert.Equal(t, -5, Score(false))
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  ScoreLevel
	}{
		{60, ScoreExcellent},
		{50, ScoreExcellent},
		{49, ScoreGood},
		{20, ScoreGood},
		{19, ScoreFair},
		{0, ScoreFair},
		{-1, ScorePoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForScore(tt.score), "score %d", tt.score)
	}
}

func TestPaidOnTime_DeadlineDayBoundary(t *testing.T) {
	deadline := day(2024, 1, 10)

	lastMoment := time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)
	assert.True(t, PaidOnTime(lastMoment, deadline), "any moment on the deadline day is on time")

	justAfter := time.Date(2024, 1, 11, 0, 0, 1, 0, time.UTC)
	assert.False(t, PaidOnTime(justAfter, deadline))
}

func TestIsOverdue(t *testing.T) {
	today := day(2024, 3, 15)
	issue := day(2024, 3, 1)
	shortStart := 7 // range opens 2024-03-08, already past
	longStart := 30 // range opens 2024-03-31, still ahead

	tests := []struct {
		name string
		inv  models.Invoice
		want bool
	}{
		{
			name: "deadline passed",
			inv:  models.Invoice{Deadline: day(2024, 3, 14)},
			want: true,
		},
		{
			name: "deadline is today",
			inv:  models.Invoice{Deadline: day(2024, 3, 15)},
			want: false,
		},
		{
			name: "deadline ahead",
			inv:  models.Invoice{Deadline: day(2024, 3, 20)},
			want: false,
		},
		{
			name: "range start passed overrides a future deadline",
			inv:  models.Invoice{Deadline: day(2024, 4, 30), IssueDate: &issue, PaymentTermStart: &shortStart},
			want: true,
		},
		{
			name: "range start ahead overrides a past deadline",
			inv:  models.Invoice{Deadline: day(2024, 3, 10), IssueDate: &issue, PaymentTermStart: &longStart},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.inv, today))
		})
	}
}

func TestDaysUntilDeadline(t *testing.T) {
	today := day(2024, 3, 15)

	assert.Equal(t, 3, DaysUntilDeadline(day(2024, 3, 18), today))
	assert.Equal(t, 0, DaysUntilDeadline(day(2024, 3, 15), today))
	assert.Equal(t, -2, DaysUntilDeadline(day(2024, 3, 13), today))
}

func TestShouldNotifyUpcoming(t *testing.T) {
	today := day(2024, 3, 15)

	assert.True(t, ShouldNotifyUpcoming(day(2024, 3, 17), today, 3))
	assert.False(t, ShouldNotifyUpcoming(day(2024, 3, 15), today, 3), "due today is no longer upcoming")
	assert.False(t, ShouldNotifyUpcoming(day(2024, 3, 19), today, 3), "too far out")
}
