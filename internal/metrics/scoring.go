package metrics

import (
	"math"
	"time"

	"github.com/OMEGA178/faktury/internal/models"
)

// Reputation deltas applied once, at the moment an invoice is marked
// paid. Later edits to dates never re-trigger them.
const (
	scoreOnTime = 10
	scoreLate   = -5
)

// Score returns the reputation delta for a payment.
func Score(paidOnTime bool) int {
	if paidOnTime {
		return scoreOnTime
	}
	return scoreLate
}

// ScoreLevel buckets a company score for display.
type ScoreLevel string

const (
	ScoreExcellent ScoreLevel = "excellent"
	ScoreGood      ScoreLevel = "good"
	ScoreFair      ScoreLevel = "fair"
	ScorePoor      ScoreLevel = "poor"
)

// LevelForScore maps a raw score to its bucket.
func LevelForScore(score int) ScoreLevel {
	switch {
	case score >= 50:
		return ScoreExcellent
	case score >= 20:
		return ScoreGood
	case score >= 0:
		return ScoreFair
	default:
		return ScorePoor
	}
}

// PaidOnTime reports whether a payment made at paidAt counts as on
// time for the given deadline. The comparison is date-granular: any
// moment on the deadline day itself is still on time.
func PaidOnTime(paidAt, deadline time.Time) bool {
	return paidAt.Before(startOfDay(deadline).AddDate(0, 0, 1))
}

// IsOverdue reports whether an unpaid invoice is overdue as of today.
// Invoices carrying a payment-term range are judged by the range start
// derived from the issue date, not by the deadline.
func IsOverdue(inv models.Invoice, today time.Time) bool {
	day := startOfDay(today)
	if inv.IssueDate != nil && inv.PaymentTermStart != nil {
		start := startOfDay(*inv.IssueDate).AddDate(0, 0, *inv.PaymentTermStart)
		return start.Before(day)
	}
	return startOfDay(inv.Deadline).Before(day)
}

// DaysUntilDeadline counts whole days from today to the deadline,
// negative once the deadline is past.
func DaysUntilDeadline(deadline, today time.Time) int {
	diff := startOfDay(deadline).Sub(startOfDay(today))
	return int(math.Ceil(diff.Hours() / 24))
}

// ShouldNotifyUpcoming reports whether a deadline is close enough to
// warrant a reminder but not past yet.
func ShouldNotifyUpcoming(deadline, today time.Time, notifyDaysBefore int) bool {
	left := DaysUntilDeadline(deadline, today)
	return left > 0 && left <= notifyDaysBefore
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
