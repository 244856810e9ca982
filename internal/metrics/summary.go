package metrics

import (
	"github.com/OMEGA178/faktury/internal/models"
)

// Summary is the headline financial picture across all history.
type Summary struct {
	TotalEarned      float64
	TotalOutstanding float64
	TotalFuelExpense float64
	TotalLiters      float64
	NetProfit        float64
	PaidCount        int
	UnpaidCount      int
	FuelEntriesCount int
}

// Summarize totals up the whole invoice and fuel history.
func Summarize(invoices []models.Invoice, entries []models.FuelEntry) Summary {
	var s Summary

	for _, inv := range invoices {
		if inv.IsPaid {
			s.TotalEarned += inv.Amount
			s.PaidCount++
		} else {
			s.TotalOutstanding += inv.Amount
			s.UnpaidCount++
		}
	}
	for _, e := range entries {
		s.TotalFuelExpense += e.Amount
		s.TotalLiters += e.Liters
	}

	s.NetProfit = s.TotalEarned - s.TotalFuelExpense
	s.FuelEntriesCount = len(entries)
	return s
}

// FuelCostInWindow sums the fuel bought between an invoice's issue
// date and its deadline, to show spending alongside the revenue it
// supported. Returns 0 when the invoice has no issue date.
func FuelCostInWindow(inv models.Invoice, entries []models.FuelEntry) float64 {
	if inv.IssueDate == nil {
		return 0
	}
	var sum float64
	for _, e := range entries {
		if !e.Date.Before(*inv.IssueDate) && !e.Date.After(inv.Deadline) {
			sum += e.Amount
		}
	}
	return sum
}

// BreakEven describes where a month stands against the business
// plan's monthly break-even revenue.
type BreakEven struct {
	Target    float64
	Achieved  float64
	Remaining float64
	Percent   float64
	Reached   bool
}

// BreakEvenAnalysis measures the month's revenue against the plan.
func BreakEvenAnalysis(month MonthStats, plan models.BusinessMetrics) BreakEven {
	b := BreakEven{Target: plan.BreakEvenMonthly, Achieved: month.Revenue}

	b.Remaining = plan.BreakEvenMonthly - month.Revenue
	if b.Remaining < 0 {
		b.Remaining = 0
	}
	if plan.BreakEvenMonthly > 0 {
		b.Percent = month.Revenue / plan.BreakEvenMonthly * 100
	}
	b.Reached = month.Revenue >= plan.BreakEvenMonthly
	return b
}
