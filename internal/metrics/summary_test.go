package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OMEGA178/faktury/internal/models"
)

func TestSummarize(t *testing.T) {
	invoices := []models.Invoice{
		paidInvoice("i1", 3000, 0, day(2024, 3, 5)),
		paidInvoice("i2", 2000, 0, day(2024, 4, 5)),
		{ID: "i3", CompanyName: "X", NIP: "1", Amount: 1500, Deadline: day(2024, 5, 1)},
	}
	entries := []models.FuelEntry{
		{ID: "f1", VehicleID: "v1", Amount: 600, Liters: 100},
		{ID: "f2", VehicleID: "v1", Amount: 400, Liters: 65},
	}

	got := Summarize(invoices, entries)

	assert.InDelta(t, 5000, got.TotalEarned, 1e-9)
	assert.InDelta(t, 1500, got.TotalOutstanding, 1e-9)
	assert.InDelta(t, 1000, got.TotalFuelExpense, 1e-9)
	assert.InDelta(t, 165, got.TotalLiters, 1e-9)
	assert.InDelta(t, 4000, got.NetProfit, 1e-9)
	assert.Equal(t, 2, got.PaidCount)
	assert.Equal(t, 1, got.UnpaidCount)
	assert.Equal(t, 2, got.FuelEntriesCount)
}

func TestFuelCostInWindow(t *testing.T) {
	issue := day(2024, 3, 1)
	inv := models.Invoice{
		ID: "i1", CompanyName: "X", NIP: "1",
		IssueDate: &issue, Deadline: day(2024, 3, 31),
	}
	entries := []models.FuelEntry{
		{ID: "f1", VehicleID: "v1", Date: day(2024, 3, 1), Amount: 100, Liters: 10},
		{ID: "f2", VehicleID: "v1", Date: day(2024, 3, 31), Amount: 200, Liters: 20},
		{ID: "f3", VehicleID: "v1", Date: day(2024, 2, 28), Amount: 999, Liters: 99},
		{ID: "f4", VehicleID: "v1", Date: day(2024, 4, 1), Amount: 999, Liters: 99},
	}

	assert.InDelta(t, 300, FuelCostInWindow(inv, entries), 1e-9, "window bounds are inclusive")

	inv.IssueDate = nil
	assert.Zero(t, FuelCostInWindow(inv, entries))
}

func TestBreakEvenAnalysis(t *testing.T) {
	plan := models.DefaultBusinessMetrics()

	below := BreakEvenAnalysis(MonthStats{Revenue: 6000}, plan)
	assert.InDelta(t, 6000, below.Remaining, 1e-9)
	assert.InDelta(t, 50, below.Percent, 1e-9)
	assert.False(t, below.Reached)

	above := BreakEvenAnalysis(MonthStats{Revenue: 13000}, plan)
	assert.Zero(t, above.Remaining)
	assert.True(t, above.Reached)
	assert.Greater(t, above.Percent, 100.0)
}
