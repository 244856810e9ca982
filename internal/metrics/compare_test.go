package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/OMEGA178/faktury/internal/models"
)

func paidInvoice(id string, amount float64, distance int, paidAt time.Time) models.Invoice {
	return models.Invoice{
		ID: id, CompanyName: "Trans-Pol", NIP: "1234567890",
		Amount: amount, Deadline: paidAt, CalculatedDistance: distance,
		IsPaid: true, PaidAt: &paidAt,
	}
}

func TestStatsForMonth(t *testing.T) {
	march := day(2024, 3, 15)
	invoices := []models.Invoice{
		paidInvoice("i1", 3000, 900, day(2024, 3, 5)),
		paidInvoice("i2", 2000, 600, day(2024, 3, 20)),
		paidInvoice("i3", 9999, 100, day(2024, 2, 28)), // other month
		{ID: "i4", CompanyName: "X", NIP: "1", Amount: 500, Deadline: march}, // unpaid
	}
	entries := []models.FuelEntry{
		{ID: "f1", VehicleID: "v1", Date: day(2024, 3, 3), Amount: 1200, Liters: 200},
		{ID: "f2", VehicleID: "v1", Date: day(2024, 3, 25), Amount: 800, Liters: 130},
		{ID: "f3", VehicleID: "v1", Date: day(2024, 4, 1), Amount: 999, Liters: 99},
	}

	got := StatsForMonth(invoices, entries, march)

	assert.InDelta(t, 5000, got.Revenue, 1e-9)
	assert.InDelta(t, 2000, got.Fuel, 1e-9)
	assert.InDelta(t, 3000, got.Profit, 1e-9)
	assert.InDelta(t, 60, got.ProfitMargin, 1e-9)
	assert.Equal(t, 1500, got.TotalKm)
	assert.InDelta(t, 330, got.TotalLiters, 1e-9)
	assert.InDelta(t, 5000.0/1500.0, got.RevenuePerKm, 1e-9)
	assert.InDelta(t, 2000.0/1500.0, got.FuelCostPerKm, 1e-9)
}

func TestStatsForMonth_EmptyMonthHasNoRatios(t *testing.T) {
	got := StatsForMonth(nil, nil, day(2024, 3, 15))
	assert.Equal(t, MonthStats{}, got)
}

func TestCompareMonths(t *testing.T) {
	invoices := []models.Invoice{
		paidInvoice("cur", 1500, 500, day(2024, 3, 10)),
		paidInvoice("prev", 1000, 500, day(2024, 2, 10)),
	}
	entries := []models.FuelEntry{
		{ID: "f1", VehicleID: "v1", Date: day(2024, 3, 12), Amount: 250, Liters: 40},
		{ID: "f2", VehicleID: "v1", Date: day(2024, 2, 12), Amount: 500, Liters: 80},
	}

	got := CompareMonths(invoices, entries, day(2024, 3, 15))

	assert.True(t, got.HasPreviousData)
	assert.InDelta(t, 50, got.RevenueChange, 1e-9)
	assert.InDelta(t, -50, got.FuelChange, 1e-9)
	assert.InDelta(t, 150, got.ProfitChange, 1e-9, "500 -> 1250")
	assert.InDelta(t, 50, got.RevenuePerKmChange, 1e-9)
	assert.InDelta(t, -50, got.FuelCostPerKmChange, 1e-9)
}

func TestCompareMonths_NoBaselineReportsZeroChanges(t *testing.T) {
	invoices := []models.Invoice{paidInvoice("cur", 1500, 500, day(2024, 3, 10))}

	got := CompareMonths(invoices, nil, day(2024, 3, 15))

	assert.False(t, got.HasPreviousData)
	assert.Zero(t, got.RevenueChange)
	assert.Zero(t, got.FuelChange)
	assert.Zero(t, got.ProfitChange)
	assert.Zero(t, got.RevenuePerKmChange)
	assert.Zero(t, got.FuelCostPerKmChange)
}

func TestCompareMonths_MonthEndDoesNotSkipFebruary(t *testing.T) {
	invoices := []models.Invoice{paidInvoice("feb", 1000, 0, day(2024, 2, 15))}

	got := CompareMonths(invoices, nil, day(2024, 3, 31))

	assert.True(t, got.HasPreviousData)
	assert.InDelta(t, 1000, got.Previous.Revenue, 1e-9)
}
