package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OMEGA178/faktury/internal/models"
)

func TestWeekRange(t *testing.T) {
	// 2024-03-13 is a Wednesday
	start, end := WeekRange(day(2024, 3, 13))
	assert.Equal(t, day(2024, 3, 11), start, "weeks start on Monday")
	assert.Equal(t, 17, end.Day())
	assert.True(t, end.Before(day(2024, 3, 18)))

	// Sunday belongs to the week that started the Monday before
	start, _ = WeekRange(day(2024, 3, 17))
	assert.Equal(t, day(2024, 3, 11), start)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(day(2024, 2, 15))
	assert.Equal(t, day(2024, 2, 1), start)
	assert.Equal(t, 29, end.Day(), "leap February")
	assert.True(t, end.Before(day(2024, 3, 1)))
}

func TestQuarterRange(t *testing.T) {
	tests := []struct {
		date      time.Time
		wantStart time.Time
		wantEndIn time.Month
	}{
		{day(2024, 1, 10), day(2024, 1, 1), time.March},
		{day(2024, 5, 20), day(2024, 4, 1), time.June},
		{day(2024, 12, 31), day(2024, 10, 1), time.December},
	}
	for _, tt := range tests {
		start, end := QuarterRange(tt.date)
		assert.Equal(t, tt.wantStart, start)
		assert.Equal(t, tt.wantEndIn, end.Month())
	}
}

func TestBuildReport_Monthly(t *testing.T) {
	now := day(2024, 3, 15)
	invoices := []models.Invoice{
		paidInvoice("i1", 3000, 900, day(2024, 3, 5)),
		paidInvoice("i2", 2000, 600, day(2024, 3, 31)),
		paidInvoice("i3", 9999, 100, day(2024, 4, 1)), // next month
		{ID: "i4", CompanyName: "X", NIP: "1", Amount: 500, Deadline: now}, // unpaid, no paidAt
	}
	entries := []models.FuelEntry{
		{ID: "f1", VehicleID: "v1", Date: day(2024, 3, 3), Amount: 1200, Liters: 200, PricePerLiter: 6.0},
		{ID: "f2", VehicleID: "v1", Date: day(2024, 3, 25), Amount: 800, Liters: 125, PricePerLiter: 6.4},
		{ID: "f3", VehicleID: "v1", Date: day(2024, 2, 28), Amount: 999, Liters: 99, PricePerLiter: 9.9},
	}

	r := BuildReport(models.ReportMonthly, invoices, entries, now)

	require.NoError(t, r.Validate())
	assert.Equal(t, models.ReportMonthly, r.Type)
	assert.Equal(t, day(2024, 3, 1), r.StartDate)
	assert.Equal(t, now, r.GeneratedAt)

	assert.InDelta(t, 5000, r.TotalRevenue, 1e-9)
	assert.InDelta(t, 2000, r.TotalFuelCost, 1e-9)
	assert.InDelta(t, 3000, r.NetProfit, 1e-9)
	assert.Equal(t, 2, r.InvoicesCount)
	assert.Equal(t, 2, r.FuelEntriesCount)
	assert.InDelta(t, 6.2, r.AvgFuelPrice, 1e-9)
	assert.Equal(t, 1500, r.TotalKilometers)
}

func TestBuildReport_EmptyPeriod(t *testing.T) {
	r := BuildReport(models.ReportWeekly, nil, nil, day(2024, 3, 15))

	require.NoError(t, r.Validate())
	assert.Zero(t, r.TotalRevenue)
	assert.Zero(t, r.AvgFuelPrice)
	assert.Zero(t, r.InvoicesCount)
}

func TestBuildReport_UniqueIDs(t *testing.T) {
	a := BuildReport(models.ReportMonthly, nil, nil, day(2024, 3, 15))
	b := BuildReport(models.ReportMonthly, nil, nil, day(2024, 3, 15))
	assert.NotEqual(t, a.ID, b.ID)
}
