package metrics

import (
	"time"

	"github.com/OMEGA178/faktury/internal/models"
)

// MonthStats aggregates one calendar month of activity. Revenue and
// kilometres come from invoices paid within the month; fuel figures
// come from refuellings dated within it.
type MonthStats struct {
	Revenue       float64
	Fuel          float64
	Profit        float64
	ProfitMargin  float64
	TotalKm       int
	TotalLiters   float64
	RevenuePerKm  float64
	FuelCostPerKm float64
}

// StatsForMonth computes the aggregates for the month containing ref.
func StatsForMonth(invoices []models.Invoice, entries []models.FuelEntry, ref time.Time) MonthStats {
	var s MonthStats

	for _, inv := range invoices {
		if !inv.IsPaid || inv.PaidAt == nil || !sameMonth(*inv.PaidAt, ref) {
			continue
		}
		s.Revenue += inv.Amount
		s.TotalKm += inv.CalculatedDistance
	}
	for _, e := range entries {
		if !sameMonth(e.Date, ref) {
			continue
		}
		s.Fuel += e.Amount
		s.TotalLiters += e.Liters
	}

	s.Profit = s.Revenue - s.Fuel
	if s.Revenue > 0 {
		s.ProfitMargin = s.Profit / s.Revenue * 100
	}
	if s.TotalKm > 0 {
		s.RevenuePerKm = s.Revenue / float64(s.TotalKm)
		s.FuelCostPerKm = s.Fuel / float64(s.TotalKm)
	}
	return s
}

// MonthComparison puts the current month next to the previous one.
// Every percentage change is 0 when the previous month carries no
// baseline to compare against.
type MonthComparison struct {
	Current  MonthStats
	Previous MonthStats

	RevenueChange       float64
	FuelChange          float64
	ProfitChange        float64
	RevenuePerKmChange  float64
	FuelCostPerKmChange float64

	HasPreviousData bool
}

// CompareMonths compares the month of now against the month before it.
func CompareMonths(invoices []models.Invoice, entries []models.FuelEntry, now time.Time) MonthComparison {
	cur := StatsForMonth(invoices, entries, now)

	// anchor on the first of the month so day-31 dates cannot skip a month
	prevRef := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	prev := StatsForMonth(invoices, entries, prevRef)

	return MonthComparison{
		Current:             cur,
		Previous:            prev,
		RevenueChange:       pctChange(cur.Revenue, prev.Revenue),
		FuelChange:          pctChange(cur.Fuel, prev.Fuel),
		ProfitChange:        pctChange(cur.Profit, prev.Profit),
		RevenuePerKmChange:  pctChange(cur.RevenuePerKm, prev.RevenuePerKm),
		FuelCostPerKmChange: pctChange(cur.FuelCostPerKm, prev.FuelCostPerKm),
		HasPreviousData:     prev.Revenue > 0 || prev.Fuel > 0,
	}
}

// pctChange reports 0 rather than infinity when the previous period
// has no baseline.
func pctChange(cur, prev float64) float64 {
	if prev <= 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
