package metrics

import (
	"time"

	"github.com/google/uuid"

	"github.com/OMEGA178/faktury/internal/models"
)

// WeekRange returns the Monday-to-Sunday week containing date, with
// the end pushed to the last instant of Sunday.
func WeekRange(date time.Time) (start, end time.Time) {
	day := startOfDay(date)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start = day.AddDate(0, 0, 1-weekday)
	end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// MonthRange returns the calendar month containing date.
func MonthRange(date time.Time) (start, end time.Time) {
	start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// QuarterRange returns the calendar quarter containing date.
func QuarterRange(date time.Time) (start, end time.Time) {
	q := (int(date.Month()) - 1) / 3
	start = time.Date(date.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, date.Location())
	end = start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	return start, end
}

// PeriodRange resolves a report type to its period around now.
func PeriodRange(typ models.ReportType, now time.Time) (start, end time.Time) {
	switch typ {
	case models.ReportWeekly:
		return WeekRange(now)
	case models.ReportQuarterly:
		return QuarterRange(now)
	default:
		return MonthRange(now)
	}
}

// BuildReport snapshots the period containing now. Revenue counts
// invoices by the day they were paid, fuel by purchase date.
func BuildReport(typ models.ReportType, invoices []models.Invoice, entries []models.FuelEntry, now time.Time) models.Report {
	start, end := PeriodRange(typ, now)

	r := models.Report{
		ID:          "report-" + uuid.NewString(),
		Type:        typ,
		StartDate:   start,
		EndDate:     end,
		GeneratedAt: now,
	}

	var priceSum float64
	for _, inv := range invoices {
		if inv.PaidAt == nil || inv.PaidAt.Before(start) || inv.PaidAt.After(end) {
			continue
		}
		r.TotalRevenue += inv.Amount
		r.TotalKilometers += inv.CalculatedDistance
		r.InvoicesCount++
	}
	for _, e := range entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		r.TotalFuelCost += e.Amount
		priceSum += e.PricePerLiter
		r.FuelEntriesCount++
	}

	r.NetProfit = r.TotalRevenue - r.TotalFuelCost
	if r.FuelEntriesCount > 0 {
		r.AvgFuelPrice = priceSum / float64(r.FuelEntriesCount)
	}
	return r
}
