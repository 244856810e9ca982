package models

import (
	"errors"
	"time"
)

// ReportType selects the aggregation period of a report.
type ReportType string

const (
	ReportWeekly    ReportType = "weekly"
	ReportMonthly   ReportType = "monthly"
	ReportQuarterly ReportType = "quarterly"
)

// Report is an immutable snapshot of aggregated totals for a period.
type Report struct {
	ID          string     `json:"id" firestore:"id"`
	Type        ReportType `json:"type" firestore:"type"`
	StartDate   time.Time  `json:"startDate" firestore:"startDate"`
	EndDate     time.Time  `json:"endDate" firestore:"endDate"`
	GeneratedAt time.Time  `json:"generatedAt" firestore:"generatedAt"`

	TotalRevenue     float64 `json:"totalRevenue" firestore:"totalRevenue"`
	TotalFuelCost    float64 `json:"totalFuelCost" firestore:"totalFuelCost"`
	NetProfit        float64 `json:"netProfit" firestore:"netProfit"`
	InvoicesCount    int     `json:"invoicesCount" firestore:"invoicesCount"`
	FuelEntriesCount int     `json:"fuelEntriesCount" firestore:"fuelEntriesCount"`
	AvgFuelPrice     float64 `json:"avgFuelPrice" firestore:"avgFuelPrice"`
	TotalKilometers  int     `json:"totalKilometers" firestore:"totalKilometers"`
}

// EntityID implements Entity.
func (r Report) EntityID() string { return r.ID }

// Validate implements Entity.
func (r Report) Validate() error {
	if r.ID == "" {
		return errors.New("report: missing id")
	}
	if r.Type == "" {
		return errors.New("report: missing type")
	}
	return nil
}

// BusinessMetrics holds the business-plan targets that break-even
// analysis is measured against.
type BusinessMetrics struct {
	BreakEvenMonthly        float64 `json:"breakEvenMonthly"`
	TargetRevenueMin        float64 `json:"targetRevenueMin"`
	TargetRevenueMax        float64 `json:"targetRevenueMax"`
	TargetProfitMarginMin   float64 `json:"targetProfitMarginMin"`
	TargetProfitMarginMax   float64 `json:"targetProfitMarginMax"`
	TargetFuelPricePerLiter float64 `json:"targetFuelPricePerLiter"`
	TargetMonthlyKm         float64 `json:"targetMonthlyKm"`
	AvgRevenuePerKm         float64 `json:"avgRevenuePerKm"`
}

// DefaultBusinessMetrics returns the business-plan constants the
// balance view measures against.
func DefaultBusinessMetrics() BusinessMetrics {
	return BusinessMetrics{
		BreakEvenMonthly:        12000,
		TargetRevenueMin:        12000,
		TargetRevenueMax:        15000,
		TargetProfitMarginMin:   51,
		TargetProfitMarginMax:   58,
		TargetFuelPricePerLiter: 6.50,
		TargetMonthlyKm:         13500,
		AvgRevenuePerKm:         3.20,
	}
}
