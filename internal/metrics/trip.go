package metrics

import (
	"math"

	"github.com/OMEGA178/faktury/internal/models"
)

// avgTripConsumption is the assumed consumption used when attributing
// fuel purchases to a trip, in litres per 100 km.
const avgTripConsumption = 12.0

// forwarderShare is the forwarder's cut of the invoice amount.
const forwarderShare = 0.05

// TripCostParams are the inputs of a per-kilometre trip breakdown.
type TripCostParams struct {
	Revenue         float64
	Distance        int
	FuelCost        float64
	DriverDailyCost float64
	TripDays        int
	ForwarderCost   float64
}

// TripCostBreakdown splits a trip's economics per kilometre.
type TripCostBreakdown struct {
	RevenuePerKm       float64
	FuelCostPerKm      float64
	DriverCostPerKm    float64
	ForwarderCostPerKm float64
	NetProfitPerKm     float64
	TotalCosts         float64
	NetProfit          float64
}

// TripCostPerKm breaks a trip down per kilometre. A distance of 0
// means the distance is unknown and yields an all-zero breakdown, not
// a division by zero.
func TripCostPerKm(p TripCostParams) TripCostBreakdown {
	if p.Distance == 0 {
		return TripCostBreakdown{}
	}

	days := p.TripDays
	if days == 0 {
		days = 1
	}

	km := float64(p.Distance)
	totalDriverCost := p.DriverDailyCost * float64(days)
	totalCosts := p.FuelCost + totalDriverCost + p.ForwarderCost
	netProfit := p.Revenue - totalCosts

	return TripCostBreakdown{
		RevenuePerKm:       p.Revenue / km,
		FuelCostPerKm:      p.FuelCost / km,
		DriverCostPerKm:    totalDriverCost / km,
		ForwarderCostPerKm: p.ForwarderCost / km,
		NetProfitPerKm:     netProfit / km,
		TotalCosts:         totalCosts,
		NetProfit:          netProfit,
	}
}

// TripDays estimates the duration of a trip in days. Cash invoices
// (payment term 0) are same-day trips; otherwise roughly 500 km are
// covered per day, with a minimum of one day.
func TripDays(paymentTerm, distance int) int {
	if paymentTerm == 0 {
		return 1
	}
	days := int(math.Ceil(float64(distance) / 500))
	if days < 1 {
		days = 1
	}
	return days
}

// FuelCostForTrip estimates how much of the recorded fuel spending
// belongs to the trip behind inv. It considers refuellings within
// three days of the issue date, narrowed to the assigned driver's
// vehicle when one is set, and caps the consumption-based estimate at
// what was actually spent in that window.
func FuelCostForTrip(inv models.Invoice, drivers []models.Driver, vehicles []models.Vehicle, entries []models.FuelEntry) float64 {
	if inv.IssueDate == nil || len(entries) == 0 || inv.CalculatedDistance == 0 {
		return 0
	}

	from := inv.IssueDate.AddDate(0, 0, -3)
	to := inv.IssueDate.AddDate(0, 0, 3)

	var relevant []models.FuelEntry
	for _, e := range entries {
		if !e.Date.Before(from) && !e.Date.After(to) {
			relevant = append(relevant, e)
		}
	}

	if driver := findDriver(drivers, inv.DriverID); driver != nil {
		var owned []models.FuelEntry
		for _, e := range relevant {
			v := findVehicle(vehicles, e.VehicleID)
			if v != nil && (v.DriverName == driver.Name || v.DriverPhone == driver.Phone) {
				owned = append(owned, e)
			}
		}
		relevant = owned
	}

	if len(relevant) == 0 {
		return 0
	}

	var priceSum, spent float64
	for _, e := range relevant {
		priceSum += e.PricePerLiter
		spent += e.Amount
	}

	estimatedLiters := float64(inv.CalculatedDistance) / 100 * avgTripConsumption
	estimated := estimatedLiters * priceSum / float64(len(relevant))

	return math.Min(estimated, spent)
}

// TripCost computes the full per-kilometre breakdown for an invoice.
// ok is false when the invoice has no usable distance.
func TripCost(inv models.Invoice, drivers []models.Driver, vehicles []models.Vehicle, entries []models.FuelEntry) (TripCostBreakdown, bool) {
	if inv.CalculatedDistance == 0 {
		return TripCostBreakdown{}, false
	}

	var dailyCost float64
	if d := findDriver(drivers, inv.DriverID); d != nil && d.DailyCost != nil {
		dailyCost = *d.DailyCost
	}

	return TripCostPerKm(TripCostParams{
		Revenue:         inv.Amount,
		Distance:        inv.CalculatedDistance,
		FuelCost:        FuelCostForTrip(inv, drivers, vehicles, entries),
		DriverDailyCost: dailyCost,
		TripDays:        TripDays(inv.PaymentTerm, inv.CalculatedDistance),
		ForwarderCost:   inv.Amount * forwarderShare,
	}), true
}

func findDriver(drivers []models.Driver, id string) *models.Driver {
	if id == "" {
		return nil
	}
	for i := range drivers {
		if drivers[i].ID == id {
			return &drivers[i]
		}
	}
	return nil
}

func findVehicle(vehicles []models.Vehicle, id string) *models.Vehicle {
	for i := range vehicles {
		if vehicles[i].ID == id {
			return &vehicles[i]
		}
	}
	return nil
}
