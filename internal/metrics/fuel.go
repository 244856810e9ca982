// Package metrics derives figures from the synced collections: fuel
// consumption chains, per-trip economics, payment scoring, month to
// month comparisons and period reports. Everything here is a pure
// function over in-memory snapshots; persistence stays in the store.
package metrics

import (
	"sort"

	"github.com/OMEGA178/faktury/internal/models"
)

// ChainFields derives the distance and consumption of a refuelling
// from the chronologically previous entry of the same vehicle. The
// consumption pairs the previous fill-up's litres with the distance
// covered since. Both results are nil when there is no previous entry
// or the odometer did not move forward.
func ChainFields(prev *models.FuelEntry, odometerReading int) (*int, *float64) {
	if prev == nil || odometerReading <= prev.OdometerReading {
		return nil, nil
	}
	distance := odometerReading - prev.OdometerReading
	consumption := prev.Liters / float64(distance) * 100
	return &distance, &consumption
}

// Chain recomputes the distance and consumption fields of every entry,
// pairing each with its chronological predecessor on the same vehicle.
// The input slice is not modified.
func Chain(entries []models.FuelEntry) []models.FuelEntry {
	out := make([]models.FuelEntry, len(entries))
	copy(out, entries)

	byVehicle := make(map[string][]*models.FuelEntry)
	for i := range out {
		byVehicle[out[i].VehicleID] = append(byVehicle[out[i].VehicleID], &out[i])
	}

	for _, group := range byVehicle {
		// stable so same-day entries keep their insertion order
		sort.SliceStable(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })
		for i, e := range group {
			if i == 0 {
				e.DistanceSinceLastFuel, e.CalculatedConsumption = nil, nil
				continue
			}
			e.DistanceSinceLastFuel, e.CalculatedConsumption = ChainFields(group[i-1], e.OdometerReading)
		}
	}
	return out
}

// VehicleStat aggregates one vehicle's refuelling history.
type VehicleStat struct {
	Vehicle          models.Vehicle
	TotalLiters      float64
	TotalCost        float64
	AvgPricePerLiter float64
	AvgConsumption   float64
	LastConsumption  float64
	ConsumptionDiff  float64
	TotalDistance    int
	FuelingsCount    int
	LatestOdometer   int
}

// VehicleStats computes per-vehicle aggregates over the fuel history.
// A vehicle without entries falls back to its initial odometer reading
// and zero totals.
func VehicleStats(vehicles []models.Vehicle, entries []models.FuelEntry) []VehicleStat {
	out := make([]VehicleStat, 0, len(vehicles))
	for _, v := range vehicles {
		var own []models.FuelEntry
		for _, e := range entries {
			if e.VehicleID == v.ID {
				own = append(own, e)
			}
		}
		// newest first, same-day entries keep their insertion order
		sort.SliceStable(own, func(i, j int) bool { return own[i].Date.After(own[j].Date) })

		stat := VehicleStat{Vehicle: v, FuelingsCount: len(own), LatestOdometer: v.InitialOdometerReading}

		var consumptionSum float64
		var consumptionN int
		lastSet := false
		for _, e := range own {
			stat.TotalLiters += e.Liters
			stat.TotalCost += e.Amount
			if e.CalculatedConsumption != nil {
				consumptionSum += *e.CalculatedConsumption
				consumptionN++
				if !lastSet {
					stat.LastConsumption = *e.CalculatedConsumption
					lastSet = true
				}
			}
		}

		if stat.TotalLiters > 0 {
			stat.AvgPricePerLiter = stat.TotalCost / stat.TotalLiters
		}
		if consumptionN > 0 {
			stat.AvgConsumption = consumptionSum / float64(consumptionN)
		}
		stat.ConsumptionDiff = stat.LastConsumption - v.ExpectedFuelConsumption
		if len(own) > 0 {
			stat.LatestOdometer = own[0].OdometerReading
			stat.TotalDistance = own[0].OdometerReading - own[len(own)-1].OdometerReading
		}

		out = append(out, stat)
	}
	return out
}
