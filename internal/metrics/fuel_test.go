package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OMEGA178/faktury/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestChainFields(t *testing.T) {
	prev := &models.FuelEntry{Liters: 50, OdometerReading: 1000}

	tests := []struct {
		name            string
		prev            *models.FuelEntry
		odometer        int
		wantDistance    int
		wantConsumption float64
		wantNil         bool
	}{
		{name: "no previous entry", prev: nil, odometer: 1500, wantNil: true},
		{name: "odometer unchanged", prev: prev, odometer: 1000, wantNil: true},
		{name: "odometer went backwards", prev: prev, odometer: 900, wantNil: true},
		{name: "odometer advanced", prev: prev, odometer: 1500, wantDistance: 500, wantConsumption: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, cons := ChainFields(tt.prev, tt.odometer)
			if tt.wantNil {
				assert.Nil(t, dist)
				assert.Nil(t, cons)
				return
			}
			require.NotNil(t, dist)
			require.NotNil(t, cons)
			assert.Equal(t, tt.wantDistance, *dist)
			assert.InDelta(t, tt.wantConsumption, *cons, 1e-9)
		})
	}
}

func TestChain_PairsByVehicleAndDate(t *testing.T) {
	// deliberately out of chronological order, two vehicles interleaved
	entries := []models.FuelEntry{
		{ID: "a2", VehicleID: "v1", Date: day(2024, 3, 10), Liters: 60, OdometerReading: 1500},
		{ID: "b1", VehicleID: "v2", Date: day(2024, 3, 5), Liters: 40, OdometerReading: 200},
		{ID: "a1", VehicleID: "v1", Date: day(2024, 3, 1), Liters: 50, OdometerReading: 1000},
		{ID: "b2", VehicleID: "v2", Date: day(2024, 3, 12), Liters: 45, OdometerReading: 700},
	}

	got := Chain(entries)

	byID := make(map[string]models.FuelEntry, len(got))
	for _, e := range got {
		byID[e.ID] = e
	}

	assert.Nil(t, byID["a1"].DistanceSinceLastFuel, "first entry of a vehicle has no predecessor")
	require.NotNil(t, byID["a2"].DistanceSinceLastFuel)
	assert.Equal(t, 500, *byID["a2"].DistanceSinceLastFuel)
	assert.InDelta(t, 10, *byID["a2"].CalculatedConsumption, 1e-9, "previous fill-up's litres over the interval")

	require.NotNil(t, byID["b2"].DistanceSinceLastFuel)
	assert.Equal(t, 500, *byID["b2"].DistanceSinceLastFuel)
	assert.InDelta(t, 8, *byID["b2"].CalculatedConsumption, 1e-9)

	// input untouched
	assert.Nil(t, entries[0].DistanceSinceLastFuel)
}

func TestChain_OdometerRollbackLeavesGap(t *testing.T) {
	entries := []models.FuelEntry{
		{ID: "e1", VehicleID: "v1", Date: day(2024, 3, 1), Liters: 50, OdometerReading: 1000},
		{ID: "e2", VehicleID: "v1", Date: day(2024, 3, 5), Liters: 55, OdometerReading: 800},
	}

	got := Chain(entries)

	for _, e := range got {
		if e.ID == "e2" {
			assert.Nil(t, e.DistanceSinceLastFuel)
			assert.Nil(t, e.CalculatedConsumption)
		}
	}
}

func TestChain_SameDayEntriesKeepInputOrder(t *testing.T) {
	// two fill-ups on the same day: the sort must not swap them, or
	// the predecessor pairing (and the consumption) flips between runs
	entries := []models.FuelEntry{
		{ID: "e1", VehicleID: "v1", Date: day(2024, 3, 1), Liters: 50, OdometerReading: 1000},
		{ID: "e2", VehicleID: "v1", Date: day(2024, 3, 5), Liters: 30, OdometerReading: 1200},
		{ID: "e3", VehicleID: "v1", Date: day(2024, 3, 5), Liters: 45, OdometerReading: 1500},
	}

	got := Chain(entries)

	byID := make(map[string]models.FuelEntry, len(got))
	for _, e := range got {
		byID[e.ID] = e
	}

	require.NotNil(t, byID["e2"].DistanceSinceLastFuel)
	assert.Equal(t, 200, *byID["e2"].DistanceSinceLastFuel)
	assert.InDelta(t, 25, *byID["e2"].CalculatedConsumption, 1e-9)

	require.NotNil(t, byID["e3"].DistanceSinceLastFuel)
	assert.Equal(t, 300, *byID["e3"].DistanceSinceLastFuel)
	assert.InDelta(t, 10, *byID["e3"].CalculatedConsumption, 1e-9)
}

func TestVehicleStats(t *testing.T) {
	c1, c2 := 10.0, 12.0
	vehicles := []models.Vehicle{
		{ID: "v1", Brand: "Volvo", ExpectedFuelConsumption: 11, InitialOdometerReading: 500},
		{ID: "v2", Brand: "MAN", InitialOdometerReading: 90000},
	}
	entries := []models.FuelEntry{
		{ID: "f1", VehicleID: "v1", Date: day(2024, 3, 1), Liters: 50, Amount: 300, OdometerReading: 1000},
		{ID: "f2", VehicleID: "v1", Date: day(2024, 3, 10), Liters: 60, Amount: 390, OdometerReading: 1500, CalculatedConsumption: &c1},
		{ID: "f3", VehicleID: "v1", Date: day(2024, 3, 20), Liters: 40, Amount: 260, OdometerReading: 2000, CalculatedConsumption: &c2},
	}

	stats := VehicleStats(vehicles, entries)
	require.Len(t, stats, 2)

	v1 := stats[0]
	assert.Equal(t, 3, v1.FuelingsCount)
	assert.InDelta(t, 150, v1.TotalLiters, 1e-9)
	assert.InDelta(t, 950, v1.TotalCost, 1e-9)
	assert.InDelta(t, 950.0/150.0, v1.AvgPricePerLiter, 1e-9)
	assert.InDelta(t, 11, v1.AvgConsumption, 1e-9)
	assert.InDelta(t, 12, v1.LastConsumption, 1e-9, "newest chained entry wins")
	assert.InDelta(t, 1, v1.ConsumptionDiff, 1e-9)
	assert.Equal(t, 2000, v1.LatestOdometer)
	assert.Equal(t, 1000, v1.TotalDistance, "newest minus oldest reading")

	v2 := stats[1]
	assert.Zero(t, v2.FuelingsCount)
	assert.Equal(t, 90000, v2.LatestOdometer, "falls back to the initial reading")
	assert.Zero(t, v2.TotalDistance)
}
