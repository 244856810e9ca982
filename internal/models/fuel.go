package models

import (
	"errors"
	"time"
)

// FuelEntry is a single refuelling of a vehicle.
//
// PricePerLiter equals Amount/Liters at creation time and is never
// re-derived. CalculatedConsumption and DistanceSinceLastFuel are
// filled from the chronologically previous entry of the same vehicle,
// and only when the odometer reading strictly increased; otherwise
// both stay nil.
type FuelEntry struct {
	ID              string    `json:"id" firestore:"id"`
	VehicleID       string    `json:"vehicleId" firestore:"vehicleId"`
	Date            time.Time `json:"date" firestore:"date"`
	Amount          float64   `json:"amount" firestore:"amount"`
	Liters          float64   `json:"liters" firestore:"liters"`
	PricePerLiter   float64   `json:"pricePerLiter" firestore:"pricePerLiter"`
	OdometerReading int       `json:"odometerReading" firestore:"odometerReading"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`

	CalculatedConsumption *float64 `json:"calculatedConsumption,omitempty" firestore:"calculatedConsumption,omitempty"`
	DistanceSinceLastFuel *int     `json:"distanceSinceLastFuel,omitempty" firestore:"distanceSinceLastFuel,omitempty"`
}

// EntityID implements Entity.
func (f FuelEntry) EntityID() string { return f.ID }

// Validate implements Entity.
func (f FuelEntry) Validate() error {
	if f.ID == "" {
		return errors.New("fuel entry: missing id")
	}
	if f.VehicleID == "" {
		return errors.New("fuel entry: missing vehicle id")
	}
	if f.Liters <= 0 {
		return errors.New("fuel entry: liters must be positive")
	}
	return nil
}
