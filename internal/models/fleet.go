package models

import (
	"errors"
	"time"
)

// Vehicle is a truck in the fleet. DriverName/DriverPhone are free
// text, not a foreign key into the drivers collection.
type Vehicle struct {
	ID                      string    `json:"id" firestore:"id"`
	Brand                   string    `json:"brand" firestore:"brand"`
	Model                   string    `json:"model" firestore:"model"`
	Year                    int       `json:"year" firestore:"year"`
	Color                   string    `json:"color" firestore:"color"`
	EngineType              string    `json:"engineType" firestore:"engineType"`
	ExpectedFuelConsumption float64   `json:"expectedFuelConsumption" firestore:"expectedFuelConsumption"`
	InitialOdometerReading  int       `json:"initialOdometerReading" firestore:"initialOdometerReading"`
	DriverName              string    `json:"driverName" firestore:"driverName"`
	DriverPhone             string    `json:"driverPhone" firestore:"driverPhone"`
	CreatedAt               time.Time `json:"createdAt" firestore:"createdAt"`
}

// EntityID implements Entity.
func (v Vehicle) EntityID() string { return v.ID }

// Validate implements Entity.
func (v Vehicle) Validate() error {
	if v.ID == "" {
		return errors.New("vehicle: missing id")
	}
	if v.Brand == "" {
		return errors.New("vehicle: missing brand")
	}
	return nil
}

// Driver is a person assignable to invoices/trips.
type Driver struct {
	ID                 string    `json:"id" firestore:"id"`
	Name               string    `json:"name" firestore:"name"`
	Phone              string    `json:"phone" firestore:"phone"`
	Email              string    `json:"email,omitempty" firestore:"email,omitempty"`
	RegistrationNumber string    `json:"registrationNumber,omitempty" firestore:"registrationNumber,omitempty"`
	CarBrand           string    `json:"carBrand,omitempty" firestore:"carBrand,omitempty"`
	CarColor           string    `json:"carColor,omitempty" firestore:"carColor,omitempty"`
	DailyCost          *float64  `json:"dailyCost,omitempty" firestore:"dailyCost,omitempty"`
	CreatedAt          time.Time `json:"createdAt" firestore:"createdAt"`
}

// EntityID implements Entity.
func (d Driver) EntityID() string { return d.ID }

// Validate implements Entity.
func (d Driver) Validate() error {
	if d.ID == "" {
		return errors.New("driver: missing id")
	}
	if d.Name == "" {
		return errors.New("driver: missing name")
	}
	if d.Phone == "" {
		return errors.New("driver: missing phone")
	}
	return nil
}
