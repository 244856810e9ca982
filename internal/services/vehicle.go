package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OMEGA178/faktury/internal/common"
	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/models"
	"github.com/OMEGA178/faktury/internal/store"
)

// VehicleService owns the vehicle collection.
type VehicleService struct {
	kv    *store.KV
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// NewVehicleService returns a service over kv.
func NewVehicleService(kv *store.KV, log logging.Logger) *VehicleService {
	return &VehicleService{kv: kv, log: log, now: time.Now, newID: uuid.NewString}
}

// AddVehicleParams are the inputs for registering a vehicle.
type AddVehicleParams struct {
	Brand                   string
	Model                   string
	Year                    int
	Color                   string
	EngineType              string
	ExpectedFuelConsumption float64
	InitialOdometerReading  int
	DriverName              string
	DriverPhone             string
}

// Add registers a vehicle in the fleet.
func (s *VehicleService) Add(ctx context.Context, p AddVehicleParams) (models.Vehicle, error) {
	v := models.Vehicle{
		ID:                      "vehicle-" + s.newID(),
		Brand:                   p.Brand,
		Model:                   p.Model,
		Year:                    p.Year,
		Color:                   p.Color,
		EngineType:              p.EngineType,
		ExpectedFuelConsumption: p.ExpectedFuelConsumption,
		InitialOdometerReading:  p.InitialOdometerReading,
		DriverName:              p.DriverName,
		DriverPhone:             p.DriverPhone,
		CreatedAt:               s.now(),
	}
	if err := v.Validate(); err != nil {
		return models.Vehicle{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	if _, err := store.Update(ctx, s.kv, KeyVehicles, []models.Vehicle(nil), func(list []models.Vehicle) []models.Vehicle {
		return append(list, v)
	}); err != nil {
		return models.Vehicle{}, err
	}

	s.log.Info(ctx, "vehicle added", "id", v.ID, "brand", v.Brand, "model", v.Model)
	return v, nil
}

// Delete removes a vehicle. A vehicle that still has fuel entries is
// refused, otherwise its consumption history would dangle.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	entries, err := store.Get(ctx, s.kv, KeyFuelEntries, []models.FuelEntry(nil))
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.VehicleID == id {
			return fmt.Errorf("vehicle %q: %w", id, common.ErrVehicleInUse)
		}
	}

	found := false
	if _, err := store.Update(ctx, s.kv, KeyVehicles, []models.Vehicle(nil), func(list []models.Vehicle) []models.Vehicle {
		out := list[:0]
		for _, v := range list {
			if v.ID == id {
				found = true
				continue
			}
			out = append(out, v)
		}
		return out
	}); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("vehicle %q: %w", id, common.ErrorNotFound)
	}

	s.log.Info(ctx, "vehicle deleted", "id", id)
	return nil
}

// Vehicles returns the current fleet snapshot.
func (s *VehicleService) Vehicles(ctx context.Context) ([]models.Vehicle, error) {
	return store.Get(ctx, s.kv, KeyVehicles, []models.Vehicle(nil))
}
