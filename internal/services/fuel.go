package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OMEGA178/faktury/internal/common"
	"github.com/OMEGA178/faktury/internal/logging"
	"github.com/OMEGA178/faktury/internal/metrics"
	"github.com/OMEGA178/faktury/internal/models"
	"github.com/OMEGA178/faktury/internal/store"
)

// FuelService owns the fuel entry collection.
type FuelService struct {
	kv    *store.KV
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// NewFuelService returns a service over kv.
func NewFuelService(kv *store.KV, log logging.Logger) *FuelService {
	return &FuelService{kv: kv, log: log, now: time.Now, newID: uuid.NewString}
}

// AddFuelParams are the inputs for recording a refuelling.
type AddFuelParams struct {
	VehicleID       string
	Date            time.Time
	Amount          float64
	Liters          float64
	OdometerReading int
}

// Add records a refuelling. The price per litre is derived once, at
// creation; the consumption fields come from the vehicle's latest
// previous entry and stay empty unless the odometer moved forward.
func (s *FuelService) Add(ctx context.Context, p AddFuelParams) (models.FuelEntry, error) {
	if p.Liters <= 0 || p.Amount <= 0 {
		return models.FuelEntry{}, fmt.Errorf("%w: amount and liters must be positive", common.ErrorValidation)
	}

	vehicles, err := store.Get(ctx, s.kv, KeyVehicles, []models.Vehicle(nil))
	if err != nil {
		return models.FuelEntry{}, err
	}
	known := false
	for _, v := range vehicles {
		if v.ID == p.VehicleID {
			known = true
			break
		}
	}
	if !known {
		return models.FuelEntry{}, fmt.Errorf("vehicle %q: %w", p.VehicleID, common.ErrorNotFound)
	}

	entry := models.FuelEntry{
		ID:              "fuel-" + s.newID(),
		VehicleID:       p.VehicleID,
		Date:            p.Date,
		Amount:          p.Amount,
		Liters:          p.Liters,
		PricePerLiter:   p.Amount / p.Liters,
		OdometerReading: p.OdometerReading,
		CreatedAt:       s.now(),
	}

	if _, err := store.Update(ctx, s.kv, KeyFuelEntries, []models.FuelEntry(nil), func(list []models.FuelEntry) []models.FuelEntry {
		var last *models.FuelEntry
		for i := range list {
			if list[i].VehicleID != p.VehicleID {
				continue
			}
			if last == nil || list[i].Date.After(last.Date) {
				last = &list[i]
			}
		}
		entry.DistanceSinceLastFuel, entry.CalculatedConsumption = metrics.ChainFields(last, entry.OdometerReading)
		return append(list, entry)
	}); err != nil {
		return models.FuelEntry{}, err
	}

	s.log.Info(ctx, "fuel entry added", "id", entry.ID, "vehicle", entry.VehicleID, "liters", entry.Liters)
	return entry, nil
}

// Delete removes a refuelling. Chain fields of later entries are left
// as recorded.
func (s *FuelService) Delete(ctx context.Context, id string) error {
	found := false
	if _, err := store.Update(ctx, s.kv, KeyFuelEntries, []models.FuelEntry(nil), func(list []models.FuelEntry) []models.FuelEntry {
		out := list[:0]
		for _, e := range list {
			if e.ID == id {
				found = true
				continue
			}
			out = append(out, e)
		}
		return out
	}); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("fuel entry %q: %w", id, common.ErrorNotFound)
	}

	s.log.Info(ctx, "fuel entry deleted", "id", id)
	return nil
}

// Entries returns the current fuel snapshot.
func (s *FuelService) Entries(ctx context.Context) ([]models.FuelEntry, error) {
	return store.Get(ctx, s.kv, KeyFuelEntries, []models.FuelEntry(nil))
}
