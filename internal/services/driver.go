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

// DriverService owns the driver collection. Drivers are never hard
// deleted; invoices keep referencing them by id.
type DriverService struct {
	kv    *store.KV
	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// NewDriverService returns a service over kv.
func NewDriverService(kv *store.KV, log logging.Logger) *DriverService {
	return &DriverService{kv: kv, log: log, now: time.Now, newID: uuid.NewString}
}

// AddDriverParams are the inputs for registering a driver.
type AddDriverParams struct {
	Name               string
	Phone              string
	Email              string
	RegistrationNumber string
	CarBrand           string
	CarColor           string
	DailyCost          *float64
}

// Add registers a driver.
func (s *DriverService) Add(ctx context.Context, p AddDriverParams) (models.Driver, error) {
	d := models.Driver{
		ID:                 "driver-" + s.newID(),
		Name:               p.Name,
		Phone:              p.Phone,
		Email:              p.Email,
		RegistrationNumber: p.RegistrationNumber,
		CarBrand:           p.CarBrand,
		CarColor:           p.CarColor,
		DailyCost:          p.DailyCost,
		CreatedAt:          s.now(),
	}
	if err := d.Validate(); err != nil {
		return models.Driver{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	if _, err := store.Update(ctx, s.kv, KeyDrivers, []models.Driver(nil), func(list []models.Driver) []models.Driver {
		return append(list, d)
	}); err != nil {
		return models.Driver{}, err
	}

	s.log.Info(ctx, "driver added", "id", d.ID, "name", d.Name)
	return d, nil
}

// Edit replaces a driver's details, keeping the creation time.
func (s *DriverService) Edit(ctx context.Context, updated models.Driver) (models.Driver, error) {
	if err := updated.Validate(); err != nil {
		return models.Driver{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	found := false
	if _, err := store.Update(ctx, s.kv, KeyDrivers, []models.Driver(nil), func(list []models.Driver) []models.Driver {
		for i := range list {
			if list[i].ID != updated.ID {
				continue
			}
			found = true
			updated.CreatedAt = list[i].CreatedAt
			list[i] = updated
			return list
		}
		return list
	}); err != nil {
		return models.Driver{}, err
	}
	if !found {
		return models.Driver{}, fmt.Errorf("driver %q: %w", updated.ID, common.ErrorNotFound)
	}

	s.log.Info(ctx, "driver edited", "id", updated.ID, "name", updated.Name)
	return updated, nil
}

// Drivers returns the current driver snapshot.
func (s *DriverService) Drivers(ctx context.Context) ([]models.Driver, error) {
	return store.Get(ctx, s.kv, KeyDrivers, []models.Driver(nil))
}
