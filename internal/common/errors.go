// Package common defines shared sentinel errors used across the
// service and sync layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Input validation.
	ErrorValidation = errors.New("validation error")

	// Domain flow control.
	ErrAlreadyPaid    = errors.New("invoice already paid")
	ErrVehicleInUse   = errors.New("vehicle has fuel entries")
	ErrRemoteDisabled = errors.New("remote sync disabled")
)
