package service

import (
	"errors"

	"github.com/Freeeeeet/condo_bot/internal/repository"
)

var (
	ErrForbidden         = errors.New("action not allowed for this user")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrPastDate          = errors.New("date is in the past")
	ErrTooFarAhead       = errors.New("date is too far ahead")
	ErrWeekendNotAllowed = errors.New("weekend reservations are disabled")
	ErrReservationLimit  = errors.New("active reservation limit reached")
	ErrApartmentRequired = errors.New("apartment number is required")
	ErrSelfDemote        = errors.New("admin cannot demote themselves")
	ErrStaleReservation  = repository.ErrStaleReservation
	ErrUnknownResident   = repository.ErrUnknownResident
)
