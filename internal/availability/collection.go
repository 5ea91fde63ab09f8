package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/google/uuid"
)

var (
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrReservationNotFound = errors.New("reservation not found")
)

// ApplyStatus возвращает новую коллекцию, где запись id переведена в статус to.
// Исходный срез не изменяется. reason сохраняется только при отмене.
func ApplyStatus(reservations []model.Reservation, id uuid.UUID, to model.ReservationStatus, reason *string, at time.Time) ([]model.Reservation, error) {
	idx := -1
	for i := range reservations {
		if reservations[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrReservationNotFound, id)
	}

	current := reservations[idx]
	if !model.CanTransition(current.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	updated := current
	updated.Status = to
	updated.UpdatedAt = at
	if to == model.ReservationStatusCancelled && reason != nil && *reason != "" {
		r := *reason
		updated.CancellationReason = &r
	}

	out := make([]model.Reservation, len(reservations))
	copy(out, reservations)
	out[idx] = updated
	return out, nil
}

// Insert возвращает новую коллекцию с добавленным бронированием
func Insert(reservations []model.Reservation, r model.Reservation) []model.Reservation {
	out := make([]model.Reservation, len(reservations), len(reservations)+1)
	copy(out, reservations)
	return append(out, r)
}

// OnDate все бронирования на дату (включая отменённые), в исходном порядке
func OnDate(reservations []model.Reservation, date model.Date) []model.Reservation {
	var out []model.Reservation
	for _, r := range reservations {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}
