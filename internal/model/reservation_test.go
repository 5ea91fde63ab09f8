package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReservationStatus(t *testing.T) {
	tests := []struct {
		in   string
		want ReservationStatus
	}{
		{"pending", ReservationStatusPending},
		{" Confirmed ", ReservationStatusConfirmed},
		{"cancelled", ReservationStatusCancelled},
		{"canceled", ReservationStatusCancelled},
	}
	for _, tt := range tests {
		got, err := ParseReservationStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseReservationStatus("expired")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestCanTransition(t *testing.T) {
	all := []ReservationStatus{ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled}
	allowed := map[[2]ReservationStatus]bool{
		{ReservationStatusPending, ReservationStatusConfirmed}:   true,
		{ReservationStatusPending, ReservationStatusCancelled}:   true,
		{ReservationStatusConfirmed, ReservationStatusCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]ReservationStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, CanTransition("archived", ReservationStatusPending))
}

func TestReservationIsActive(t *testing.T) {
	r := Reservation{Status: ReservationStatusPending}
	assert.True(t, r.IsActive())
	r.Status = ReservationStatusConfirmed
	assert.True(t, r.IsActive())
	r.Status = ReservationStatusCancelled
	assert.False(t, r.IsActive())
}
