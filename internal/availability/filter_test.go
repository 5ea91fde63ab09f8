package availability

import (
	"testing"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangePartition(t *testing.T) {
	today := model.MustParseDate("2024-06-10")
	var reservations []model.Reservation
	for d := today.AddDays(-20); !d.After(today.AddDays(20)); d = d.AddDays(1) {
		reservations = append(reservations, newReservation(d.String(), "08:00-10:00", model.ReservationStatusPending))
	}

	upcoming := FilterByRange(reservations, today, RangeUpcoming)
	past := FilterByRange(reservations, today, RangePast)
	all := FilterByRange(reservations, today, RangeAll)

	assert.Len(t, all, len(reservations))
	assert.Equal(t, len(reservations), len(upcoming)+len(past))

	ids := make(map[uuid.UUID]int)
	for _, r := range upcoming {
		ids[r.ID]++
	}
	for _, r := range past {
		ids[r.ID]++
	}
	for _, r := range reservations {
		assert.Equal(t, 1, ids[r.ID])
	}

	for _, r := range FilterByRange(reservations, today, RangeThisWeek) {
		assert.True(t, InRange(r.Date, today, RangeUpcoming), "thisWeek must be a subset of upcoming")
	}
}

func TestInRange(t *testing.T) {
	today := model.MustParseDate("2024-06-10")

	tests := []struct {
		date string
		rng  Range
		want bool
	}{
		{"2024-06-10", RangeUpcoming, true},
		{"2024-06-09", RangeUpcoming, false},
		{"2024-06-09", RangePast, true},
		{"2024-06-10", RangePast, false},
		{"2024-06-10", RangeThisWeek, true},
		{"2024-06-17", RangeThisWeek, true},
		{"2024-06-18", RangeThisWeek, false},
		{"2024-06-09", RangeThisWeek, false},
		{"1990-01-01", RangeAll, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.rng)+" "+tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(model.MustParseDate(tt.date), today, tt.rng))
		})
	}
}

func TestParseRange(t *testing.T) {
	for in, want := range map[string]Range{
		"":         RangeAll,
		"ALL":      RangeAll,
		"upcoming": RangeUpcoming,
		"past":     RangePast,
		"thisWeek": RangeThisWeek,
		"week":     RangeThisWeek,
	} {
		got, err := ParseRange(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRange("tomorrow")
	assert.ErrorIs(t, err, ErrUnknownRange)
}

func TestFilter(t *testing.T) {
	a := newReservation("2024-06-10", "08:00-10:00", model.ReservationStatusPending)
	a.ResidentName, a.ApartmentNumber, a.Event = "Ana Souza", "101", "Aniversário"
	b := newReservation("2024-06-11", "08:00-10:00", model.ReservationStatusConfirmed)
	b.ResidentName, b.ApartmentNumber, b.Event = "Bruno Lima", "202", "Churrasco"
	c := newReservation("2024-06-12", "08:00-10:00", model.ReservationStatusCancelled)
	c.ResidentName, c.ApartmentNumber, c.Event = "Carla Dias", "1015", "Reunião"
	reservations := []model.Reservation{a, b, c}

	confirmed := model.ReservationStatusConfirmed

	assert.Len(t, Filter(reservations, Query{}), 3)
	assert.Equal(t, []model.Reservation{b}, Filter(reservations, Query{Status: &confirmed}))
	assert.Equal(t, []model.Reservation{a, c}, Filter(reservations, Query{Search: "101"}))
	assert.Equal(t, []model.Reservation{b}, Filter(reservations, Query{Search: "  CHURRASCO "}))
	assert.Empty(t, Filter(reservations, Query{Search: "ana", Status: &confirmed}))
}

func TestSort(t *testing.T) {
	a := newReservation("2024-06-12", "08:00-10:00", model.ReservationStatusPending)
	a.ResidentName = "carla"
	b := newReservation("2024-06-10", "08:00-10:00", model.ReservationStatusPending)
	b.ResidentName = "Ana"
	c := newReservation("2024-06-10", "10:00-12:00", model.ReservationStatusPending)
	c.ResidentName = "bruno"
	reservations := []model.Reservation{a, b, c}

	assert.Equal(t, []model.Reservation{b, c, a}, Sort(reservations, SortByDate, Asc))
	assert.Equal(t, []model.Reservation{a, b, c}, Sort(reservations, SortByDate, Desc))
	assert.Equal(t, []model.Reservation{b, c, a}, Sort(reservations, SortByName, Asc))

	// вход не изменён
	assert.Equal(t, a.ID, reservations[0].ID)
}

func TestSummarize(t *testing.T) {
	today := model.MustParseDate("2024-06-10")
	reservations := []model.Reservation{
		newReservation("2024-06-10", "08:00-10:00", model.ReservationStatusConfirmed),
		newReservation("2024-07-10", "08:00-10:00", model.ReservationStatusConfirmed),
		newReservation("2024-07-11", "08:00-10:00", model.ReservationStatusConfirmed),
		newReservation("2024-06-01", "08:00-10:00", model.ReservationStatusConfirmed),
		newReservation("2024-06-15", "08:00-10:00", model.ReservationStatusPending),
		newReservation("2024-06-16", "08:00-10:00", model.ReservationStatusCancelled),
	}

	assert.Equal(t, Summary{
		Total:     6,
		Pending:   1,
		Confirmed: 4,
		Cancelled: 1,
		Upcoming:  2,
	}, Summarize(reservations, today))

	assert.Equal(t, Summary{}, Summarize(nil, today))
}

func TestUpcomingConfirmed(t *testing.T) {
	today := model.MustParseDate("2024-06-10")
	late := newReservation("2024-06-20", "08:00-10:00", model.ReservationStatusConfirmed)
	early := newReservation("2024-06-11", "08:00-10:00", model.ReservationStatusConfirmed)
	mid := newReservation("2024-06-15", "08:00-10:00", model.ReservationStatusConfirmed)
	reservations := []model.Reservation{
		late,
		newReservation("2024-06-01", "08:00-10:00", model.ReservationStatusConfirmed),
		early,
		newReservation("2024-06-12", "08:00-10:00", model.ReservationStatusPending),
		mid,
	}

	assert.Equal(t, []model.Reservation{early, mid}, UpcomingConfirmed(reservations, today, 2))
	assert.Equal(t, []model.Reservation{early, mid, late}, UpcomingConfirmed(reservations, today, 0))
}

func TestApplyStatus(t *testing.T) {
	at := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	pending := newReservation("2024-06-10", "08:00-10:00", model.ReservationStatusPending)
	cancelled := newReservation("2024-06-11", "08:00-10:00", model.ReservationStatusCancelled)
	reservations := []model.Reservation{pending, cancelled}

	t.Run("confirm does not mutate input", func(t *testing.T) {
		reason := "ignored"
		out, err := ApplyStatus(reservations, pending.ID, model.ReservationStatusConfirmed, &reason, at)
		require.NoError(t, err)

		assert.Equal(t, model.ReservationStatusConfirmed, out[0].Status)
		assert.Equal(t, at, out[0].UpdatedAt)
		assert.Nil(t, out[0].CancellationReason)
		assert.Equal(t, model.ReservationStatusPending, reservations[0].Status)
		assert.Equal(t, cancelled, out[1])
	})

	t.Run("cancel keeps reason", func(t *testing.T) {
		reason := "desistência"
		out, err := ApplyStatus(reservations, pending.ID, model.ReservationStatusCancelled, &reason, at)
		require.NoError(t, err)
		require.NotNil(t, out[0].CancellationReason)
		assert.Equal(t, "desistência", *out[0].CancellationReason)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		for _, to := range []model.ReservationStatus{model.ReservationStatusPending, model.ReservationStatusConfirmed} {
			_, err := ApplyStatus(reservations, cancelled.ID, to, nil, at)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := ApplyStatus(reservations, uuid.New(), model.ReservationStatusConfirmed, nil, at)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestInsertAndOnDate(t *testing.T) {
	base := []model.Reservation{newReservation("2024-06-10", "08:00-10:00", model.ReservationStatusPending)}
	added := newReservation("2024-06-10", "10:00-12:00", model.ReservationStatusCancelled)

	out := Insert(base, added)
	assert.Len(t, base, 1)
	assert.Len(t, out, 2)

	assert.Len(t, OnDate(out, model.MustParseDate("2024-06-10")), 2)
	assert.Empty(t, OnDate(out, model.MustParseDate("2024-06-11")))
}
