package availability

import "github.com/Freeeeeet/condo_bot/internal/model"

// DayStatus занятость дня для календаря
type DayStatus string

const (
	DayAvailable DayStatus = "available"
	DayPending   DayStatus = "pending"
	DayBooked    DayStatus = "booked"
)

// Occupancy статус дня и число активных бронирований на него
type Occupancy struct {
	Status DayStatus
	Count  int
}

// DayOccupancy вычисляет статус дня.
// confirmed важнее pending: если есть хотя бы одно подтверждённое, день booked.
func DayOccupancy(date model.Date, reservations []model.Reservation) Occupancy {
	return occupancyOf(activeOn(date, reservations))
}

func occupancyOf(active []model.Reservation) Occupancy {
	if len(active) == 0 {
		return Occupancy{Status: DayAvailable}
	}

	status := DayPending
	for _, r := range active {
		if r.Status == model.ReservationStatusConfirmed {
			status = DayBooked
			break
		}
	}

	return Occupancy{Status: status, Count: len(active)}
}

// activeOn бронирования на дату, кроме отменённых, в исходном порядке
func activeOn(date model.Date, reservations []model.Reservation) []model.Reservation {
	var out []model.Reservation
	for _, r := range reservations {
		if r.Date == date && r.IsActive() {
			out = append(out, r)
		}
	}
	return out
}

func groupActiveByDate(reservations []model.Reservation) map[model.Date][]model.Reservation {
	byDate := make(map[model.Date][]model.Reservation)
	for _, r := range reservations {
		if r.IsActive() {
			byDate[r.Date] = append(byDate[r.Date], r)
		}
	}
	return byDate
}

// SlotState состояние одного слота выбранного дня
type SlotState struct {
	Label       string
	Reservation *model.Reservation // nil, если слот не забронирован
	// Blocked слот не забронирован, но закрыт политикой (весь день против частичных слотов)
	Blocked bool
}

// Free можно ли забронировать слот; совпадает с AvailableSlots
func (s SlotState) Free() bool {
	return s.Reservation == nil && !s.Blocked
}

// SlotStates состояние каждого слота каталога на дату, в порядке каталога.
// Используется для отображения под выбранным днём.
func SlotStates(date model.Date, reservations []model.Reservation, labels []string, policy SlotPolicy) []SlotState {
	available := make(map[string]struct{})
	for _, label := range AvailableSlots(date, reservations, labels, policy) {
		available[label] = struct{}{}
	}

	taken := make(map[string]model.Reservation)
	for _, r := range activeOn(date, reservations) {
		if _, exists := taken[r.TimeSlot]; !exists {
			taken[r.TimeSlot] = r
		}
	}

	states := make([]SlotState, 0, len(labels))
	for _, label := range labels {
		state := SlotState{Label: label}
		if r, ok := taken[label]; ok {
			r := r
			state.Reservation = &r
		} else if _, ok := available[label]; !ok {
			state.Blocked = true
		}
		states = append(states, state)
	}
	return states
}
