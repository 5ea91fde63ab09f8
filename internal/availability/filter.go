package availability

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/model"
)

// ErrUnknownRange неизвестный тег диапазона
var ErrUnknownRange = errors.New("unknown date range")

// Range относительный диапазон дат
type Range string

const (
	RangeAll      Range = "all"
	RangeUpcoming Range = "upcoming" // date >= today
	RangePast     Range = "past"     // date < today
	RangeThisWeek Range = "thisWeek" // today <= date <= today+7
)

// thisWeekDays длина окна thisWeek от сегодняшнего дня включительно
const thisWeekDays = 7

// ParseRange разбирает тег диапазона. Пустая строка означает all.
func ParseRange(s string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return RangeAll, nil
	case "upcoming":
		return RangeUpcoming, nil
	case "past":
		return RangePast, nil
	case "thisweek", "this_week", "week":
		return RangeThisWeek, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
	}
}

// InRange попадает ли дата в диапазон относительно today
func InRange(date, today model.Date, rng Range) bool {
	switch rng {
	case RangeUpcoming:
		return !date.Before(today)
	case RangePast:
		return date.Before(today)
	case RangeThisWeek:
		return !date.Before(today) && !date.After(today.AddDays(thisWeekDays))
	default:
		return true
	}
}

// FilterByRange оставляет бронирования из диапазона, сохраняя порядок
func FilterByRange(reservations []model.Reservation, today model.Date, rng Range) []model.Reservation {
	out := make([]model.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if InRange(r.Date, today, rng) {
			out = append(out, r)
		}
	}
	return out
}

// Query поиск по списку бронирований
type Query struct {
	Search string                   // подстрока имени, квартиры или события, без учёта регистра
	Status *model.ReservationStatus // nil = любой статус
}

// Filter применяет Query, сохраняя порядок
func Filter(reservations []model.Reservation, q Query) []model.Reservation {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if q.Status != nil && r.Status != *q.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.ResidentName), needle) &&
			!strings.Contains(strings.ToLower(r.ApartmentNumber), needle) &&
			!strings.Contains(strings.ToLower(r.Event), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortKey поле сортировки
type SortKey string

const (
	SortByDate SortKey = "date"
	SortByName SortKey = "name"
)

// Order направление сортировки
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort возвращает отсортированную копию. Сортировка стабильная.
// По дате при равенстве дат порядок слотов не меняется.
func Sort(reservations []model.Reservation, key SortKey, order Order) []model.Reservation {
	out := make([]model.Reservation, len(reservations))
	copy(out, reservations)

	less := func(a, b model.Reservation) int {
		if key == SortByName {
			return strings.Compare(strings.ToLower(a.ResidentName), strings.ToLower(b.ResidentName))
		}
		return a.Date.Compare(b.Date)
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := less(out[i], out[j])
		if order == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Summary сводка для панели администратора
type Summary struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
	Upcoming  int // подтверждённые на ближайшие UpcomingWindowDays дней
}

// UpcomingWindowDays окно "ближайших" подтверждённых бронирований
const UpcomingWindowDays = 30

// Summarize считает сводку по статусам
func Summarize(reservations []model.Reservation, today model.Date) Summary {
	s := Summary{Total: len(reservations)}
	horizon := today.AddDays(UpcomingWindowDays)

	for _, r := range reservations {
		switch r.Status {
		case model.ReservationStatusPending:
			s.Pending++
		case model.ReservationStatusConfirmed:
			s.Confirmed++
			if !r.Date.Before(today) && !r.Date.After(horizon) {
				s.Upcoming++
			}
		case model.ReservationStatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

// UpcomingConfirmed ближайшие подтверждённые бронирования по возрастанию даты
func UpcomingConfirmed(reservations []model.Reservation, today model.Date, limit int) []model.Reservation {
	confirmed := model.ReservationStatusConfirmed
	upcoming := Filter(FilterByRange(reservations, today, RangeUpcoming), Query{Status: &confirmed})
	sorted := Sort(upcoming, SortByDate, Asc)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
