// Package availability вычисляет календарь и свободные слоты по снимку бронирований.
// Все функции чистые: входные срезы не изменяются, результат всегда новое значение.
package availability

import (
	"time"

	"github.com/Freeeeeet/condo_bot/internal/model"
)

// CalendarDay ячейка сетки месяца
type CalendarDay struct {
	Date      model.Date
	InMonth   bool // принадлежит отображаемому месяцу
	IsToday   bool
	IsPast    bool // строго раньше сегодняшнего дня, выбрать нельзя
	Occupancy Occupancy
}

// Selectable можно ли выбрать день для бронирования
func (d CalendarDay) Selectable() bool {
	return !d.IsPast
}

// BuildMonthGrid строит сетку месяца из полных недель.
// Начало: ближайший firstWeekday не позже 1-го числа.
// Конец: первый firstWeekday после последнего дня месяца (не включая его).
func BuildMonthGrid(ref, today model.Date, firstWeekday time.Weekday) []CalendarDay {
	first := ref.FirstOfMonth()
	last := ref.LastOfMonth()

	back := (int(first.Weekday()) - int(firstWeekday) + 7) % 7
	current := first.AddDays(-back)

	days := make([]CalendarDay, 0, 42)
	for !current.After(last) || current.Weekday() != firstWeekday {
		days = append(days, CalendarDay{
			Date:    current,
			InMonth: current.SameMonth(ref),
			IsToday: current == today,
			IsPast:  current.Before(today),
		})
		current = current.AddDays(1)
	}

	return days
}

// AnnotateGrid заполняет Occupancy каждой ячейки. Исходная сетка не меняется.
func AnnotateGrid(grid []CalendarDay, reservations []model.Reservation) []CalendarDay {
	byDate := groupActiveByDate(reservations)

	out := make([]CalendarDay, len(grid))
	for i, day := range grid {
		day.Occupancy = occupancyOf(byDate[day.Date])
		out[i] = day
	}
	return out
}

// Weeks разбивает сетку на строки по 7 дней
func Weeks(grid []CalendarDay) [][]CalendarDay {
	weeks := make([][]CalendarDay, 0, len(grid)/7+1)
	for start := 0; start < len(grid); start += 7 {
		end := start + 7
		if end > len(grid) {
			end = len(grid)
		}
		weeks = append(weeks, grid[start:end])
	}
	return weeks
}

// WeekdayOrder дни недели в порядке колонок сетки
func WeekdayOrder(firstWeekday time.Weekday) []time.Weekday {
	order := make([]time.Weekday, 7)
	for i := range order {
		order[i] = time.Weekday((int(firstWeekday) + i) % 7)
	}
	return order
}
