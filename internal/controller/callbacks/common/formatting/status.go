package formatting

import (
	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/model"
)

// StatusDisplay emoji и текст для отображения статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// String "emoji текст"
func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

// GetReservationStatusDisplay возвращает emoji и текст для статуса бронирования
func GetReservationStatusDisplay(status model.ReservationStatus) StatusDisplay {
	displays := map[model.ReservationStatus]StatusDisplay{
		model.ReservationStatusPending:   {"⏳", "Ожидает одобрения"},
		model.ReservationStatusConfirmed: {"✅", "Подтверждена"},
		model.ReservationStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetDayStatusDisplay отображение занятости дня
func GetDayStatusDisplay(status availability.DayStatus) StatusDisplay {
	switch status {
	case availability.DayAvailable:
		return StatusDisplay{"🟢", "Свободно"}
	case availability.DayPending:
		return StatusDisplay{"🟡", "Есть заявки"}
	case availability.DayBooked:
		return StatusDisplay{"🔴", "Забронировано"}
	default:
		return StatusDisplay{"❓", "Неизвестно"}
	}
}

// GetSlotStatusDisplay отображение слота на выбранный день
func GetSlotStatusDisplay(slot availability.SlotState) StatusDisplay {
	if slot.Free() {
		return StatusDisplay{"🟢", "Свободен"}
	}
	if slot.Reservation == nil {
		return StatusDisplay{"⚪️", "Недоступен"}
	}
	if slot.Reservation.Status == model.ReservationStatusConfirmed {
		return StatusDisplay{"🔴", "Занят"}
	}
	return StatusDisplay{"🟡", "Заявка на рассмотрении"}
}

// GetNoticePriorityDisplay отображение важности объявления
func GetNoticePriorityDisplay(priority model.NoticePriority) StatusDisplay {
	displays := map[model.NoticePriority]StatusDisplay{
		model.NoticePriorityLow:    {"⚪️", "Низкая"},
		model.NoticePriorityNormal: {"🔵", "Обычная"},
		model.NoticePriorityHigh:   {"🟠", "Высокая"},
		model.NoticePriorityUrgent: {"🔴", "Срочно"},
	}

	if display, ok := displays[priority]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetRoleDisplay отображение роли пользователя
func GetRoleDisplay(role model.UserRole) StatusDisplay {
	if role == model.UserRoleAdmin {
		return StatusDisplay{"👑", "Администратор"}
	}
	return StatusDisplay{"🏠", "Житель"}
}

// GetRangeName название диапазона дат для кнопок фильтра
func GetRangeName(rng availability.Range) string {
	switch rng {
	case availability.RangeUpcoming:
		return "Предстоящие"
	case availability.RangePast:
		return "Прошедшие"
	case availability.RangeThisWeek:
		return "Эта неделя"
	default:
		return "Все"
	}
}

// OnOff текст переключателя
func OnOff(v bool) string {
	if v {
		return "✅ Вкл"
	}
	return "⬜️ Выкл"
}
