package common

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// ListPageSize бронирований на одной странице списка
const ListPageSize = 10

// BuildMonthScreen формирует календарь месяца с inline-кнопками дней
func BuildMonthScreen(view *service.MonthView) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"📅 <b>%s</b>\n\n"+
			"Выберите день для бронирования.\n\n"+
			"🟢 свободно  🟡 есть заявки  🔴 забронировано\n"+
			"<i>Прошедшие дни выбрать нельзя.</i>",
		formatting.FormatMonth(view.Month),
	)

	kb := keyboard.NewBuilder()

	header := make([]models.InlineKeyboardButton, 0, len(view.Weekdays))
	for _, wd := range view.Weekdays {
		header = append(header, keyboard.NoopButton(formatting.GetWeekdayShort(wd)))
	}
	kb.Row(header...)

	for _, week := range view.Weeks {
		row := make([]models.InlineKeyboardButton, 0, len(week))
		for _, day := range week {
			row = append(row, dayButton(day))
		}
		kb.Row(row...)
	}

	kb.Row(keyboard.MonthPagination(
		MonthData(view.Month.AddMonths(-1)),
		formatting.FormatMonth(view.Month),
		MonthData(view.Month.AddMonths(1)),
	)...)
	kb.Row(keyboard.Button("🖼 Показать картинкой", MonthImageData(view.Month)))
	kb.AddBackToMainButton()

	return text, kb.Build()
}

// dayButton кнопка дня: прошедшие и чужие месяцы некликабельны
func dayButton(day availability.CalendarDay) models.InlineKeyboardButton {
	if !day.InMonth {
		return keyboard.NoopButton(" ")
	}

	label := fmt.Sprintf("%d", day.Date.Day)
	if day.IsToday {
		label = "[" + label + "]"
	}
	if !day.Selectable() {
		return keyboard.NoopButton(label)
	}

	switch day.Occupancy.Status {
	case availability.DayPending:
		label += "🟡"
	case availability.DayBooked:
		label += "🔴"
	}
	return keyboard.Button(label, DayData(day.Date))
}

// BuildDayScreen формирует экран выбранного дня: состояние слотов и кнопки свободных
func BuildDayScreen(view *service.DayView, labels []string, isAdmin bool) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder

	dayStatus := formatting.GetDayStatusDisplay(view.Occupancy.Status)
	fmt.Fprintf(&sb, "📅 <b>%s</b>\n", formatting.FormatDateWithWeekday(view.Date))
	fmt.Fprintf(&sb, "Статус дня: %s", dayStatus)
	if view.Occupancy.Count > 0 {
		fmt.Fprintf(&sb, " (%d %s)", view.Occupancy.Count, formatting.PluralizeReservations(view.Occupancy.Count))
	}
	sb.WriteString("\n\n")

	for _, slot := range view.Slots {
		display := formatting.GetSlotStatusDisplay(slot)
		fmt.Fprintf(&sb, "%s %s", display.Emoji, formatting.Escape(slot.Label))
		if slot.Reservation != nil {
			fmt.Fprintf(&sb, " · кв. %s", formatting.Escape(slot.Reservation.ApartmentNumber))
			if isAdmin {
				fmt.Fprintf(&sb, " · %s", formatting.Escape(formatting.Truncate(slot.Reservation.Event, 30)))
			}
		}
		sb.WriteString("\n")
	}

	kb := keyboard.NewBuilder()

	switch {
	case view.Date.Before(view.Today):
		sb.WriteString("\n<i>Дата прошла, бронирование недоступно.</i>")
	case len(view.Available) == 0:
		sb.WriteString("\n<i>Свободных слотов нет.</i>")
	default:
		sb.WriteString("\nВыберите свободный слот:")
		available := make(map[string]struct{}, len(view.Available))
		for _, label := range view.Available {
			available[label] = struct{}{}
		}
		var buttons []models.InlineKeyboardButton
		for i, label := range labels {
			if _, ok := available[label]; ok {
				buttons = append(buttons, keyboard.Button("🕐 "+label, SlotData(view.Date, i)))
			}
		}
		kb.Grid(2, buttons...)
	}

	if isAdmin {
		var manage []models.InlineKeyboardButton
		for _, r := range view.Reservations {
			if !r.IsActive() {
				continue
			}
			display := formatting.GetReservationStatusDisplay(r.Status)
			manage = append(manage, keyboard.Button(
				fmt.Sprintf("%s %s · кв. %s", display.Emoji, r.TimeSlot, r.ApartmentNumber),
				ReservationData(ReservationPrefix, r.ID),
			))
		}
		kb.Grid(1, manage...)
	}

	kb.AddBackButton(MonthData(view.Date))
	return sb.String(), kb.Build()
}

// ReservationCard подробная карточка бронирования
func ReservationCard(r *model.Reservation) string {
	display := formatting.GetReservationStatusDisplay(r.Status)

	var sb strings.Builder
	sb.WriteString("📋 <b>Бронирование</b>\n\n")
	fmt.Fprintf(&sb, "📅 Дата: %s\n", formatting.FormatDateWithWeekday(r.Date))
	fmt.Fprintf(&sb, "🕐 Слот: %s\n", formatting.Escape(r.TimeSlot))
	fmt.Fprintf(&sb, "🏠 Квартира: %s\n", formatting.Escape(r.ApartmentNumber))
	fmt.Fprintf(&sb, "👤 Житель: %s\n", formatting.Escape(r.ResidentName))
	fmt.Fprintf(&sb, "🎉 Событие: %s\n", formatting.Escape(r.Event))
	fmt.Fprintf(&sb, "📞 Контакт: %s\n", formatting.Escape(r.Contact))
	if r.Notes != nil {
		fmt.Fprintf(&sb, "📝 Примечания: %s\n", formatting.Escape(*r.Notes))
	}
	fmt.Fprintf(&sb, "\n📊 Статус: %s\n", display)
	if r.CancellationReason != nil {
		fmt.Fprintf(&sb, "💬 Причина: %s\n", formatting.Escape(*r.CancellationReason))
	}
	fmt.Fprintf(&sb, "🕓 Заявка от %s", formatting.FormatDateTime(r.RequestedAt))

	return sb.String()
}

// ReservationKeyboard действия с бронированием; для жителя только навигация
func ReservationKeyboard(r *model.Reservation, isAdmin bool) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	if isAdmin {
		switch r.Status {
		case model.ReservationStatusPending:
			kb.Row(
				keyboard.Button("✅ Одобрить", ReservationData(ApprovePrefix, r.ID)),
				keyboard.Button("🚫 Отклонить", ReservationData(RejectPrefix, r.ID)),
			)
		case model.ReservationStatusConfirmed:
			kb.Row(keyboard.Button("❌ Отменить", ReservationData(CancelPrefix, r.ID)))
		}
	}

	kb.Row(keyboard.Button("📅 К календарю", MonthData(r.Date)))
	return kb.Build()
}

// ReservationListScreen параметры экрана списка бронирований
type ReservationListScreen struct {
	Title        string
	Reservations []model.Reservation
	Range        availability.Range
	Page         int
	RangePrefix  string
	ShowResident bool
}

// Build формирует текст и клавиатуру списка с фильтрами по диапазону и пагинацией
func (s ReservationListScreen) Build() (string, *models.InlineKeyboardMarkup) {
	total := len(s.Reservations)
	page, start, end := keyboard.PageBounds(s.Page, total, ListPageSize)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>%s</b>\n", s.Title)
	fmt.Fprintf(&sb, "Период: %s · %d %s\n\n",
		formatting.GetRangeName(s.Range), total, formatting.PluralizeReservations(total))

	if total == 0 {
		sb.WriteString("<i>Бронирований нет.</i>")
	}

	kb := keyboard.NewBuilder()
	kb.Row(rangeButtons(s.RangePrefix, s.Range)...)

	var items []models.InlineKeyboardButton
	for i := start; i < end; i++ {
		r := s.Reservations[i]
		display := formatting.GetReservationStatusDisplay(r.Status)
		fmt.Fprintf(&sb, "%d. %s %s · %s", i+1, display.Emoji, formatting.FormatDate(r.Date), formatting.Escape(r.TimeSlot))
		if s.ShowResident {
			fmt.Fprintf(&sb, " · кв. %s · %s", formatting.Escape(r.ApartmentNumber), formatting.Escape(r.ResidentName))
		}
		fmt.Fprintf(&sb, "\n    %s\n", formatting.Escape(formatting.Truncate(r.Event, 40)))

		items = append(items, keyboard.Button(fmt.Sprintf("%d", i+1), ReservationData(ReservationPrefix, r.ID)))
	}
	kb.Grid(5, items...)

	kb.Row(keyboard.PaginationButtons(s.RangePrefix+string(s.Range)+":", page, keyboard.TotalPages(total, ListPageSize))...)
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// rangeButtons ряд фильтров периода, текущий отмечен точкой
func rangeButtons(prefix string, current availability.Range) []models.InlineKeyboardButton {
	ranges := []availability.Range{
		availability.RangeUpcoming,
		availability.RangeThisWeek,
		availability.RangePast,
		availability.RangeAll,
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(ranges))
	for _, rng := range ranges {
		label := formatting.GetRangeName(rng)
		if rng == current {
			label = "• " + label
		}
		buttons = append(buttons, keyboard.Button(label, RangePageData(prefix, rng, 0)))
	}
	return buttons
}

// ReservationFormSummary черновик бронирования перед подтверждением
type ReservationFormSummary struct {
	Date      model.Date
	Slot      string
	Apartment string
	Resident  string
	Event     string
	Contact   string
	Notes     string
}

// Build текст подтверждения и кнопки Подтвердить/Отмена
func (f ReservationFormSummary) Build() (string, *models.InlineKeyboardMarkup) {
	notes := f.Notes
	if notes == "" {
		notes = "—"
	}

	text := fmt.Sprintf(
		"📝 <b>Проверьте заявку</b>\n\n"+
			"📅 Дата: %s\n"+
			"🕐 Слот: %s\n"+
			"🏠 Квартира: %s\n"+
			"👤 Житель: %s\n"+
			"🎉 Событие: %s\n"+
			"📞 Контакт: %s\n"+
			"📝 Примечания: %s\n\n"+
			"После подтверждения заявка уйдёт администратору на рассмотрение.",
		formatting.FormatDateWithWeekday(f.Date),
		formatting.Escape(f.Slot),
		formatting.Escape(f.Apartment),
		formatting.Escape(f.Resident),
		formatting.Escape(f.Event),
		formatting.Escape(f.Contact),
		formatting.Escape(notes),
	)

	kb := keyboard.NewBuilder().Row(keyboard.ConfirmCancelButtons(ReserveConfirm, ReserveAbort)...)
	return text, kb.Build()
}

// pendingPreview заявок, выводимых в /pending списком
const pendingPreview = 10

// BuildPendingScreen экран заявок, ожидающих решения
func BuildPendingScreen(pending []model.Reservation) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("⏳ <b>Заявки на одобрение</b>\n\n")

	kb := keyboard.NewBuilder()
	if len(pending) == 0 {
		sb.WriteString("<i>Новых заявок нет.</i>")
	}

	for i, r := range pending {
		if i >= pendingPreview {
			sb.WriteString("\n<i>Остальные заявки в /reservations</i>")
			break
		}
		sb.WriteString(formatting.FormatDate(r.Date) + " · " + formatting.Escape(r.TimeSlot) +
			" · кв. " + formatting.Escape(r.ApartmentNumber) + "\n    " +
			formatting.Escape(formatting.Truncate(r.Event, 40)) + "\n")
		kb.Row(keyboard.Button(
			"🔍 "+formatting.FormatDate(r.Date)+" "+r.TimeSlot,
			ReservationData(ReservationPrefix, r.ID),
		))
	}

	kb.Row(keyboard.Button("🔄 Обновить", PendingRefresh))
	kb.AddBackToMainButton()
	return sb.String(), kb.Build()
}
