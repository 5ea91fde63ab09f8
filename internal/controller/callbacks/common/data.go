package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/google/uuid"
)

// ========================
// Callback Data Patterns
// ========================
// Telegram ограничивает callback data 64 байтами, поэтому слот передаётся индексом в каталоге

// Календарь и форма бронирования
const (
	MonthPrefix       = "cal:"    // cal:2024-06
	MonthImagePrefix  = "calimg:" // calimg:2024-06
	DayPrefix         = "day:"    // day:2024-06-10
	SlotPrefix        = "slot:"   // slot:2024-06-10:3
	ReservationPrefix = "res:"    // res:<uuid>
	ReserveConfirm    = "res_confirm"
	ReserveAbort      = "res_abort"
	ReserveSkipNotes  = "res_skip_notes"
)

// Решения администратора
const (
	ApprovePrefix = "approve:"    // approve:<uuid>
	RejectPrefix  = "reject:"     // reject:<uuid>
	CancelPrefix  = "cancel_res:" // cancel_res:<uuid>
	SkipReason    = "skip_reason"
)

// Списки
const (
	MyRangePrefix       = "my_range:"  // my_range:upcoming:0 (диапазон:страница)
	AllRangePrefix      = "all_range:" // all_range:past:1
	PendingRefresh      = "pending_refresh"
	ResidentsPagePrefix = "residents_page:" // residents_page:2
)

// Жители, объявления, документы, настройки
const (
	RolePrefix           = "role:"          // role:<user_id>
	NoticeTogglePrefix   = "notice_toggle:" // notice_toggle:<uuid>
	NoticeDeletePrefix   = "notice_del:"    // notice_del:<uuid>
	NoticePriorityPrefix = "notice_prio:"   // notice_prio:high
	NoticeExpiryPrefix   = "notice_exp:"    // notice_exp:7
	DocCategoryPrefix    = "doc_cat:"       // doc_cat:ata, doc_cat: = все
	DocOpenPrefix        = "doc_open:"      // doc_open:<uuid>
	DocDeletePrefix      = "doc_del:"       // doc_del:<uuid>
	DocNewCategoryPrefix = "doc_newcat:"    // doc_newcat:ata
	SettingsTogglePrefix = "set_toggle:"    // set_toggle:allow_weekend_reservations
	SettingsEditPrefix   = "set_edit:"      // set_edit:max_days_advance
)

// Разделы главного меню
const (
	MenuNotices   = "menu_notices"
	MenuSettings  = "menu_settings"
	MenuStats     = "menu_stats"
	MenuDashboard = "menu_dashboard"
)

const monthLayout = "2006-01"

// MonthData callback data для перехода к месяцу
func MonthData(month model.Date) string {
	return MonthPrefix + formatMonth(month)
}

// MonthImageData callback data для картинки месяца
func MonthImageData(month model.Date) string {
	return MonthImagePrefix + formatMonth(month)
}

// DayData callback data для выбора дня
func DayData(date model.Date) string {
	return DayPrefix + date.String()
}

// SlotData callback data для выбора слота
func SlotData(date model.Date, index int) string {
	return fmt.Sprintf("%s%s:%d", SlotPrefix, date, index)
}

// ReservationData callback data с id бронирования
func ReservationData(prefix string, id uuid.UUID) string {
	return prefix + id.String()
}

// RangeData callback data фильтра по диапазону
func RangeData(prefix string, rng availability.Range) string {
	return prefix + string(rng)
}

// RangePageData фильтр списка со страницей
func RangePageData(prefix string, rng availability.Range, page int) string {
	return fmt.Sprintf("%s%s:%d", prefix, rng, page)
}

// ParseMonthData разбирает "cal:2024-06" в первое число месяца
func ParseMonthData(data, prefix string) (model.Date, error) {
	arg, err := CallbackArg(data, prefix)
	if err != nil {
		return model.Date{}, err
	}
	d, err := model.ParseDate(arg + "-01")
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return d, nil
}

// ParseDayData разбирает "day:2024-06-10"
func ParseDayData(data string) (model.Date, error) {
	arg, err := CallbackArg(data, DayPrefix)
	if err != nil {
		return model.Date{}, err
	}
	return model.ParseDate(arg)
}

// ParseSlotData разбирает "slot:2024-06-10:3" и возвращает метку слота из каталога
func ParseSlotData(data string, labels []string) (model.Date, string, error) {
	arg, err := CallbackArg(data, SlotPrefix)
	if err != nil {
		return model.Date{}, "", err
	}

	idx := strings.LastIndex(arg, ":")
	if idx < 0 {
		return model.Date{}, "", fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	date, err := model.ParseDate(arg[:idx])
	if err != nil {
		return model.Date{}, "", err
	}

	n, err := strconv.Atoi(arg[idx+1:])
	if err != nil {
		return model.Date{}, "", fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	if n < 0 || n >= len(labels) {
		return model.Date{}, "", fmt.Errorf("%w: slot index %d", availability.ErrUnknownSlot, n)
	}

	return date, labels[n], nil
}

// ParseRangePage разбирает "all_range:past:1". Страница необязательна.
func ParseRangePage(data, prefix string) (availability.Range, int, error) {
	arg, err := CallbackArg(data, prefix)
	if err != nil {
		return "", 0, err
	}

	page := 0
	if idx := strings.LastIndex(arg, ":"); idx >= 0 {
		page, err = strconv.Atoi(arg[idx+1:])
		if err != nil {
			return "", 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		arg = arg[:idx]
	}

	rng, err := availability.ParseRange(arg)
	if err != nil {
		return "", 0, err
	}
	return rng, page, nil
}

func formatMonth(d model.Date) string {
	return d.FirstOfMonth().Time(nil).Format(monthLayout)
}
