package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/model"
)

const (
	dateTimeLayout = "02.01.2006 15:04"
	noDate         = "—"
)

var (
	weekdayNames = [7]string{"Воскресенье", "Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}
	weekdayShort = [7]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	monthNames   = [12]string{
		"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	}
)

// FormatDateTime момент заявки или публикации, "10.06.2024 14:30"
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return noDate
	}
	return t.Format(dateTimeLayout)
}

// FormatDate гражданская дата "10.06.2024"
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return noDate
	}
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}

// FormatDateWithWeekday "Понедельник, 10.06.2024"
func FormatDateWithWeekday(d model.Date) string {
	if d.IsZero() {
		return noDate
	}
	return GetWeekdayName(d.Weekday()) + ", " + FormatDate(d)
}

// FormatMonth заголовок календаря "Июнь 2024"
func FormatMonth(d model.Date) string {
	return fmt.Sprintf("%s %d", GetMonthName(d.Month), d.Year)
}

func GetWeekdayName(weekday time.Weekday) string {
	if weekday < time.Sunday || weekday > time.Saturday {
		return "Неизвестно"
	}
	return weekdayNames[weekday]
}

// GetWeekdayShort подпись столбца календаря
func GetWeekdayShort(weekday time.Weekday) string {
	if weekday < time.Sunday || weekday > time.Saturday {
		return "?"
	}
	return weekdayShort[weekday]
}

func GetMonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[month-1]
}
