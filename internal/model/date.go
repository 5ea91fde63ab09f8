package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout формат гражданской даты в БД, кэше и callback data
const DateLayout = "2006-01-02"

// ErrInvalidDate возвращается, если строку нельзя разобрать как дату
var ErrInvalidDate = errors.New("invalid date")

// Date гражданская дата без времени и часового пояса.
// Сравнение только по году, месяцу и дню.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// MustParseDate как ParseDate, но паникует. Только для тестов и констант.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf возвращает дату, которую показывает t в своём часовом поясе
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today возвращает текущую дату в указанном часовом поясе
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(now.In(loc))
}

// NewDate нормализует переполнения (например, 32 января -> 1 февраля)
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Time возвращает полночь этой даты в указанном часовом поясе
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero true для нулевого значения
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// AddMonths сдвигает дату на n месяцев, день обнуляется до первого
func (d Date) AddMonths(n int) Date {
	return NewDate(d.Year, d.Month+time.Month(n), 1)
}

// FirstOfMonth первый день месяца
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// LastOfMonth последний день месяца
func (d Date) LastOfMonth() Date {
	return NewDate(d.Year, d.Month+1, 0)
}

// Weekday день недели
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// Compare возвращает -1, 0 или 1
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// SameMonth проверяет совпадение года и месяца
func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

// IsWeekend суббота или воскресенье
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MarshalText представляет дату в формате YYYY-MM-DD (JSON, кэш)
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText разбирает дату из YYYY-MM-DD
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
