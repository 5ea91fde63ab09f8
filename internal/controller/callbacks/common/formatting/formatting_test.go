package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "заявок"},
		{1, "заявка"},
		{2, "заявки"},
		{4, "заявки"},
		{5, "заявок"},
		{11, "заявок"},
		{12, "заявок"},
		{21, "заявка"},
		{22, "заявки"},
		{101, "заявка"},
		{111, "заявок"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeRequests(tt.count), "count=%d", tt.count)
	}
	assert.Equal(t, "жителя", PluralizeResidents(3))
	assert.Equal(t, "дней", PluralizeDays(30))
}

func TestFormatDate(t *testing.T) {
	d := model.MustParseDate("2024-06-10")

	assert.Equal(t, "10.06.2024", FormatDate(d))
	assert.Equal(t, "Понедельник, 10.06.2024", FormatDateWithWeekday(d))
	assert.Equal(t, "Июнь 2024", FormatMonth(d))
	assert.Equal(t, "—", FormatDate(model.Date{}))
	assert.Equal(t, "Сб", GetWeekdayShort(time.Saturday))
	assert.Equal(t, "—", FormatDateWithWeekday(model.Date{}))
	assert.Equal(t, "—", FormatDateTime(time.Time{}))
	assert.Equal(t, "10.06.2024 14:30", FormatDateTime(time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "Декабрь", GetMonthName(time.December))
	assert.Empty(t, GetMonthName(time.Month(13)))
}

func TestStatusDisplays(t *testing.T) {
	assert.Equal(t, "⏳ Ожидает одобрения", GetReservationStatusDisplay(model.ReservationStatusPending).String())
	assert.Equal(t, "❓", GetReservationStatusDisplay("archived").Emoji)
	assert.Equal(t, "🔴", GetDayStatusDisplay(availability.DayBooked).Emoji)
	assert.Equal(t, "🟡", GetDayStatusDisplay(availability.DayPending).Emoji)
	assert.Equal(t, "Срочно", GetNoticePriorityDisplay(model.NoticePriorityUrgent).Text)
	assert.Equal(t, "Эта неделя", GetRangeName(availability.RangeThisWeek))
	assert.Equal(t, "Все", GetRangeName(availability.RangeAll))
}

func TestSlotStatusDisplay(t *testing.T) {
	free := availability.SlotState{Label: "08:00 - 10:00"}
	assert.Equal(t, "🟢", GetSlotStatusDisplay(free).Emoji)

	pending := availability.SlotState{Label: "08:00 - 10:00", Reservation: &model.Reservation{Status: model.ReservationStatusPending}}
	assert.Equal(t, "🟡", GetSlotStatusDisplay(pending).Emoji)

	confirmed := availability.SlotState{Label: "08:00 - 10:00", Reservation: &model.Reservation{Status: model.ReservationStatusConfirmed}}
	assert.Equal(t, "🔴", GetSlotStatusDisplay(confirmed).Emoji)

	blocked := availability.SlotState{Label: "Dia Inteiro (08:00 - 00:00)", Blocked: true}
	assert.Equal(t, StatusDisplay{"⚪️", "Недоступен"}, GetSlotStatusDisplay(blocked))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;Festa&lt;/b&gt;", Escape("<b>Festa</b>"))
	assert.Equal(t, "Churr…", Truncate("Churrasco", 6))
	assert.Equal(t, "Festa", Truncate("Festa", 10))
	assert.Equal(t, "512 Б", FormatFileSize(512))
	assert.Equal(t, "1.5 КБ", FormatFileSize(1536))
	assert.Equal(t, "2.0 МБ", FormatFileSize(2*1024*1024))

	note := "levar cadeiras"
	assert.Equal(t, "levar cadeiras", Deref(&note, "—"))
	assert.Equal(t, "—", Deref(nil, "—"))
}
