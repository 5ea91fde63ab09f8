package common

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callbackData все callback data клавиатуры по порядку
func callbackData(kb *models.InlineKeyboardMarkup) []string {
	if kb == nil {
		return nil
	}
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			out = append(out, btn.CallbackData)
		}
	}
	return out
}

func withPrefix(data []string, prefix string) []string {
	var out []string
	for _, d := range data {
		if strings.HasPrefix(d, prefix) {
			out = append(out, d)
		}
	}
	return out
}

func testReservation(date, slot string, status model.ReservationStatus) model.Reservation {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return model.Reservation{
		ID:              uuid.New(),
		UserID:          1,
		ApartmentNumber: "101",
		ResidentName:    "Maria Silva",
		Date:            model.MustParseDate(date),
		TimeSlot:        slot,
		Event:           "Aniversário",
		Contact:         "+55 11 99999-0000",
		Status:          status,
		RequestedAt:     at,
		CreatedAt:       at,
		UpdatedAt:       at,
	}
}

func testMonthView(today model.Date, reservations []model.Reservation) *service.MonthView {
	grid := availability.AnnotateGrid(availability.BuildMonthGrid(today, today, time.Sunday), reservations)
	return &service.MonthView{
		Month:    today.FirstOfMonth(),
		Today:    today,
		Grid:     grid,
		Weeks:    availability.Weeks(grid),
		Weekdays: availability.WeekdayOrder(time.Sunday),
	}
}

func TestBuildMonthScreen(t *testing.T) {
	today := model.MustParseDate("2024-06-10")
	view := testMonthView(today, []model.Reservation{
		testReservation("2024-06-12", testLabels[0], model.ReservationStatusPending),
		testReservation("2024-06-14", testLabels[0], model.ReservationStatusConfirmed),
	})

	text, kb := BuildMonthScreen(view)
	require.NotNil(t, kb)
	assert.Contains(t, text, "2024")

	data := callbackData(kb)
	days := withPrefix(data, DayPrefix)

	// Кликабельны только дни июня начиная с сегодняшнего
	assert.Len(t, days, 30-10+1)
	assert.Contains(t, days, "day:2024-06-10")
	assert.NotContains(t, days, "day:2024-06-09")
	assert.NotContains(t, days, "day:2024-07-01")

	assert.Contains(t, data, "cal:2024-05")
	assert.Contains(t, data, "cal:2024-07")
	assert.Contains(t, data, "calimg:2024-06")
	assert.Equal(t, keyboard.BackToMainData, data[len(data)-1])

	labels := make(map[string]string)
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			labels[btn.CallbackData] = btn.Text
		}
	}
	assert.Equal(t, "[10]", labels["day:2024-06-10"])
	assert.Equal(t, "12🟡", labels["day:2024-06-12"])
	assert.Equal(t, "14🔴", labels["day:2024-06-14"])
}

func TestBuildDayScreen(t *testing.T) {
	today := model.MustParseDate("2024-06-10")
	taken := testReservation("2024-06-12", testLabels[1], model.ReservationStatusPending)
	cancelled := testReservation("2024-06-12", testLabels[0], model.ReservationStatusCancelled)
	reservations := []model.Reservation{taken, cancelled}
	date := model.MustParseDate("2024-06-12")

	view := &service.DayView{
		Date:         date,
		Today:        today,
		Occupancy:    availability.DayOccupancy(date, reservations),
		Slots:        availability.SlotStates(date, reservations, testLabels, availability.ExactPolicy()),
		Available:    availability.AvailableSlots(date, reservations, testLabels, availability.ExactPolicy()),
		Reservations: reservations,
	}

	t.Run("resident", func(t *testing.T) {
		text, kb := BuildDayScreen(view, testLabels, false)
		data := callbackData(kb)

		assert.Equal(t, []string{"slot:2024-06-12:0", "slot:2024-06-12:2"}, withPrefix(data, SlotPrefix))
		assert.Empty(t, withPrefix(data, ReservationPrefix))
		assert.NotContains(t, text, "Aniversário")
		assert.Equal(t, "cal:2024-06", data[len(data)-1])
	})

	t.Run("admin sees active reservations", func(t *testing.T) {
		text, kb := BuildDayScreen(view, testLabels, true)
		data := callbackData(kb)

		assert.Equal(t, []string{ReservationData(ReservationPrefix, taken.ID)}, withPrefix(data, ReservationPrefix))
		assert.Contains(t, text, "Aniversário")
	})

	t.Run("past date has no slots", func(t *testing.T) {
		past := *view
		past.Today = model.MustParseDate("2024-06-20")
		text, kb := BuildDayScreen(&past, testLabels, false)

		assert.Empty(t, withPrefix(callbackData(kb), SlotPrefix))
		assert.Contains(t, text, "Дата прошла")
	})
}

func TestBuildDayScreen_FullDayExclusive(t *testing.T) {
	date := model.MustParseDate("2024-06-12")
	policy := availability.SlotPolicy{Mode: availability.PolicyFullDayExclusive, FullDayLabel: testLabels[2]}
	reservations := []model.Reservation{testReservation("2024-06-12", testLabels[0], model.ReservationStatusConfirmed)}

	text, kb := BuildDayScreen(&service.DayView{
		Date:         date,
		Today:        date,
		Occupancy:    availability.DayOccupancy(date, reservations),
		Slots:        availability.SlotStates(date, reservations, testLabels, policy),
		Available:    availability.AvailableSlots(date, reservations, testLabels, policy),
		Reservations: reservations,
	}, testLabels, false)

	assert.Equal(t, []string{"slot:2024-06-12:1"}, withPrefix(callbackData(kb), SlotPrefix))
	assert.Contains(t, text, "⚪️ "+testLabels[2])
	assert.NotContains(t, text, "🟢 "+testLabels[2])
}

func TestBuildDayScreen_EscapesUserText(t *testing.T) {
	date := model.MustParseDate("2024-06-12")
	r := testReservation("2024-06-12", testLabels[0], model.ReservationStatusConfirmed)
	r.ApartmentNumber = "<b>1</b>"
	r.Event = "a & b"
	reservations := []model.Reservation{r}

	text, _ := BuildDayScreen(&service.DayView{
		Date:         date,
		Today:        date,
		Slots:        availability.SlotStates(date, reservations, testLabels, availability.ExactPolicy()),
		Reservations: reservations,
	}, testLabels, true)

	assert.Contains(t, text, "&lt;b&gt;1&lt;/b&gt;")
	assert.Contains(t, text, "a &amp; b")
}

func TestReservationKeyboard(t *testing.T) {
	pending := testReservation("2024-06-12", testLabels[0], model.ReservationStatusPending)
	confirmed := testReservation("2024-06-12", testLabels[1], model.ReservationStatusConfirmed)
	cancelled := testReservation("2024-06-12", testLabels[2], model.ReservationStatusCancelled)

	assert.Equal(t, []string{
		ReservationData(ApprovePrefix, pending.ID),
		ReservationData(RejectPrefix, pending.ID),
		"cal:2024-06",
	}, callbackData(ReservationKeyboard(&pending, true)))

	assert.Equal(t, []string{
		ReservationData(CancelPrefix, confirmed.ID),
		"cal:2024-06",
	}, callbackData(ReservationKeyboard(&confirmed, true)))

	assert.Equal(t, []string{"cal:2024-06"}, callbackData(ReservationKeyboard(&cancelled, true)))
	assert.Equal(t, []string{"cal:2024-06"}, callbackData(ReservationKeyboard(&pending, false)))
}

func TestReservationCard(t *testing.T) {
	r := testReservation("2024-06-12", testLabels[0], model.ReservationStatusCancelled)
	notes := "levar <som>"
	reason := "manutenção"
	r.Notes = &notes
	r.CancellationReason = &reason

	card := ReservationCard(&r)
	assert.Contains(t, card, "levar &lt;som&gt;")
	assert.Contains(t, card, "manutenção")
	assert.Contains(t, card, "Maria Silva")
}

func TestReservationListScreen_Pagination(t *testing.T) {
	var list []model.Reservation
	for i := 0; i < ListPageSize+3; i++ {
		list = append(list, testReservation(fmt.Sprintf("2024-06-%02d", i+1), testLabels[0], model.ReservationStatusConfirmed))
	}

	screen := ReservationListScreen{
		Title:        "Все бронирования",
		Reservations: list,
		Range:        availability.RangeAll,
		RangePrefix:  AllRangePrefix,
		ShowResident: true,
	}

	text, kb := screen.Build()
	data := callbackData(kb)
	assert.Len(t, withPrefix(data, ReservationPrefix), ListPageSize)
	assert.Contains(t, data, "all_range:all:1")
	assert.Contains(t, data, "all_range:upcoming:0")
	assert.Contains(t, text, "Maria Silva")

	screen.Page = 1
	_, kb = screen.Build()
	data = callbackData(kb)
	assert.Len(t, withPrefix(data, ReservationPrefix), 3)
	assert.Contains(t, data, "all_range:all:0")

	// страница за пределами прижимается к последней
	screen.Page = 99
	_, kb = screen.Build()
	assert.Len(t, withPrefix(callbackData(kb), ReservationPrefix), 3)
}

func TestReservationListScreen_Empty(t *testing.T) {
	text, kb := ReservationListScreen{
		Title:       "Мои бронирования",
		Range:       availability.RangeUpcoming,
		RangePrefix: MyRangePrefix,
	}.Build()

	assert.Contains(t, text, "Бронирований нет")
	assert.Empty(t, withPrefix(callbackData(kb), ReservationPrefix))
}

func TestBuildPendingScreen(t *testing.T) {
	text, kb := BuildPendingScreen(nil)
	assert.Contains(t, text, "Новых заявок нет")
	assert.Equal(t, []string{PendingRefresh, keyboard.BackToMainData}, callbackData(kb))

	var pending []model.Reservation
	for i := 0; i < pendingPreview+2; i++ {
		pending = append(pending, testReservation("2024-06-12", testLabels[0], model.ReservationStatusPending))
	}
	text, kb = BuildPendingScreen(pending)
	assert.Len(t, withPrefix(callbackData(kb), ReservationPrefix), pendingPreview)
	assert.Contains(t, text, "/reservations")
}

func TestReservationFormSummary(t *testing.T) {
	text, kb := ReservationFormSummary{
		Date:      model.MustParseDate("2024-06-12"),
		Slot:      testLabels[0],
		Apartment: "101",
		Resident:  "Maria",
		Event:     "Festa",
		Contact:   "maria@example.com",
	}.Build()

	assert.Contains(t, text, "Примечания: —")
	assert.Equal(t, []string{ReserveConfirm, ReserveAbort}, callbackData(kb))
}
