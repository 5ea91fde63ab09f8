package common

import (
	"testing"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLabels = []string{"08:00 - 10:00", "10:00 - 12:00", "Dia Inteiro (08:00 - 00:00)"}

func TestMonthData(t *testing.T) {
	d := model.MustParseDate("2024-06-10")
	assert.Equal(t, "cal:2024-06", MonthData(d))
	assert.Equal(t, "calimg:2024-06", MonthImageData(d))

	parsed, err := ParseMonthData("cal:2024-06", MonthPrefix)
	require.NoError(t, err)
	assert.Equal(t, model.MustParseDate("2024-06-01"), parsed)

	_, err = ParseMonthData("cal:junho", MonthPrefix)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = ParseMonthData("day:2024-06", MonthPrefix)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDayData(t *testing.T) {
	d := model.MustParseDate("2024-06-10")
	parsed, err := ParseDayData(DayData(d))
	require.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = ParseDayData("day:2024-02-30")
	assert.ErrorIs(t, err, availability.ErrInvalidDate)
}

func TestSlotData(t *testing.T) {
	d := model.MustParseDate("2024-06-10")

	data := SlotData(d, 2)
	assert.Equal(t, "slot:2024-06-10:2", data)
	assert.LessOrEqual(t, len(data), 64)

	date, label, err := ParseSlotData(data, testLabels)
	require.NoError(t, err)
	assert.Equal(t, d, date)
	assert.Equal(t, "Dia Inteiro (08:00 - 00:00)", label)

	_, _, err = ParseSlotData("slot:2024-06-10:9", testLabels)
	assert.ErrorIs(t, err, availability.ErrUnknownSlot)
	_, _, err = ParseSlotData("slot:2024-06-10", testLabels)
	assert.Error(t, err)
	_, _, err = ParseSlotData("slot:2024-06-10:x", testLabels)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestReservationDataFitsTelegramLimit(t *testing.T) {
	id := uuid.New()
	for _, prefix := range []string{ApprovePrefix, RejectPrefix, CancelPrefix, ReservationPrefix, NoticeTogglePrefix, DocDeletePrefix} {
		data := ReservationData(prefix, id)
		assert.LessOrEqual(t, len(data), 64, prefix)

		parsed, err := ParseUUIDFromCallback(data)
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}

	_, err := ParseUUIDFromCallback("approve:not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseRangePage(t *testing.T) {
	rng, page, err := ParseRangePage(RangePageData(AllRangePrefix, availability.RangePast, 3), AllRangePrefix)
	require.NoError(t, err)
	assert.Equal(t, availability.RangePast, rng)
	assert.Equal(t, 3, page)

	rng, page, err = ParseRangePage(RangeData(MyRangePrefix, availability.RangeThisWeek), MyRangePrefix)
	require.NoError(t, err)
	assert.Equal(t, availability.RangeThisWeek, rng)
	assert.Zero(t, page)

	_, _, err = ParseRangePage("my_range:tomorrow", MyRangePrefix)
	assert.ErrorIs(t, err, availability.ErrUnknownRange)
}

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback("role:123")
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)

	_, err = ParseIDFromCallback("role:abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = ParseIDFromCallback("role")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
