package handlers

import (
	"strings"
	"testing"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandArg(t *testing.T) {
	assert.Equal(t, "", commandArg("/reservations"))
	assert.Equal(t, "past", commandArg("/reservations past"))
	assert.Equal(t, "week", commandArg("/myreservations   week extra"))
}

func TestParseRangeArg(t *testing.T) {
	rng, err := parseRangeArg("/myreservations", availability.RangeUpcoming)
	require.NoError(t, err)
	assert.Equal(t, availability.RangeUpcoming, rng)

	rng, err = parseRangeArg("/export past", availability.RangeAll)
	require.NoError(t, err)
	assert.Equal(t, availability.RangePast, rng)

	_, err = parseRangeArg("/export tomorrow", availability.RangeAll)
	assert.ErrorIs(t, err, availability.ErrUnknownRange)
}

func TestLengthProblem(t *testing.T) {
	assert.Empty(t, lengthProblem("Churrasco", EventMinLength, EventMaxLength))
	assert.Contains(t, lengthProblem("ok", EventMinLength, EventMaxLength), "Минимум 3 символа")
	assert.Contains(t, lengthProblem(strings.Repeat("я", EventMaxLength+1), EventMinLength, EventMaxLength), "Максимум 200 символов")

	// длина в символах, не в байтах
	assert.Empty(t, lengthProblem(strings.Repeat("я", EventMaxLength), EventMinLength, EventMaxLength))

	// maxLen 0 без ограничения сверху
	assert.Empty(t, lengthProblem(strings.Repeat("a", 10000), 1, 0))
}

func TestIsDialogText(t *testing.T) {
	assert.True(t, IsDialogText(&models.Update{Message: &models.Message{Text: "101"}}))
	assert.False(t, IsDialogText(&models.Update{Message: &models.Message{Text: "/cancel"}}))
	assert.False(t, IsDialogText(&models.Update{Message: &models.Message{}}))
	assert.False(t, IsDialogText(&models.Update{CallbackQuery: &models.CallbackQuery{Data: "noop"}}))
}

func TestIsDocumentMessage(t *testing.T) {
	assert.True(t, IsDocumentMessage(&models.Update{Message: &models.Message{Document: &models.Document{FileID: "f"}}}))
	assert.False(t, IsDocumentMessage(&models.Update{Message: &models.Message{Text: "101"}}))
	assert.False(t, IsDocumentMessage(&models.Update{}))
}
