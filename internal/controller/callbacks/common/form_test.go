package common

import (
	"context"
	"fmt"
	"testing"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTelegramID int64 = 777

func TestReservationDraftFromState(t *testing.T) {
	sm := state.NewManager()
	user := &model.User{ID: 1, TelegramID: testTelegramID, DisplayName: "Maria Silva", ApartmentNumber: "101"}

	_, err := ReservationDraftFromState(sm, testTelegramID, user)
	assert.ErrorIs(t, err, ErrDialogExpired)

	sm.SetState(testTelegramID, state.StateReserveConfirm)
	sm.SetData(testTelegramID, state.KeyDate, "2024-06-12")
	_, err = ReservationDraftFromState(sm, testTelegramID, user)
	assert.ErrorIs(t, err, ErrDialogExpired, "slot is required")

	sm.SetData(testTelegramID, state.KeySlot, testLabels[1])
	sm.SetData(testTelegramID, state.KeyEvent, "Aniversário")
	sm.SetData(testTelegramID, state.KeyContact, "maria@example.com")

	draft, err := ReservationDraftFromState(sm, testTelegramID, user)
	require.NoError(t, err)
	assert.Equal(t, model.MustParseDate("2024-06-12"), draft.Date)
	assert.Equal(t, testLabels[1], draft.TimeSlot)
	assert.Equal(t, "Maria Silva", draft.ResidentName)
	assert.Equal(t, "101", draft.Apartment)
	assert.Nil(t, draft.Notes)

	sm.SetData(testTelegramID, state.KeyNotes, "som ambiente")
	draft, err = ReservationDraftFromState(sm, testTelegramID, user)
	require.NoError(t, err)
	require.NotNil(t, draft.Notes)
	assert.Equal(t, "som ambiente", *draft.Notes)

	summary := SummaryOf(draft)
	assert.Equal(t, "som ambiente", summary.Notes)
	assert.Equal(t, "Aniversário", summary.Event)

	sm.SetData(testTelegramID, state.KeyDate, "12/06/2024")
	_, err = ReservationDraftFromState(sm, testTelegramID, user)
	assert.Error(t, err)
}

func TestApplyReasonDecision_DialogErrors(t *testing.T) {
	ctx := context.Background()
	admin := &model.User{ID: 1, TelegramID: testTelegramID, Role: model.UserRoleAdmin}
	sm := state.NewManager()

	sm.SetState(testTelegramID, state.StateRejectReason)
	_, err := ApplyReasonDecision(ctx, nil, sm, admin, testTelegramID, "")
	assert.ErrorIs(t, err, ErrDialogExpired)

	sm.SetData(testTelegramID, state.KeyReservationID, "not-an-id")
	_, err = ApplyReasonDecision(ctx, nil, sm, admin, testTelegramID, "")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	sm.SetState(testTelegramID, state.StateNoticeTitle)
	sm.SetData(testTelegramID, state.KeyReservationID, uuid.NewString())
	_, err = ApplyReasonDecision(ctx, nil, sm, admin, testTelegramID, "")
	assert.ErrorIs(t, err, ErrDialogExpired)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNotAdmin, "только администратору"},
		{service.ErrForbidden, "только администратору"},
		{fmt.Errorf("create: %w", availability.ErrSlotTaken), "слот уже занят"},
		{availability.ErrUnknownRange, "Неизвестный период"},
		{service.ErrReservationLimit, "лимит"},
		{service.ErrWeekendNotAllowed, "выходные"},
		{service.ErrStaleReservation, "другой администратор"},
		{ErrDialogExpired, "устарели"},
		{fmt.Errorf("boom"), "Произошла ошибка"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Contains(t, ErrorMessage(tt.err), tt.want)
		})
	}
}
