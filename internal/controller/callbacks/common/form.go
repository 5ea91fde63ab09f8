package common

import (
	"context"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/google/uuid"
)

// ReservationDraftFromState собирает черновик бронирования из данных диалога
func ReservationDraftFromState(sm callbacktypes.StateManager, telegramID int64, user *model.User) (model.ReservationDraft, error) {
	dateStr, ok := sm.GetString(telegramID, state.KeyDate)
	if !ok {
		return model.ReservationDraft{}, ErrDialogExpired
	}
	date, err := model.ParseDate(dateStr)
	if err != nil {
		return model.ReservationDraft{}, err
	}
	slot, ok := sm.GetString(telegramID, state.KeySlot)
	if !ok {
		return model.ReservationDraft{}, ErrDialogExpired
	}

	event, _ := sm.GetString(telegramID, state.KeyEvent)
	contact, _ := sm.GetString(telegramID, state.KeyContact)

	draft := model.ReservationDraft{
		Date:         date,
		TimeSlot:     slot,
		ResidentName: DisplayName(user),
		Apartment:    user.ApartmentNumber,
		Event:        event,
		Contact:      contact,
	}
	if notes, ok := sm.GetString(telegramID, state.KeyNotes); ok && notes != "" {
		draft.Notes = &notes
	}
	return draft, nil
}

// SummaryOf экран подтверждения для черновика
func SummaryOf(draft model.ReservationDraft) ReservationFormSummary {
	summary := ReservationFormSummary{
		Date:      draft.Date,
		Slot:      draft.TimeSlot,
		Apartment: draft.Apartment,
		Resident:  draft.ResidentName,
		Event:     draft.Event,
		Contact:   draft.Contact,
	}
	if draft.Notes != nil {
		summary.Notes = *draft.Notes
	}
	return summary
}

// ApplyReasonDecision завершает отклонение или отмену, начатые кнопкой.
// Пустая причина допустима.
func ApplyReasonDecision(
	ctx context.Context,
	reservations *service.ReservationService,
	sm callbacktypes.StateManager,
	actor *model.User,
	telegramID int64,
	reason string,
) (*model.Reservation, error) {
	current := state.UserState(sm.GetState(telegramID))
	idStr, ok := sm.GetString(telegramID, state.KeyReservationID)
	if !ok {
		return nil, ErrDialogExpired
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	var res *model.Reservation
	switch current {
	case state.StateRejectReason:
		res, err = reservations.Reject(ctx, actor, id, reason)
	case state.StateCancelReason:
		res, err = reservations.Cancel(ctx, actor, id, reason)
	default:
		return nil, ErrDialogExpired
	}
	if err != nil {
		return nil, err
	}

	sm.ClearState(telegramID)
	return res, nil
}
