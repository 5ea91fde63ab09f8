package admin

import (
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// ========================
// Reservation Decisions
// ========================

// HandleApprove одобряет заявку
func HandleApprove(hc *common.HandlerContext) {
	id, err := common.ParseUUIDFromCallback(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_reservation")
		return
	}

	res, err := hc.Handler.Reservations.Approve(hc.Ctx, hc.User, id)
	if err != nil {
		common.HandleError(hc, err, "approve_reservation")
		return
	}

	if err := hc.ReplaceMessage(common.ReservationCard(res), common.ReservationKeyboard(res, true)); err != nil {
		common.HandleError(hc, err, "show_reservation")
		return
	}
	common.LogAndAnswer(hc, "Reservation approved from bot", "✅ Бронирование подтверждено")
}

// HandleReject запрашивает причину отклонения
func HandleReject(hc *common.HandlerContext) {
	askReason(hc, state.StateRejectReason, "🚫 <b>Отклонение заявки</b>")
}

// HandleCancel запрашивает причину отмены подтверждённого бронирования
func HandleCancel(hc *common.HandlerContext) {
	askReason(hc, state.StateCancelReason, "❌ <b>Отмена бронирования</b>")
}

func askReason(hc *common.HandlerContext, next state.UserState, title string) {
	id, err := common.ParseUUIDFromCallback(hc.Data())
	if err != nil {
		common.HandleError(hc, err, "parse_reservation")
		return
	}

	res, err := hc.Handler.Reservations.Get(hc.Ctx, hc.User, id)
	if err != nil {
		common.HandleError(hc, err, "get_reservation")
		return
	}

	hc.ClearState()
	hc.SetData(state.KeyReservationID, res.ID.String())
	hc.SetState(next)

	text := title + "\n\n" +
		formatting.FormatDate(res.Date) + " · " + formatting.Escape(res.TimeSlot) +
		" · кв. " + formatting.Escape(res.ApartmentNumber) + "\n\n" +
		"Напишите причину в ответном сообщении или нажмите «Без причины»:"
	if err := hc.ReplaceMessage(text, reasonKeyboard()); err != nil {
		common.HandleError(hc, err, "ask_reason")
		return
	}
	hc.Answer("")
}

func reasonKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("➡️ Без причины", common.SkipReason)).
		Row(keyboard.CancelButton(keyboard.DialogCancelData)).
		Build()
}

// HandleSkipReason завершает отклонение или отмену без причины
func HandleSkipReason(hc *common.HandlerContext) {
	res, err := common.ApplyReasonDecision(hc.Ctx, hc.Handler.Reservations, hc.Handler.StateManager, hc.User, hc.TelegramID, "")
	if err != nil {
		hc.ClearState()
		common.HandleError(hc, err, "apply_decision")
		return
	}

	if err := hc.ReplaceMessage(common.ReservationCard(res), common.ReservationKeyboard(res, true)); err != nil {
		common.HandleError(hc, err, "show_reservation")
		return
	}
	common.LogAndAnswer(hc, "Reservation cancelled from bot", decisionAnswer(res))
}

func decisionAnswer(res *model.Reservation) string {
	if res.Status == model.ReservationStatusCancelled {
		return "❌ Бронирование отменено"
	}
	return "✅ Готово"
}
