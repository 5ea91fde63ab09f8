package resident

import (
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"go.uber.org/zap"
)

// ========================
// Reservation Form Handlers
// ========================

// HandleSlot начинает форму бронирования выбранного слота
func HandleSlot(hc *common.HandlerContext) {
	date, label, err := common.ParseSlotData(hc.Data(), hc.Handler.Reservations.TimeSlots())
	if err != nil {
		common.HandleError(hc, err, "parse_slot")
		return
	}

	if date.Before(hc.Handler.Reservations.Today()) {
		hc.AnswerAlert("❌ Эта дата уже прошла")
		return
	}

	hc.ClearState()
	hc.SetData(state.KeyDate, date.String())
	hc.SetData(state.KeySlot, label)

	if !hc.User.HasApartment() {
		hc.SetData(state.KeyNext, state.NextReserve)
		hc.SetState(state.StateEnterApartment)
		text := "🏠 Сначала укажите номер вашей квартиры.\n\nНапишите его в ответном сообщении:"
		if err := hc.ReplaceMessage(text, keyboard.DialogCancel()); err != nil {
			common.HandleError(hc, err, "ask_apartment")
			return
		}
		hc.Answer("")
		return
	}

	hc.SetState(state.StateReserveEvent)

	text := fmt.Sprintf(
		"📝 <b>Новая заявка</b>\n\n"+
			"📅 %s\n"+
			"🕐 %s\n\n"+
			"Какое мероприятие планируется? Напишите в ответном сообщении:",
		formatting.FormatDateWithWeekday(date),
		formatting.Escape(label),
	)
	if err := hc.ReplaceMessage(text, keyboard.DialogCancel()); err != nil {
		common.HandleError(hc, err, "ask_event")
		return
	}
	hc.Answer("")
}

// HandleSkipNotes пропускает примечания и показывает итог заявки
func HandleSkipNotes(hc *common.HandlerContext) {
	if hc.State() != state.StateReserveNotes {
		hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	hc.SetData(state.KeyNotes, "")
	draft, err := common.ReservationDraftFromState(hc.Handler.StateManager, hc.TelegramID, hc.User)
	if err != nil {
		hc.ClearState()
		common.HandleError(hc, err, "reservation_draft")
		return
	}
	hc.SetState(state.StateReserveConfirm)

	text, kb := common.SummaryOf(draft).Build()
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_summary")
		return
	}
	hc.Answer("")
}

// HandleConfirm создаёт бронирование из данных формы
func HandleConfirm(hc *common.HandlerContext) {
	if hc.State() != state.StateReserveConfirm {
		hc.AnswerAlert(common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	draft, err := common.ReservationDraftFromState(hc.Handler.StateManager, hc.TelegramID, hc.User)
	if err != nil {
		hc.ClearState()
		common.HandleError(hc, err, "reservation_draft")
		return
	}

	res, err := hc.Handler.Reservations.Create(hc.Ctx, hc.User, draft)
	if err != nil {
		// слот могли занять, пока житель заполнял форму
		hc.ClearState()
		hc.Log().Warn("Failed to create reservation",
			zap.String("date", draft.Date.String()),
			zap.String("time_slot", draft.TimeSlot),
			zap.Error(err))
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📅 К календарю", common.MonthData(draft.Date))).
			Build()
		_ = hc.EditMessage(common.ErrorMessage(err), kb)
		hc.Answer("")
		return
	}
	hc.ClearState()

	text := "✅ <b>Заявка отправлена!</b>\n\n" +
		common.ReservationCard(res) +
		"\n\nАдминистратор рассмотрит заявку, статус можно проверить в /myreservations"
	if res.Status == model.ReservationStatusConfirmed {
		text = "✅ <b>Бронирование подтверждено!</b>\n\n" + common.ReservationCard(res)
	}
	if err := hc.EditMessage(text, common.ReservationKeyboard(res, false)); err != nil {
		common.HandleError(hc, err, "show_created")
		return
	}
	common.LogAndAnswer(hc, "Reservation requested from form", "✅ Заявка создана")
}

// HandleAbort отменяет заполнение формы
func HandleAbort(hc *common.HandlerContext) {
	dateStr, _ := hc.GetString(state.KeyDate)
	hc.ClearState()

	kb := keyboard.NewBuilder()
	if date, err := model.ParseDate(dateStr); err == nil {
		kb.Row(keyboard.Button("📅 К календарю", common.MonthData(date)))
	}
	kb.AddBackToMainButton()

	if err := hc.EditMessage("❌ Заявка отменена", kb.Build()); err != nil {
		common.HandleError(hc, err, "abort_form")
		return
	}
	hc.Answer("")
}

// HandleDialogCancel прерывает любой диалог
func HandleDialogCancel(hc *common.HandlerContext) {
	hc.ClearState()

	kb := keyboard.NewBuilder().AddBackToMainButton().Build()
	if err := hc.ReplaceMessage("❌ Действие отменено", kb); err != nil {
		common.HandleError(hc, err, "dialog_cancel")
		return
	}
	hc.Answer("")
}
