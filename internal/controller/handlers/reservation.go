package handlers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleReserve обрабатывает команду /reserve - календарь текущего месяца
func (h *Handlers) HandleReserve(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	h.stateManager.ClearState(user.TelegramID)

	if !user.HasApartment() {
		h.askApartment(ctx, b, update, state.NextReserve)
		return
	}

	h.sendMonth(ctx, b, update.Message.Chat.ID)
}

// sendMonth отправляет календарь текущего месяца кнопками
func (h *Handlers) sendMonth(ctx context.Context, b *bot.Bot, chatID int64) {
	view, err := h.services.Reservations.MonthView(ctx, h.services.Reservations.Today())
	if err != nil {
		h.logger.Error("Failed to build month view", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildMonthScreen(view)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// HandleCalendar обрабатывает команду /calendar - календарь месяца картинкой
func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	chatID := update.Message.Chat.ID
	view, err := h.services.Reservations.MonthView(ctx, h.services.Reservations.Today())
	if err != nil {
		h.logger.Error("Failed to build month view", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	png, err := common.GenerateMonthImage(view)
	if err != nil {
		h.logger.Error("Failed to render month image", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось нарисовать календарь")
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.MonthPagination(
			common.MonthImageData(view.Month.AddMonths(-1)),
			formatting.FormatMonth(view.Month),
			common.MonthImageData(view.Month.AddMonths(1)),
		)...).
		Row(keyboard.Button("📅 Выбрать день", common.MonthData(view.Month))).
		Build()

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "calendar.png",
			Data:     bytes.NewReader(png),
		},
		Caption:     fmt.Sprintf("📅 <b>%s</b>", formatting.FormatMonth(view.Month)),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.logger.Error("Failed to send month image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleMyReservations обрабатывает команду /myreservations [range]
func (h *Handlers) HandleMyReservations(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	rng, err := parseRangeArg(update.Message.Text, availability.RangeUpcoming)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	list, err := h.services.Reservations.ListForUser(ctx, user, rng)
	if err != nil {
		h.logger.Error("Failed to list reservations", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.ReservationListScreen{
		Title:        "Мои бронирования",
		Reservations: list,
		Range:        rng,
		RangePrefix:  common.MyRangePrefix,
	}.Build()
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// parseRangeArg диапазон из аргумента команды, без аргумента - fallback
func parseRangeArg(text string, fallback availability.Range) (availability.Range, error) {
	arg := commandArg(text)
	if arg == "" {
		return fallback, nil
	}
	return availability.ParseRange(arg)
}

// handleApartmentStep сохраняет номер квартиры
func (h *Handlers) handleApartmentStep(ctx context.Context, b *bot.Bot, update *models.Update, user *model.User, text string) {
	chatID := update.Message.Chat.ID

	if problem := lengthProblem(text, 1, ApartmentMaxLength); problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	if err := h.services.Users.SetApartment(ctx, user, text); err != nil {
		h.logger.Error("Failed to set apartment", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	user.ApartmentNumber = text

	h.logger.Info("Apartment saved", zap.Int64("user_id", user.ID))

	next, _ := h.stateManager.GetString(user.TelegramID, state.KeyNext)
	if next != state.NextReserve {
		h.stateManager.ClearState(user.TelegramID)
		h.sendMessage(ctx, b, chatID,
			fmt.Sprintf("✅ Квартира %s сохранена.\n\nЗабронировать салон: /reserve", formatting.Escape(text)), nil)
		return
	}

	// Слот уже выбран в календаре - продолжаем форму
	date, hasDate := h.stateManager.GetString(user.TelegramID, state.KeyDate)
	slot, hasSlot := h.stateManager.GetString(user.TelegramID, state.KeySlot)
	if hasDate && hasSlot {
		h.stateManager.SetState(user.TelegramID, state.StateReserveEvent)
		parsed, err := model.ParseDate(date)
		if err != nil {
			h.stateManager.ClearState(user.TelegramID)
			h.sendError(ctx, b, chatID, common.ErrorMessage(err))
			return
		}
		h.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"✅ Квартира %s сохранена.\n\n"+
				"📅 %s\n🕐 %s\n\n"+
				"Какое мероприятие планируется? Напишите в ответном сообщении:",
			formatting.Escape(text),
			formatting.FormatDateWithWeekday(parsed),
			formatting.Escape(slot),
		), keyboard.DialogCancel())
		return
	}

	h.stateManager.ClearState(user.TelegramID)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Квартира %s сохранена.", formatting.Escape(text)), nil)
	h.sendMonth(ctx, b, chatID)
}

// handleEventStep сохраняет описание мероприятия
func (h *Handlers) handleEventStep(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	chatID := update.Message.Chat.ID

	if problem := lengthProblem(text, EventMinLength, EventMaxLength); problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeyEvent, text)
	h.stateManager.SetState(telegramID, state.StateReserveContact)

	h.sendMessage(ctx, b, chatID,
		"📞 Укажите контакт для связи (телефон или email):",
		keyboard.DialogCancel())
}

// handleContactStep сохраняет контакт
func (h *Handlers) handleContactStep(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	chatID := update.Message.Chat.ID

	if problem := lengthProblem(text, ContactMinLength, ContactMaxLength); problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeyContact, text)
	h.stateManager.SetState(telegramID, state.StateReserveNotes)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("➡️ Без примечаний", common.ReserveSkipNotes)).
		Row(keyboard.CancelButton(keyboard.DialogCancelData)).
		Build()
	h.sendMessage(ctx, b, chatID,
		"📝 Есть примечания для администратора (число гостей, оборудование)?\n\nНапишите их или нажмите «Без примечаний»:",
		kb)
}

// handleNotesStep сохраняет примечания и показывает итог
func (h *Handlers) handleNotesStep(ctx context.Context, b *bot.Bot, update *models.Update, user *model.User, text string) {
	chatID := update.Message.Chat.ID

	if problem := lengthProblem(text, 0, NotesMaxLength); problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	h.stateManager.SetData(user.TelegramID, state.KeyNotes, text)

	draft, err := common.ReservationDraftFromState(h.stateManager, user.TelegramID, user)
	if err != nil {
		h.stateManager.ClearState(user.TelegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	h.stateManager.SetState(user.TelegramID, state.StateReserveConfirm)

	summary, kb := common.SummaryOf(draft).Build()
	h.sendMessage(ctx, b, chatID, summary, kb)
}
