package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	displayName := strings.TrimSpace(from.FirstName + " " + from.LastName)

	// Регистрируем пользователя
	user, err := h.services.Users.RegisterUser(ctx, from.ID, from.Username, displayName)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Int64("telegram_id", from.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	settings := h.loadSettings(ctx)

	welcome := fmt.Sprintf("👋 Привет, %s!\n\n", formatting.Escape(common.DisplayName(user)))
	if settings.CondominiumName != "" {
		welcome += fmt.Sprintf("Это бот бронирования салона кондоминиума «%s».\n\n", formatting.Escape(settings.CondominiumName))
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		welcome+common.MainMenuText(user, settings.CondominiumName),
		common.MainMenuKeyboard(user, h.services.Reservations.Today()))

	if !user.HasApartment() {
		h.askApartment(ctx, b, update, "")
	}
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 <b>Справка</b>\n\n" +
		"Бронирование салона:\n" +
		"1. /reserve - выберите день в календаре\n" +
		"2. Выберите свободный слот\n" +
		"3. Опишите мероприятие, контакт и примечания\n" +
		"4. Подтвердите заявку и дождитесь решения администратора\n\n" +
		"🟢 день свободен, 🟡 есть заявки на рассмотрении, 🔴 есть подтверждённое бронирование.\n" +
		"Свободные слоты в 🟡 и 🔴 днях по-прежнему можно забронировать.\n\n" +
		"/myreservations [upcoming|week|past|all] - ваши бронирования\n" +
		"/calendar - календарь картинкой\n" +
		"/notices - объявления\n" +
		"/documents - документы кондоминиума\n" +
		"/apartment - указать номер квартиры\n" +
		"/cancel - прервать текущий диалог"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)

	text := "✅ Операция отменена."
	if state.IsReservationForm(currentState) {
		text = "✅ Заявка не отправлена, слот остаётся свободным."
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		text+"\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleApartment обрабатывает команду /apartment
func (h *Handlers) HandleApartment(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	h.stateManager.ClearState(user.TelegramID)
	h.askApartment(ctx, b, update, "")
}

// askApartment переводит диалог на ввод квартиры; next - что сделать после
func (h *Handlers) askApartment(ctx context.Context, b *bot.Bot, update *models.Update, next string) {
	telegramID := update.Message.From.ID
	h.stateManager.SetState(telegramID, state.StateEnterApartment)
	if next != "" {
		h.stateManager.SetData(telegramID, state.KeyNext, next)
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🏠 Напишите номер вашей квартиры (например, 101 или 12B):",
		keyboard.DialogCancel())
}

// HandleDashboard обрабатывает команду /dashboard
func (h *Handlers) HandleDashboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	d, err := h.services.Dashboard.Build(ctx, user)
	if err != nil {
		h.logger.Error("Failed to build dashboard", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	settings := h.loadSettings(ctx)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		common.BuildDashboardScreen(d, settings.CondominiumName),
		common.MainMenuKeyboard(user, h.services.Reservations.Today()))
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !IsDialogText(update) || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	// Если нет активного состояния, игнорируем
	if currentState == state.StateNone {
		h.logger.Debug("No active state, ignoring message",
			zap.Int64("telegram_id", telegramID))
		return
	}

	h.logger.Debug("Dialog step",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	text := strings.TrimSpace(update.Message.Text)

	// Обрабатываем в зависимости от состояния
	switch currentState {
	case state.StateEnterApartment:
		h.handleApartmentStep(ctx, b, update, user, text)
	case state.StateReserveEvent:
		h.handleEventStep(ctx, b, update, text)
	case state.StateReserveContact:
		h.handleContactStep(ctx, b, update, text)
	case state.StateReserveNotes:
		h.handleNotesStep(ctx, b, update, user, text)
	case state.StateRejectReason, state.StateCancelReason:
		h.handleReasonStep(ctx, b, update, user, text)
	case state.StateNoticeTitle:
		h.handleNoticeTitleStep(ctx, b, update, text)
	case state.StateNoticeContent:
		h.handleNoticeContentStep(ctx, b, update, text)
	case state.StateDocumentTitle:
		h.handleDocumentTitleStep(ctx, b, update, text)
	case state.StateSettingsNumber:
		h.handleSettingsNumberStep(ctx, b, update, user, text)
	case state.StateSettingsText:
		h.handleSettingsTextStep(ctx, b, update, user, text)
	case state.StateReserveConfirm, state.StateNoticePriority, state.StateNoticeExpiry, state.StateDocumentCategory:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "👆 Воспользуйтесь кнопками выше или /cancel", nil)
	case state.StateDocumentFile:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "📎 Ожидается файл. Отправьте документ или /cancel", nil)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}

// loadSettings настройки для оформления сообщений; при ошибке значения по умолчанию
func (h *Handlers) loadSettings(ctx context.Context) model.Settings {
	settings, err := h.services.Settings.Get(ctx)
	if err != nil {
		h.logger.Warn("Failed to load settings", zap.Error(err))
		return model.DefaultSettings()
	}
	return settings
}

// lengthProblem сообщение о неверной длине ввода, пустая строка если длина в норме
func lengthProblem(text string, minLen, maxLen int) string {
	n := len([]rune(text))
	switch {
	case n < minLen:
		return fmt.Sprintf("❌ Слишком коротко. Минимум %d %s.\n\nПопробуйте ещё раз:",
			minLen, formatting.Pluralize(minLen, "символ", "символа", "символов"))
	case maxLen > 0 && n > maxLen:
		return fmt.Sprintf("❌ Слишком длинно. Максимум %d %s.\n\nПопробуйте ещё раз:",
			maxLen, formatting.Pluralize(maxLen, "символ", "символа", "символов"))
	}
	return ""
}
