package common

import (
	"context"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerContext нажатие inline-кнопки вместе с пользователем и сообщением
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	User       *model.User
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

func (hc *HandlerContext) Data() string {
	return hc.Callback.Data
}

// Log логгер с telegram_id, callback data и, если загружен, user_id
func (hc *HandlerContext) Log() *zap.Logger {
	fields := []zap.Field{
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("data", hc.Callback.Data),
	}
	if hc.User != nil {
		fields = append(fields, zap.Int64("user_id", hc.User.ID), zap.String("role", string(hc.User.Role)))
	}
	return hc.Handler.Logger.With(fields...)
}

// LoadUser находит жителя по telegram_id, nil превращается в ErrUserNotFound
func (hc *HandlerContext) LoadUser() error {
	user, err := hc.Handler.Users.GetByTelegramID(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	hc.User = user
	return nil
}

func (hc *HandlerContext) RequireUser() error {
	if hc.User == nil {
		return hc.LoadUser()
	}
	return nil
}

// RequireAdmin ErrNotAdmin для жителя без роли admin
func (hc *HandlerContext) RequireAdmin() error {
	if err := hc.RequireUser(); err != nil {
		return err
	}
	if !hc.User.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

func (hc *HandlerContext) IsAdmin() bool {
	return hc.User != nil && hc.User.IsAdmin()
}

func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert всплывающее окно вместо тоста
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage перерисовывает текущий экран в HTML
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.EditMessageText(hc.Ctx, params)

	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// ReplaceMessage как EditMessage; фото календаря удаляется
// и экран уходит новым сообщением
func (hc *HandlerContext) ReplaceMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message != nil && len(hc.Message.Photo) > 0 {
		if err := hc.DeleteMessage(); err != nil {
			hc.Log().Debug("Failed to delete calendar image", zap.Error(err))
		}
		return hc.SendMessage(text, keyboard)
	}
	return hc.EditMessage(text, keyboard)
}

func (hc *HandlerContext) DeleteMessage() error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
	})

	return err
}

func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    hc.ChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.SendMessage(hc.Ctx, params)

	return err
}

// ClearState завершает диалог пользователя
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

func (hc *HandlerContext) SetState(s state.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, s)
}

func (hc *HandlerContext) State() state.UserState {
	return hc.Handler.StateManager.GetState(hc.TelegramID)
}

// SetData поле черновика диалога
func (hc *HandlerContext) SetData(key string, value interface{}) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}

func (hc *HandlerContext) GetString(key string) (string, bool) {
	return hc.Handler.StateManager.GetString(hc.TelegramID, key)
}
