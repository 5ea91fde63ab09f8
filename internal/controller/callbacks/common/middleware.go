package common

import (
	"context"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// access минимальная роль для callback
type access int

const (
	accessResident access = iota
	accessAdmin
)

// WithUser загружает жителя и вызывает handler.
// Неизвестному пользователю отвечает alert-ом.
func WithUser(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, handler func(*HandlerContext)) {
	guard(NewHandlerContext(ctx, b, callback, h), accessResident, handler)
}

// WithAdmin как WithUser, но только для администраторов
func WithAdmin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, handler func(*HandlerContext)) {
	guard(NewHandlerContext(ctx, b, callback, h), accessAdmin, handler)
}

func guard(hc *HandlerContext, level access, handler func(*HandlerContext)) {
	var err error
	if level == accessAdmin {
		err = hc.RequireAdmin()
	} else {
		err = hc.LoadUser()
	}

	if err != nil {
		if level == accessAdmin {
			hc.Log().Warn("Admin check failed", zap.Error(err))
		} else {
			hc.Log().Error("Failed to load user", zap.Error(err))
		}
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError логирует сбой операции и показывает пользователю текст ошибки
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Log().Error("Operation failed", zap.String("operation", operation), zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer пишет событие в лог и закрывает callback коротким ответом
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	hc.Log().Info(message)
	hc.Answer(answer)
}

// IsMessageNotModifiedError Telegram отвечает ошибкой, если текст и клавиатура не изменились
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
