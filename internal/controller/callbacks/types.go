package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler корневой обработчик callback queries
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler собирает зависимости для всех callback handlers
func NewHandler(
	services callbacktypes.Services,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		Services:     services,
		StateManager: stateManager,
		Logger:       logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery точка входа для нажатий на inline-кнопки.
// Паника в обработчике не роняет бота: пользователь получает alert.
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			h.Logger.Error("Callback handler panicked",
				zap.String("data", callback.Data),
				zap.Int64("telegram_id", callback.From.ID),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка")
			return
		}
		h.Logger.Debug("Callback handled",
			zap.String("data", callback.Data),
			zap.Duration("elapsed", time.Since(started)),
		)
	}()

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("telegram_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
