package handlers

import (
	"context"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleNotices обрабатывает команду /notices
func (h *Handlers) HandleNotices(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	var (
		notices []*model.Notice
		err     error
	)
	if user.IsAdmin() {
		notices, err = h.services.Notices.ListAll(ctx, user)
	} else {
		notices, err = h.services.Notices.ListActive(ctx)
	}
	if err != nil {
		h.logger.Error("Failed to list notices", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildNoticesScreen(notices, user.IsAdmin(), time.Now())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleNewNotice начинает публикацию объявления
func (h *Handlers) HandleNewNotice(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	h.stateManager.ClearState(user.TelegramID)
	h.stateManager.SetState(user.TelegramID, state.StateNoticeTitle)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📢 <b>Новое объявление</b>\n\nШаг 1 из 4: заголовок объявления?",
		keyboard.DialogCancel())
}

// handleNoticeTitleStep сохраняет заголовок
func (h *Handlers) handleNoticeTitleStep(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	chatID := update.Message.Chat.ID

	if problem := lengthProblem(text, NoticeTitleMinLength, NoticeTitleMaxLength); problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeyTitle, text)
	h.stateManager.SetState(telegramID, state.StateNoticeContent)

	h.sendMessage(ctx, b, chatID, "Шаг 2 из 4: текст объявления?", keyboard.DialogCancel())
}

// handleNoticeContentStep сохраняет текст и спрашивает важность
func (h *Handlers) handleNoticeContentStep(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	chatID := update.Message.Chat.ID

	if problem := lengthProblem(text, 1, NoticeContentMaxLength); problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeyContent, text)
	h.stateManager.SetState(telegramID, state.StateNoticePriority)

	h.sendMessage(ctx, b, chatID, "Шаг 3 из 4: важность объявления?", common.NoticePriorityKeyboard())
}
