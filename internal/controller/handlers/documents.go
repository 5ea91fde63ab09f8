package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleDocuments обрабатывает команду /documents
func (h *Handlers) HandleDocuments(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	docs, err := h.services.Documents.List(ctx, "")
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildDocumentsScreen(docs, "", user.IsAdmin())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleNewDocument начинает загрузку документа
func (h *Handlers) HandleNewDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	h.stateManager.ClearState(user.TelegramID)
	h.stateManager.SetState(user.TelegramID, state.StateDocumentTitle)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📄 <b>Новый документ</b>\n\nШаг 1 из 3: название документа?",
		keyboard.DialogCancel())
}

// handleDocumentTitleStep сохраняет название и спрашивает категорию
func (h *Handlers) handleDocumentTitleStep(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	chatID := update.Message.Chat.ID

	if problem := lengthProblem(text, DocumentTitleMinLength, DocumentTitleMaxLength); problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeyTitle, text)
	h.stateManager.SetState(telegramID, state.StateDocumentCategory)

	h.sendMessage(ctx, b, chatID, "Шаг 2 из 3: категория документа?", common.DocumentCategoryKeyboard())
}

// HandleDocumentMessage принимает файл на последнем шаге загрузки
func (h *Handlers) HandleDocumentMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !IsDocumentMessage(update) || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) != state.StateDocumentFile {
		h.logger.Debug("Document outside of upload dialog, ignoring",
			zap.Int64("telegram_id", telegramID))
		return
	}

	user, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}
	chatID := update.Message.Chat.ID

	title, okTitle := h.stateManager.GetString(telegramID, state.KeyTitle)
	category, okCategory := h.stateManager.GetString(telegramID, state.KeyCategory)
	if !okTitle || !okCategory {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	file := update.Message.Document
	doc, err := h.services.Documents.Add(ctx, user, service.DocumentDraft{
		Title:       title,
		Description: strings.TrimSpace(update.Message.Caption),
		Category:    category,
		FileID:      file.FileID,
		FileName:    file.FileName,
		FileSize:    file.FileSize,
	})
	if err != nil {
		h.logger.Error("Failed to add document", zap.Int64("actor_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	h.stateManager.ClearState(telegramID)

	docs, err := h.services.Documents.List(ctx, doc.Category)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		h.sendMessage(ctx, b, chatID, "✅ Документ сохранён", nil)
		return
	}

	text, kb := common.BuildDocumentsScreen(docs, doc.Category, true)
	h.sendMessage(ctx, b, chatID, "✅ Документ сохранён\n\n"+text, kb)
}
