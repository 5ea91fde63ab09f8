package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/condo_bot/internal/controller/state"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlePending обрабатывает команду /pending
func (h *Handlers) HandlePending(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	pending, err := h.services.Reservations.Pending(ctx, user)
	if err != nil {
		h.logger.Error("Failed to list pending reservations", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildPendingScreen(pending)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleReservations обрабатывает команду /reservations [range]
func (h *Handlers) HandleReservations(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	rng, err := parseRangeArg(update.Message.Text, availability.RangeUpcoming)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	list, err := h.services.Reservations.ListAll(ctx, user, service.ListOptions{
		Range: rng,
		Sort:  availability.SortByDate,
		Order: availability.Asc,
	})
	if err != nil {
		h.logger.Error("Failed to list reservations", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.ReservationListScreen{
		Title:        "Все бронирования",
		Reservations: list,
		Range:        rng,
		RangePrefix:  common.AllRangePrefix,
		ShowResident: true,
	}.Build()
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleStats обрабатывает команду /stats
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	summary, err := h.services.Reservations.Stats(ctx, user)
	if err != nil {
		h.logger.Error("Failed to build stats", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.BuildStatsScreen(summary), nil)
}

// HandleExport обрабатывает команду /export [range] - выгрузка в Excel
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	rng, err := parseRangeArg(update.Message.Text, availability.RangeAll)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	data, err := h.services.Export.ReservationsXLSX(ctx, user, service.ListOptions{
		Range: rng,
		Sort:  availability.SortByDate,
		Order: availability.Asc,
	})
	if err != nil {
		h.logger.Error("Failed to export reservations", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	filename := fmt.Sprintf("reservations-%s-%s.xlsx", rng, h.services.Reservations.Today())
	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(data),
		},
		Caption: "📊 Выгрузка бронирований",
	})
	if err != nil {
		h.logger.Error("Failed to send export", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	h.logger.Info("Reservations exported",
		zap.Int64("actor_id", user.ID),
		zap.String("range", string(rng)),
		zap.Int("bytes", len(data)))
}

// HandleResidents обрабатывает команду /residents
func (h *Handlers) HandleResidents(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	users, err := h.services.Users.Residents(ctx, user)
	if err != nil {
		h.logger.Error("Failed to list residents", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildResidentsScreen(users, 0, user.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleSettings обрабатывает команду /settings
func (h *Handlers) HandleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireAdmin(ctx, b, update); !ok {
		return
	}

	settings, err := h.services.Settings.Get(ctx)
	if err != nil {
		h.logger.Error("Failed to load settings", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildSettingsScreen(settings)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// handleReasonStep завершает отклонение или отмену с причиной
func (h *Handlers) handleReasonStep(ctx context.Context, b *bot.Bot, update *models.Update, user *model.User, text string) {
	chatID := update.Message.Chat.ID

	if problem := lengthProblem(text, 0, ReasonMaxLength); problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	res, err := common.ApplyReasonDecision(ctx, h.services.Reservations, h.stateManager, user, user.TelegramID, text)
	if err != nil {
		h.stateManager.ClearState(user.TelegramID)
		h.logger.Error("Failed to apply decision", zap.Int64("actor_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, common.ReservationCard(res), common.ReservationKeyboard(res, true))
}

// settingsField поле настроек из данных диалога
func (h *Handlers) settingsField(telegramID int64) (service.SettingsField, bool) {
	field, ok := h.stateManager.GetString(telegramID, state.KeyField)
	return service.SettingsField(field), ok
}

// handleSettingsNumberStep сохраняет числовую настройку
func (h *Handlers) handleSettingsNumberStep(ctx context.Context, b *bot.Bot, update *models.Update, user *model.User, text string) {
	chatID := update.Message.Chat.ID

	field, ok := h.settingsField(user.TelegramID)
	if !ok {
		h.stateManager.ClearState(user.TelegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	value, err := strconv.Atoi(text)
	if err != nil || value < 0 {
		h.sendError(ctx, b, chatID, "❌ Введите целое неотрицательное число:")
		return
	}

	settings, err := h.services.Settings.SetNumber(ctx, user, field, value)
	if err != nil {
		h.logger.Warn("Failed to update setting", zap.String("field", string(field)), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	h.stateManager.ClearState(user.TelegramID)

	screen, kb := common.BuildSettingsScreen(settings)
	h.sendMessage(ctx, b, chatID, screen, kb)
}

// handleSettingsTextStep сохраняет текстовую настройку
func (h *Handlers) handleSettingsTextStep(ctx context.Context, b *bot.Bot, update *models.Update, user *model.User, text string) {
	chatID := update.Message.Chat.ID

	field, ok := h.settingsField(user.TelegramID)
	if !ok {
		h.stateManager.ClearState(user.TelegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	settings, err := h.services.Settings.SetText(ctx, user, field, text)
	if err != nil {
		h.logger.Warn("Failed to update setting", zap.String("field", string(field)), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	h.stateManager.ClearState(user.TelegramID)

	screen, kb := common.BuildSettingsScreen(settings)
	h.sendMessage(ctx, b, chatID, screen, kb)
}
