package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// CallbackArg возвращает часть data после префикса
// Например: "approve:abc", "approve:" -> "abc"
func CallbackArg(data, prefix string) (string, error) {
	if !strings.HasPrefix(data, prefix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return strings.TrimPrefix(data, prefix), nil
}

// ParseIDFromCallback извлекает числовой ID из callback data
// Например: "role:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return id, nil
}

// ParseUUIDFromCallback извлекает UUID из callback data
// Например: "approve:<uuid>" -> uuid
func ParseUUIDFromCallback(data string) (uuid.UUID, error) {
	idx := strings.LastIndex(data, ":")
	if idx < 0 {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	id, err := uuid.Parse(data[idx+1:])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return id, nil
}
