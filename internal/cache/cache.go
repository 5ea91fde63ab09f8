// Package cache хранит снимки бронирований по месяцам.
// Ключ: condo:reservations:YYYY-MM. Инвалидация при любом изменении брони.
package cache

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/model"
)

const keyPrefix = "condo:reservations:"

// MonthCache снимок бронирований месяца
type MonthCache interface {
	// Get возвращает снимок и признак попадания
	Get(ctx context.Context, month model.Date) ([]model.Reservation, bool, error)
	Set(ctx context.Context, month model.Date, reservations []model.Reservation) error
	Invalidate(ctx context.Context, month model.Date) error
}

// MonthKey ключ снимка для месяца даты
func MonthKey(month model.Date) string {
	return fmt.Sprintf("%s%04d-%02d", keyPrefix, month.Year, int(month.Month))
}

// Noop кэш, который ничего не хранит
type Noop struct{}

func (Noop) Get(context.Context, model.Date) ([]model.Reservation, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, model.Date, []model.Reservation) error { return nil }

func (Noop) Invalidate(context.Context, model.Date) error { return nil }
