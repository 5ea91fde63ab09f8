package keyboard

import (
	"strconv"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons ряд ⬅️ N/M ➡️ для 0-based page.
// Callback кнопок prefix+номер страницы. Одна страница даёт nil.
func PaginationButtons(prefix string, page, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	buttons := make([]models.InlineKeyboardButton, 0, 3)
	if page > 0 {
		buttons = append(buttons, Button("⬅️", prefix+strconv.Itoa(page-1)))
	}
	buttons = append(buttons, NoopButton("📄 "+strconv.Itoa(page+1)+"/"+strconv.Itoa(totalPages)))
	if page < totalPages-1 {
		buttons = append(buttons, Button("➡️", prefix+strconv.Itoa(page+1)))
	}
	return buttons
}

// MonthPagination ◀️ месяц ▶️ над сеткой календаря
func MonthPagination(prevData, title, nextData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️", prevData),
		NoopButton("📅 " + title),
		Button("▶️", nextData),
	}
}

// TotalPages не меньше одной страницы, даже для пустого списка
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// PageBounds приводит page к [0, TotalPages) и возвращает срез [start, end)
func PageBounds(page, total, perPage int) (int, int, int) {
	page = max(0, min(page, TotalPages(total, perPage)-1))
	start := min(page*perPage, max(total, 0))
	end := min(start+perPage, max(total, 0))
	return page, start, end
}
