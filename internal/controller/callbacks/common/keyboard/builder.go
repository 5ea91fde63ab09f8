package keyboard

import "github.com/go-telegram/bot/models"

// Builder собирает inline-клавиатуру по рядам
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Button кнопка с callback data
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: callbackData}
}

// Row добавляет ряд; пустой ряд пропускается
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Grid раскладывает кнопки по perRow в ряд (дни месяца, слоты)
func (b *Builder) Grid(perRow int, buttons ...models.InlineKeyboardButton) *Builder {
	if perRow <= 0 {
		perRow = 1
	}
	for len(buttons) > 0 {
		n := min(perRow, len(buttons))
		b.rows = append(b.rows, append([]models.InlineKeyboardButton(nil), buttons[:n]...))
		buttons = buttons[n:]
	}
	return b
}

func (b *Builder) Len() int {
	return len(b.rows)
}

// Build nil без рядов: такое сообщение уходит без клавиатуры
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	if len(b.rows) == 0 {
		return nil
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: b.rows}
}
