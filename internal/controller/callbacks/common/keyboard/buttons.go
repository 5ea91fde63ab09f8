package keyboard

import "github.com/go-telegram/bot/models"

const (
	NoopData         = "noop"
	BackToMainData   = "back_to_main"
	DialogCancelData = "dialog_cancel"
)

// NoopButton подпись без действия: заголовки, прошедшие дни, номер страницы
func NoopButton(text string) models.InlineKeyboardButton {
	return Button(text, NoopData)
}

func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

func DeleteButton(callbackData string) models.InlineKeyboardButton {
	return Button("🗑 Удалить", callbackData)
}

// ConfirmCancelButtons ряд "Подтвердить / Отмена" под сводкой заявки
func ConfirmCancelButtons(confirmData, cancelData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("✅ Подтвердить", confirmData),
		CancelButton(cancelData),
	}
}

// DialogCancel клавиатура шага диалога
func DialogCancel() *models.InlineKeyboardMarkup {
	return NewBuilder().Row(CancelButton(DialogCancelData)).Build()
}

func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(Button("⬅️ Назад", callbackData))
}

func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(Button("🏠 В главное меню", BackToMainData))
}
