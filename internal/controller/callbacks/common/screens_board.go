package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// NoticeExpiryOptions варианты срока объявления в днях, 0 = бессрочно
var NoticeExpiryOptions = []int{0, 3, 7, 30}

// BuildNoticesScreen список объявлений. Администратор видит и скрытые, с кнопками управления.
func BuildNoticesScreen(notices []*model.Notice, isAdmin bool, now time.Time) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("📢 <b>Объявления</b>\n\n")

	if len(notices) == 0 {
		sb.WriteString("<i>Объявлений нет.</i>")
	}

	kb := keyboard.NewBuilder()
	for _, n := range notices {
		priority := formatting.GetNoticePriorityDisplay(n.Priority)
		fmt.Fprintf(&sb, "%s <b>%s</b>", priority.Emoji, formatting.Escape(n.Title))
		if !n.IsActive {
			sb.WriteString(" <i>(скрыто)</i>")
		} else if n.IsExpired(now) {
			sb.WriteString(" <i>(истекло)</i>")
		}
		fmt.Fprintf(&sb, "\n%s\n", formatting.Escape(n.Content))
		fmt.Fprintf(&sb, "<i>%s", formatting.FormatDateTime(n.PublishedAt))
		if n.ExpiresAt != nil {
			fmt.Fprintf(&sb, " · до %s", formatting.FormatDateTime(*n.ExpiresAt))
		}
		sb.WriteString("</i>\n\n")

		if isAdmin {
			toggle := "⏸ Скрыть"
			if !n.IsActive {
				toggle = "▶️ Показать"
			}
			kb.Row(
				keyboard.Button(fmt.Sprintf("%s: %s", toggle, formatting.Truncate(n.Title, 18)), ReservationData(NoticeTogglePrefix, n.ID)),
				keyboard.DeleteButton(ReservationData(NoticeDeletePrefix, n.ID)),
			)
		}
	}

	kb.AddBackToMainButton()
	return sb.String(), kb.Build()
}

// NoticePriorityKeyboard выбор важности нового объявления
func NoticePriorityKeyboard() *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(model.NoticePriorities))
	for _, p := range model.NoticePriorities {
		buttons = append(buttons, keyboard.Button(formatting.GetNoticePriorityDisplay(p).String(), NoticePriorityPrefix+string(p)))
	}
	return keyboard.NewBuilder().Grid(2, buttons...).Row(keyboard.CancelButton(keyboard.DialogCancelData)).Build()
}

// NoticeExpiryKeyboard выбор срока действия объявления
func NoticeExpiryKeyboard() *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(NoticeExpiryOptions))
	for _, days := range NoticeExpiryOptions {
		label := "♾ Бессрочно"
		if days > 0 {
			label = fmt.Sprintf("%d %s", days, formatting.PluralizeDays(days))
		}
		buttons = append(buttons, keyboard.Button(label, fmt.Sprintf("%s%d", NoticeExpiryPrefix, days)))
	}
	return keyboard.NewBuilder().Grid(2, buttons...).Row(keyboard.CancelButton(keyboard.DialogCancelData)).Build()
}

// categoryName подпись категории документа
func categoryName(category string) string {
	names := map[string]string{
		model.DocumentCategoryRules:     "📘 Регламент",
		model.DocumentCategoryMinutes:   "📝 Протоколы",
		model.DocumentCategoryStatement: "📣 Сообщения",
		model.DocumentCategoryFinancial: "💰 Финансы",
		model.DocumentCategoryOther:     "📁 Прочее",
	}
	if name, ok := names[category]; ok {
		return name
	}
	return "📁 " + category
}

// BuildDocumentsScreen список документов с фильтром по категории
func BuildDocumentsScreen(docs []*model.Document, category string, isAdmin bool) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("📄 <b>Документы</b>")
	if category != "" {
		fmt.Fprintf(&sb, " · %s", categoryName(category))
	}
	sb.WriteString("\n\n")

	if len(docs) == 0 {
		sb.WriteString("<i>Документов нет.</i>")
	}

	kb := keyboard.NewBuilder()

	filters := []models.InlineKeyboardButton{keyboard.Button(markCurrent("📚 Все", category == ""), DocCategoryPrefix)}
	for _, c := range model.DocumentCategories {
		filters = append(filters, keyboard.Button(markCurrent(categoryName(c), c == category), DocCategoryPrefix+c))
	}
	kb.Grid(3, filters...)

	for _, d := range docs {
		fmt.Fprintf(&sb, "%s <b>%s</b> · %s\n", categoryName(d.Category), formatting.Escape(d.Title), formatting.FormatFileSize(d.FileSize))
		if d.Description != "" {
			fmt.Fprintf(&sb, "%s\n", formatting.Escape(d.Description))
		}

		row := []models.InlineKeyboardButton{
			keyboard.Button("⬇️ "+formatting.Truncate(d.Title, 24), ReservationData(DocOpenPrefix, d.ID)),
		}
		if isAdmin {
			row = append(row, keyboard.DeleteButton(ReservationData(DocDeletePrefix, d.ID)))
		}
		kb.Row(row...)
	}

	kb.AddBackToMainButton()
	return sb.String(), kb.Build()
}

// DocumentCategoryKeyboard выбор категории нового документа
func DocumentCategoryKeyboard() *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(model.DocumentCategories))
	for _, c := range model.DocumentCategories {
		buttons = append(buttons, keyboard.Button(categoryName(c), DocNewCategoryPrefix+c))
	}
	return keyboard.NewBuilder().Grid(2, buttons...).Row(keyboard.CancelButton(keyboard.DialogCancelData)).Build()
}

func markCurrent(label string, current bool) string {
	if current {
		return "• " + label
	}
	return label
}
