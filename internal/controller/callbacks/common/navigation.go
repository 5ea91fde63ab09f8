package common

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// MainMenuText текст главного меню с командами по роли
func MainMenuText(user *model.User, condoName string) string {
	var sb strings.Builder

	sb.WriteString("📋 <b>Главное меню</b>")
	if condoName != "" {
		fmt.Fprintf(&sb, " · %s", formatting.Escape(condoName))
	}
	sb.WriteString("\n\n")

	if user.HasApartment() {
		fmt.Fprintf(&sb, "🏠 Квартира: %s\n\n", formatting.Escape(user.ApartmentNumber))
	} else {
		sb.WriteString("🏠 Квартира не указана, используйте /apartment\n\n")
	}

	sb.WriteString("Доступные команды:\n" +
		"/calendar - Календарь салона\n" +
		"/reserve - Забронировать\n" +
		"/myreservations - Мои бронирования\n" +
		"/notices - Объявления\n" +
		"/documents - Документы\n" +
		"/dashboard - Сводка\n" +
		"/apartment - Указать квартиру\n" +
		"/help - Справка\n")

	if user.IsAdmin() {
		sb.WriteString("\nКоманды администратора:\n" +
			"/pending - Заявки на одобрение\n" +
			"/reservations - Все бронирования\n" +
			"/stats - Статистика\n" +
			"/export - Выгрузка в Excel\n" +
			"/residents - Жители\n" +
			"/newnotice - Новое объявление\n" +
			"/newdocument - Новый документ\n" +
			"/settings - Настройки")
	}

	return sb.String()
}

// MainMenuKeyboard кнопки разделов главного меню
func MainMenuKeyboard(user *model.User, today model.Date) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📅 Календарь", MonthData(today)),
			keyboard.Button("📋 Мои бронирования", RangePageData(MyRangePrefix, availability.RangeUpcoming, 0)),
		).
		Row(
			keyboard.Button("📢 Объявления", MenuNotices),
			keyboard.Button("📄 Документы", DocCategoryPrefix),
		).
		Row(keyboard.Button("📊 Сводка", MenuDashboard))

	if user.IsAdmin() {
		kb.Row(
			keyboard.Button("⏳ Заявки", PendingRefresh),
			keyboard.Button("🗂 Все брони", RangePageData(AllRangePrefix, availability.RangeUpcoming, 0)),
		).Row(
			keyboard.Button("👥 Жители", fmt.Sprintf("%s%d", ResidentsPagePrefix, 0)),
			keyboard.Button("📈 Статистика", MenuStats),
			keyboard.Button("⚙️ Настройки", MenuSettings),
		)
	}

	return kb.Build()
}

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(hc *HandlerContext) {
	hc.ClearState()

	settings, err := hc.Handler.Settings.Get(hc.Ctx)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to load settings for menu", zap.Error(err))
	}

	text := MainMenuText(hc.User, settings.CondominiumName)
	kb := MainMenuKeyboard(hc.User, hc.Handler.Reservations.Today())
	if err := hc.ReplaceMessage(text, kb); err != nil {
		HandleError(hc, err, "back_to_main")
		return
	}
	hc.Answer("")
}
