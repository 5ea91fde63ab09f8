package common

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// ResidentsPageSize жителей на одной странице
const ResidentsPageSize = 15

// settingsFieldNames подписи редактируемых полей
var settingsFieldNames = map[service.SettingsField]string{
	service.SettingsMaxDaysAdvance:         "Дней вперёд",
	service.SettingsMaxReservationsPerUser: "Активных на жителя",
	service.SettingsCancellationHours:      "Отмена за (ч)",
	service.SettingsReminderHours:          "Напоминание за (ч)",
	service.SettingsTotalApartments:        "Всего квартир",
	service.SettingsAllowWeekend:           "Выходные",
	service.SettingsRequireApproval:        "Одобрение",
	service.SettingsEmailNotifications:     "Email-уведомления",
	service.SettingsStatusNotifications:    "Уведомления о статусе",
	service.SettingsCondominiumName:        "Название",
	service.SettingsAddress:                "Адрес",
	service.SettingsAdminPhone:             "Телефон",
	service.SettingsAdminEmail:             "Email",
}

// SettingsFieldName подпись поля настроек
func SettingsFieldName(field service.SettingsField) string {
	if name, ok := settingsFieldNames[field]; ok {
		return name
	}
	return string(field)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return formatting.Escape(s)
}

func limitText(n int) string {
	if n == 0 {
		return "без ограничения"
	}
	return fmt.Sprintf("%d", n)
}

// BuildSettingsScreen экран настроек кондоминиума
func BuildSettingsScreen(s model.Settings) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"⚙️ <b>Настройки</b>\n\n"+
			"🏢 <b>Кондоминиум</b>\n"+
			"Название: %s\n"+
			"Адрес: %s\n"+
			"Телефон: %s\n"+
			"Email: %s\n"+
			"Всего квартир: %d\n\n"+
			"📅 <b>Правила бронирования</b>\n"+
			"Дней вперёд: %s\n"+
			"Активных на жителя: %s\n"+
			"Выходные: %s\n"+
			"Одобрение администратором: %s\n"+
			"Отмена не позднее чем за: %d %s\n\n"+
			"🔔 <b>Уведомления</b>\n"+
			"Email: %s\n"+
			"О смене статуса: %s\n"+
			"Напоминание за: %d %s\n"+
			"<i>Уведомления только сохраняются, рассылка не выполняется.</i>",
		orDash(s.CondominiumName),
		orDash(s.Address),
		orDash(s.AdminPhone),
		orDash(s.AdminEmail),
		s.TotalApartments,
		limitText(s.MaxDaysAdvance),
		limitText(s.MaxReservationsPerUser),
		formatting.OnOff(s.AllowWeekendReservations),
		formatting.OnOff(s.RequireApproval),
		s.CancellationHours, formatting.PluralizeHours(s.CancellationHours),
		formatting.OnOff(s.EmailNotifications),
		formatting.OnOff(s.StatusChangeNotifications),
		s.ReminderHours, formatting.PluralizeHours(s.ReminderHours),
	)

	toggle := func(field service.SettingsField, on bool) models.InlineKeyboardButton {
		return keyboard.Button(
			fmt.Sprintf("%s: %s", SettingsFieldName(field), formatting.OnOff(on)),
			SettingsTogglePrefix+string(field),
		)
	}
	edit := func(field service.SettingsField) models.InlineKeyboardButton {
		return keyboard.Button("✏️ "+SettingsFieldName(field), SettingsEditPrefix+string(field))
	}

	kb := keyboard.NewBuilder().
		Grid(2,
			toggle(service.SettingsAllowWeekend, s.AllowWeekendReservations),
			toggle(service.SettingsRequireApproval, s.RequireApproval),
			toggle(service.SettingsEmailNotifications, s.EmailNotifications),
			toggle(service.SettingsStatusNotifications, s.StatusChangeNotifications),
		).
		Grid(2,
			edit(service.SettingsMaxDaysAdvance),
			edit(service.SettingsMaxReservationsPerUser),
			edit(service.SettingsCancellationHours),
			edit(service.SettingsReminderHours),
			edit(service.SettingsTotalApartments),
		).
		Grid(2,
			edit(service.SettingsCondominiumName),
			edit(service.SettingsAddress),
			edit(service.SettingsAdminPhone),
			edit(service.SettingsAdminEmail),
		).
		AddBackToMainButton()

	return text, kb.Build()
}

// BuildStatsScreen сводка по бронированиям
func BuildStatsScreen(summary availability.Summary) string {
	return fmt.Sprintf(
		"📊 <b>Статистика бронирований</b>\n\n"+
			"Всего: %d\n"+
			"⏳ Ожидают одобрения: %d\n"+
			"✅ Подтверждены: %d\n"+
			"❌ Отменены: %d\n\n"+
			"📆 Подтверждённых на ближайшие %d дней: %d",
		summary.Total,
		summary.Pending,
		summary.Confirmed,
		summary.Cancelled,
		availability.UpcomingWindowDays,
		summary.Upcoming,
	)
}

// BuildResidentsScreen список жителей с кнопками смены роли
func BuildResidentsScreen(users []*model.User, page int, actorID int64) (string, *models.InlineKeyboardMarkup) {
	total := len(users)
	page, start, end := keyboard.PageBounds(page, total, ResidentsPageSize)

	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 <b>Жители</b> · %d %s\n\n", total, formatting.PluralizeResidents(total))
	if total == 0 {
		sb.WriteString("<i>Пока никто не зарегистрировался.</i>")
	}

	kb := keyboard.NewBuilder()
	for _, u := range users[start:end] {
		role := formatting.GetRoleDisplay(u.Role)
		apt := u.ApartmentNumber
		if apt == "" {
			apt = "?"
		}
		fmt.Fprintf(&sb, "%s кв. %s · %s", role.Emoji, formatting.Escape(apt), formatting.Escape(DisplayName(u)))
		if u.Username != "" {
			fmt.Fprintf(&sb, " (@%s)", formatting.Escape(u.Username))
		}
		sb.WriteString("\n")

		if u.ID == actorID {
			continue
		}
		action := "👑 Сделать администратором"
		if u.IsAdmin() {
			action = "🏠 Сделать жителем"
		}
		kb.Row(keyboard.Button(
			fmt.Sprintf("%s: %s", formatting.Truncate(DisplayName(u), 20), action),
			fmt.Sprintf("%s%d", RolePrefix, u.ID),
		))
	}

	kb.Row(keyboard.PaginationButtons(ResidentsPagePrefix, page, keyboard.TotalPages(total, ResidentsPageSize))...)
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// BuildDashboardScreen главная панель
func BuildDashboardScreen(d *service.Dashboard, condoName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🏢 <b>%s</b>\n", orDash(condoName))
	fmt.Fprintf(&sb, "📅 Сегодня: %s\n\n", formatting.FormatDateWithWeekday(d.Today))

	count := len(d.TodayReservations)
	fmt.Fprintf(&sb, "🎉 Сегодня %d %s\n", count, formatting.PluralizeReservations(count))
	for _, r := range d.TodayReservations {
		display := formatting.GetReservationStatusDisplay(r.Status)
		fmt.Fprintf(&sb, "  %s %s · кв. %s\n", display.Emoji, formatting.Escape(r.TimeSlot), formatting.Escape(r.ApartmentNumber))
	}

	fmt.Fprintf(&sb, "\n📢 Активных объявлений: %d\n", d.ActiveNotices)
	fmt.Fprintf(&sb, "📄 Документов: %d\n", d.Documents)
	fmt.Fprintf(&sb, "👥 Жителей: %d\n", d.Residents)

	if d.Summary != nil {
		fmt.Fprintf(&sb, "\n📊 Всего бронирований: %d · ⏳ %d · ✅ %d · ❌ %d\n",
			d.Summary.Total, d.Summary.Pending, d.Summary.Confirmed, d.Summary.Cancelled)

		if len(d.Upcoming) > 0 {
			sb.WriteString("\n📆 <b>Ближайшие подтверждённые</b>\n")
			for _, r := range d.Upcoming {
				fmt.Fprintf(&sb, "  %s · %s · кв. %s\n",
					formatting.FormatDate(r.Date), formatting.Escape(r.TimeSlot), formatting.Escape(r.ApartmentNumber))
			}
		}
	}

	return sb.String()
}

// DisplayName имя пользователя для форм и списков
func DisplayName(u *model.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Username != "" {
		return u.Username
	}
	return fmt.Sprintf("id%d", u.TelegramID)
}
