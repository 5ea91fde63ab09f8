package model

import "time"

// Settings настройки кондоминиума (одна строка в таблице settings)
type Settings struct {
	CondominiumName string `json:"condominium_name" validate:"max=120"`
	Address         string `json:"address"`
	AdminPhone      string `json:"admin_phone"`
	AdminEmail      string `json:"admin_email" validate:"omitempty,email"`
	TotalApartments int    `json:"total_apartments" validate:"gte=0"`

	// Правила бронирования
	// 0 = без ограничения
	MaxDaysAdvance int `json:"max_days_advance" validate:"gte=0,lte=365"`
	// активных будущих на пользователя, 0 = без ограничения
	MaxReservationsPerUser   int  `json:"max_reservations_per_user" validate:"gte=0,lte=50"`
	AllowWeekendReservations bool `json:"allow_weekend_reservations"`
	RequireApproval          bool `json:"require_approval"`
	CancellationHours        int  `json:"cancellation_hours" validate:"gte=0,lte=720"`

	// Уведомления: только сохраняются, рассылки нет
	EmailNotifications        bool `json:"email_notifications"`
	StatusChangeNotifications bool `json:"status_change_notifications"`
	ReminderHours             int  `json:"reminder_hours" validate:"gte=0,lte=168"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings значения по умолчанию, пока администратор ничего не сохранил
func DefaultSettings() Settings {
	return Settings{
		CondominiumName:           "Кондоминиум",
		MaxDaysAdvance:            30,
		MaxReservationsPerUser:    2,
		AllowWeekendReservations:  true,
		RequireApproval:           true,
		CancellationHours:         24,
		EmailNotifications:        true,
		StatusChangeNotifications: true,
		ReminderHours:             2,
	}
}
