package model

import "time"

type UserRole string

const (
	UserRoleResident UserRole = "resident"
	UserRoleAdmin    UserRole = "admin"
)

// User профиль жителя, связанный с аккаунтом Telegram
type User struct {
	ID              int64     `json:"id"`
	TelegramID      int64     `json:"telegram_id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"display_name"`
	ApartmentNumber string    `json:"apartment_number"`
	Role            UserRole  `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsAdmin проверяет роль администратора
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// HasApartment указан ли номер квартиры
func (u *User) HasApartment() bool {
	return u != nil && u.ApartmentNumber != ""
}
