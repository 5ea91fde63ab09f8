package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"   // Ожидает одобрения администратора
	ReservationStatusConfirmed ReservationStatus = "confirmed" // Подтверждена
	ReservationStatusCancelled ReservationStatus = "cancelled" // Отклонена или отменена
)

// ErrUnknownStatus возвращается для строк вне закрытого набора статусов
var ErrUnknownStatus = errors.New("unknown reservation status")

// ParseReservationStatus нормализует статус, пришедший из БД или callback data.
// "canceled" принимается как синоним "cancelled".
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return ReservationStatusPending, nil
	case "confirmed":
		return ReservationStatusConfirmed, nil
	case "cancelled", "canceled":
		return ReservationStatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// CanTransition проверяет допустимость перехода статуса.
// cancelled терминальный, автоматического истечения нет.
func CanTransition(from, to ReservationStatus) bool {
	switch from {
	case ReservationStatusPending:
		return to == ReservationStatusConfirmed || to == ReservationStatusCancelled
	case ReservationStatusConfirmed:
		return to == ReservationStatusCancelled
	case ReservationStatusCancelled:
		return false
	default:
		return false
	}
}

// Reservation заявка на использование общей зоны в конкретную дату и слот
type Reservation struct {
	ID                 uuid.UUID         `json:"id"`
	UserID             int64             `json:"user_id"`
	ApartmentNumber    string            `json:"apartment_number"`
	ResidentName       string            `json:"resident_name"`
	Date               Date              `json:"date"`
	TimeSlot           string            `json:"time_slot"`
	Event              string            `json:"event"`
	Contact            string            `json:"contact"`
	Notes              *string           `json:"notes,omitempty"`
	Status             ReservationStatus `json:"status"`
	CancellationReason *string           `json:"cancellation_reason,omitempty"`
	RequestedAt        time.Time         `json:"requested_at"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// IsActive true для любого статуса, кроме cancelled (занимает слот)
func (r *Reservation) IsActive() bool {
	return r.Status != ReservationStatusCancelled
}

// ReservationDraft данные формы бронирования (без id и статуса)
type ReservationDraft struct {
	Date         Date
	TimeSlot     string  `validate:"required,max=64"`
	ResidentName string  `validate:"required,min=2,max=120"`
	Apartment    string  `validate:"required,max=20"`
	Event        string  `validate:"required,min=3,max=200"`
	Contact      string  `validate:"required,min=5,max=100"`
	Notes        *string `validate:"omitempty,max=1000"`
}
