package state

import (
	"time"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
)

// UserState шаг диалога; общий тип с callback handlers
type UserState = callbacktypes.UserState

const (
	StateNone UserState = "" // Нет активного состояния

	// Номер квартиры
	StateEnterApartment UserState = "enter_apartment"

	// Форма бронирования: событие -> контакт -> примечания -> подтверждение
	StateReserveEvent   UserState = "reserve_event"
	StateReserveContact UserState = "reserve_contact"
	StateReserveNotes   UserState = "reserve_notes"
	StateReserveConfirm UserState = "reserve_confirm"

	// Причина отклонения или отмены бронирования
	StateRejectReason UserState = "reject_reason"
	StateCancelReason UserState = "cancel_reason"

	// Публикация объявления
	StateNoticeTitle    UserState = "notice_title"
	StateNoticeContent  UserState = "notice_content"
	StateNoticePriority UserState = "notice_priority"
	StateNoticeExpiry   UserState = "notice_expiry"

	// Загрузка документа
	StateDocumentTitle    UserState = "document_title"
	StateDocumentCategory UserState = "document_category"
	StateDocumentFile     UserState = "document_file"

	// Редактирование настроек
	StateSettingsNumber UserState = "settings_number"
	StateSettingsText   UserState = "settings_text"
)

// Ключи временных данных диалога
const (
	KeyDate          = "date"
	KeySlot          = "slot"
	KeyEvent         = "event"
	KeyContact       = "contact"
	KeyNotes         = "notes"
	KeyReservationID = "reservation_id"
	KeyNext          = "next"
	KeyTitle         = "title"
	KeyContent       = "content"
	KeyPriority      = "priority"
	KeyCategory      = "category"
	KeyField         = "field"
)

// NextReserve после ввода квартиры открыть календарь
const NextReserve = "reserve"

// UserData шаг и временные данные диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{}
	UpdatedAt time.Time
}

// IsReservationForm относится ли шаг к форме бронирования
func IsReservationForm(s UserState) bool {
	switch s {
	case StateReserveEvent, StateReserveContact, StateReserveNotes, StateReserveConfirm:
		return true
	}
	return false
}
