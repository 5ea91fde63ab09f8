package callbacktypes

import (
	"github.com/Freeeeeet/condo_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetString(telegramID int64, key string) (string, bool)
}

// Services сервисы, общие для команд и callback handlers
type Services struct {
	Users        *service.UserService
	Reservations *service.ReservationService
	Notices      *service.NoticeService
	Documents    *service.DocumentService
	Settings     *service.SettingsService
	Export       *service.ExportService
	Dashboard    *service.DashboardService
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Services
	StateManager StateManager
	Logger       *zap.Logger
}
