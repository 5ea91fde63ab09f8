package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"go.uber.org/zap"
)

// SettingsField редактируемое из бота поле настроек
type SettingsField string

const (
	SettingsMaxDaysAdvance         SettingsField = "max_days_advance"
	SettingsMaxReservationsPerUser SettingsField = "max_reservations_per_user"
	SettingsCancellationHours      SettingsField = "cancellation_hours"
	SettingsReminderHours          SettingsField = "reminder_hours"
	SettingsTotalApartments        SettingsField = "total_apartments"

	SettingsAllowWeekend        SettingsField = "allow_weekend_reservations"
	SettingsRequireApproval     SettingsField = "require_approval"
	SettingsEmailNotifications  SettingsField = "email_notifications"
	SettingsStatusNotifications SettingsField = "status_change_notifications"

	SettingsCondominiumName SettingsField = "condominium_name"
	SettingsAddress         SettingsField = "address"
	SettingsAdminPhone      SettingsField = "admin_phone"
	SettingsAdminEmail      SettingsField = "admin_email"
)

type SettingsService struct {
	repo   SettingsRepository
	logger *zap.Logger
}

func NewSettingsService(repo SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get текущие настройки или значения по умолчанию
func (s *SettingsService) Get(ctx context.Context) (model.Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if stored == nil {
		return model.DefaultSettings(), nil
	}
	return *stored, nil
}

// Save проверяет и сохраняет настройки целиком
func (s *SettingsService) Save(ctx context.Context, actor *model.User, settings model.Settings) (model.Settings, error) {
	if err := requireAdmin(actor); err != nil {
		return model.Settings{}, err
	}
	if err := validateStruct(settings); err != nil {
		return model.Settings{}, err
	}

	if err := s.repo.Save(ctx, &settings); err != nil {
		return model.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.logger.Info("Settings updated", zap.Int64("actor_id", actor.ID))
	return settings, nil
}

// Toggle переключает булево поле
func (s *SettingsService) Toggle(ctx context.Context, actor *model.User, field SettingsField) (model.Settings, error) {
	if err := requireAdmin(actor); err != nil {
		return model.Settings{}, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return model.Settings{}, err
	}

	switch field {
	case SettingsAllowWeekend:
		current.AllowWeekendReservations = !current.AllowWeekendReservations
	case SettingsRequireApproval:
		current.RequireApproval = !current.RequireApproval
	case SettingsEmailNotifications:
		current.EmailNotifications = !current.EmailNotifications
	case SettingsStatusNotifications:
		current.StatusChangeNotifications = !current.StatusChangeNotifications
	default:
		return model.Settings{}, fmt.Errorf("%w: %s is not a toggle", ErrValidation, field)
	}

	return s.Save(ctx, actor, current)
}

// SetNumber задаёт числовое поле
func (s *SettingsService) SetNumber(ctx context.Context, actor *model.User, field SettingsField, value int) (model.Settings, error) {
	if err := requireAdmin(actor); err != nil {
		return model.Settings{}, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return model.Settings{}, err
	}

	switch field {
	case SettingsMaxDaysAdvance:
		current.MaxDaysAdvance = value
	case SettingsMaxReservationsPerUser:
		current.MaxReservationsPerUser = value
	case SettingsCancellationHours:
		current.CancellationHours = value
	case SettingsReminderHours:
		current.ReminderHours = value
	case SettingsTotalApartments:
		current.TotalApartments = value
	default:
		return model.Settings{}, fmt.Errorf("%w: %s is not numeric", ErrValidation, field)
	}

	return s.Save(ctx, actor, current)
}

// SetText задаёт текстовое поле с информацией о кондоминиуме
func (s *SettingsService) SetText(ctx context.Context, actor *model.User, field SettingsField, value string) (model.Settings, error) {
	if err := requireAdmin(actor); err != nil {
		return model.Settings{}, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return model.Settings{}, err
	}

	switch field {
	case SettingsCondominiumName:
		current.CondominiumName = value
	case SettingsAddress:
		current.Address = value
	case SettingsAdminPhone:
		current.AdminPhone = value
	case SettingsAdminEmail:
		current.AdminEmail = value
	default:
		return model.Settings{}, fmt.Errorf("%w: %s is not a text field", ErrValidation, field)
	}

	return s.Save(ctx, actor, current)
}

// IsNumeric относится ли поле к числовым
func (f SettingsField) IsNumeric() bool {
	switch f {
	case SettingsMaxDaysAdvance, SettingsMaxReservationsPerUser, SettingsCancellationHours,
		SettingsReminderHours, SettingsTotalApartments:
		return true
	}
	return false
}

// IsText относится ли поле к текстовым
func (f SettingsField) IsText() bool {
	switch f {
	case SettingsCondominiumName, SettingsAddress, SettingsAdminPhone, SettingsAdminEmail:
		return true
	}
	return false
}
