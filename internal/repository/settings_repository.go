package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository struct {
	*base.Repository
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{Repository: base.NewRepository(pool)}
}

// Get читает единственную строку настроек. nil, если администратор ещё ничего не сохранял.
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	query := `
		SELECT condominium_name, address, admin_phone, admin_email, total_apartments,
		       max_days_advance, max_reservations_per_user, allow_weekend_reservations,
		       require_approval, cancellation_hours,
		       email_notifications, status_change_notifications, reminder_hours,
		       updated_at
		FROM settings
		WHERE id = 1
	`

	var s model.Settings
	err := r.QueryRow(ctx, query).Scan(
		&s.CondominiumName,
		&s.Address,
		&s.AdminPhone,
		&s.AdminEmail,
		&s.TotalApartments,
		&s.MaxDaysAdvance,
		&s.MaxReservationsPerUser,
		&s.AllowWeekendReservations,
		&s.RequireApproval,
		&s.CancellationHours,
		&s.EmailNotifications,
		&s.StatusChangeNotifications,
		&s.ReminderHours,
		&s.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}

// Save записывает настройки целиком
func (r *SettingsRepository) Save(ctx context.Context, s *model.Settings) error {
	query := `
		INSERT INTO settings (id, condominium_name, address, admin_phone, admin_email, total_apartments,
		                      max_days_advance, max_reservations_per_user, allow_weekend_reservations,
		                      require_approval, cancellation_hours,
		                      email_notifications, status_change_notifications, reminder_hours, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
		ON CONFLICT (id) DO UPDATE SET
			condominium_name = EXCLUDED.condominium_name,
			address = EXCLUDED.address,
			admin_phone = EXCLUDED.admin_phone,
			admin_email = EXCLUDED.admin_email,
			total_apartments = EXCLUDED.total_apartments,
			max_days_advance = EXCLUDED.max_days_advance,
			max_reservations_per_user = EXCLUDED.max_reservations_per_user,
			allow_weekend_reservations = EXCLUDED.allow_weekend_reservations,
			require_approval = EXCLUDED.require_approval,
			cancellation_hours = EXCLUDED.cancellation_hours,
			email_notifications = EXCLUDED.email_notifications,
			status_change_notifications = EXCLUDED.status_change_notifications,
			reminder_hours = EXCLUDED.reminder_hours,
			updated_at = now()
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		s.CondominiumName,
		s.Address,
		s.AdminPhone,
		s.AdminEmail,
		s.TotalApartments,
		s.MaxDaysAdvance,
		s.MaxReservationsPerUser,
		s.AllowWeekendReservations,
		s.RequireApproval,
		s.CancellationHours,
		s.EmailNotifications,
		s.StatusChangeNotifications,
		s.ReminderHours,
	).Scan(&s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
