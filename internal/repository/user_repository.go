package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, telegram_id, username, display_name, apartment_number, role, created_at, updated_at`

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Upsert создаёт пользователя или обновляет имя из Telegram. Роль и квартира не затираются.
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, display_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    display_name = EXCLUDED.display_name,
		    updated_at = now()
		RETURNING ` + userColumns

	row := r.QueryRow(ctx, query, user.TelegramID, user.Username, user.DisplayName, string(user.Role))
	if err := scanUser(row, user); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	var user model.User
	if err := scanUser(r.QueryRow(ctx, query, telegramID), &user); err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return &user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	if err := scanUser(r.QueryRow(ctx, query, id), &user); err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// SetApartment обновляет номер квартиры
func (r *UserRepository) SetApartment(ctx context.Context, id int64, apartment string) error {
	n, err := r.ExecAffected(ctx, `
		UPDATE users SET apartment_number = $1, updated_at = now()
		WHERE id = $2
	`, apartment, id)
	if err != nil {
		return fmt.Errorf("set apartment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// SetRole меняет роль пользователя
func (r *UserRepository) SetRole(ctx context.Context, id int64, role model.UserRole) error {
	n, err := r.ExecAffected(ctx, `
		UPDATE users SET role = $1, updated_at = now()
		WHERE id = $2
	`, string(role), id)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// List все жители, упорядоченные по квартире
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY apartment_number, display_name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// CountAll количество зарегистрированных пользователей
func (r *UserRepository) CountAll(ctx context.Context) (int, error) {
	n, err := r.Count(ctx, `SELECT count(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row, user *model.User) error {
	var role string
	err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.DisplayName,
		&user.ApartmentNumber,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return err
	}
	user.Role = model.UserRole(role)
	return nil
}
