package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/repository"
	"github.com/google/uuid"
)

// Интерфейсы хранилищ. Реализации в internal/repository.

type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetApartment(ctx context.Context, id int64, apartment string) error
	SetRole(ctx context.Context, id int64, role model.UserRole) error
	List(ctx context.Context) ([]*model.User, error)
	CountAll(ctx context.Context) (int, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *model.Reservation, check repository.SlotCheck) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	ListBetween(ctx context.Context, from, to model.Date) ([]model.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error)
	ListByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	CountActiveFromDate(ctx context.Context, userID int64, from model.Date) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expectedUpdatedAt time.Time, status model.ReservationStatus, reason *string) (*model.Reservation, error)
}

type NoticeRepository interface {
	Create(ctx context.Context, notice *model.Notice) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Notice, error)
	ListActive(ctx context.Context, now time.Time) ([]*model.Notice, error)
	ListAll(ctx context.Context) ([]*model.Notice, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	CountActive(ctx context.Context, now time.Time) (int, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	List(ctx context.Context, category string) ([]*model.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, s *model.Settings) error
}

// requireAdmin общая проверка прав администратора
func requireAdmin(actor *model.User) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
