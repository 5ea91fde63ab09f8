package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrStaleReservation запись изменилась с момента чтения
	ErrStaleReservation = errors.New("reservation was modified concurrently")
	ErrUnknownResident  = errors.New("reservation owner does not exist")
)

const activeSlotIndex = "uq_reservations_active_slot"

const reservationColumns = `id, user_id, apartment_number, resident_name, date, time_slot, event, contact, notes,
	status, cancellation_reason, requested_at, created_at, updated_at`

type ReservationRepository struct {
	*base.Repository
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{Repository: base.NewRepository(pool)}
}

// SlotCheck решает, совместима ли новая бронь с активными бронями той же даты
type SlotCheck func(active []model.Reservation) error

// Create сохраняет новое бронирование.
// Брони одной даты создаются по очереди (advisory lock на дату в транзакции):
// check видит все активные брони даты, включая только что созданные другими.
// Повтор того же слота дополнительно ловит уникальный индекс → availability.ErrSlotTaken.
func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation, check SlotCheck) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}

	err := r.InTx(ctx, func(tx *base.Repository) error {
		if _, err := tx.ExecAffected(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, dateLockKey(res.Date)); err != nil {
			return fmt.Errorf("lock date: %w", err)
		}

		if check != nil {
			active, err := listReservations(ctx, tx, "list active reservations on date", `SELECT `+reservationColumns+`
				FROM reservations
				WHERE date = $1 AND status <> 'cancelled'
				ORDER BY time_slot, created_at`, res.Date.Time(time.UTC))
			if err != nil {
				return err
			}
			if err := check(active); err != nil {
				return err
			}
		}

		return insertReservation(ctx, tx, res)
	})
	if err != nil {
		if base.IsUniqueViolation(err, activeSlotIndex) {
			return fmt.Errorf("create reservation: %w", availability.ErrSlotTaken)
		}
		if base.IsForeignKeyViolation(err) {
			return fmt.Errorf("create reservation: %w", ErrUnknownResident)
		}
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

func insertReservation(ctx context.Context, db *base.Repository, res *model.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, apartment_number, resident_name, date, time_slot, event, contact, notes, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	return db.QueryRow(
		ctx, query,
		res.ID,
		res.UserID,
		res.ApartmentNumber,
		res.ResidentName,
		res.Date.Time(time.UTC),
		res.TimeSlot,
		res.Event,
		res.Contact,
		res.Notes,
		string(res.Status),
		res.RequestedAt,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// dateLockKey ключ advisory lock для дат бронирования
func dateLockKey(d model.Date) string {
	return "reservations:" + d.String()
}

// GetByID получает бронирование по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	var res model.Reservation
	if err := scanReservation(r.QueryRow(ctx, query, id), &res); err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}

	return &res, nil
}

// ListBetween бронирования с датой в [from, to], по дате и слоту
func (r *ReservationRepository) ListBetween(ctx context.Context, from, to model.Date) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, time_slot, created_at`

	return r.list(ctx, "list reservations between", query, from.Time(time.UTC), to.Time(time.UTC))
}

// ListByUser бронирования пользователя, новые даты первыми
func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY date DESC, time_slot`

	return r.list(ctx, "list reservations by user", query, userID)
}

// ListByStatus бронирования в статусе, ближайшие даты первыми
func (r *ReservationRepository) ListByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status = $1
		ORDER BY date, time_slot`

	return r.list(ctx, "list reservations by status", query, string(status))
}

// ListAll все бронирования, новые даты первыми
func (r *ReservationRepository) ListAll(ctx context.Context) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY date DESC, time_slot`

	return r.list(ctx, "list all reservations", query)
}

// CountActiveFromDate активные бронирования пользователя начиная с даты
func (r *ReservationRepository) CountActiveFromDate(ctx context.Context, userID int64, from model.Date) (int, error) {
	n, err := r.Count(ctx, `
		SELECT count(*) FROM reservations
		WHERE user_id = $1 AND date >= $2 AND status <> 'cancelled'
	`, userID, from.Time(time.UTC))
	if err != nil {
		return 0, fmt.Errorf("count active reservations: %w", err)
	}
	return n, nil
}

// UpdateStatus условное обновление статуса по updated_at.
// Если запись изменилась после чтения, возвращает ErrStaleReservation.
func (r *ReservationRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	expectedUpdatedAt time.Time,
	status model.ReservationStatus,
	reason *string,
) (*model.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = $1,
		    cancellation_reason = COALESCE($2, cancellation_reason),
		    updated_at = now()
		WHERE id = $3 AND updated_at = $4
		RETURNING ` + reservationColumns

	var res model.Reservation
	err := scanReservation(r.QueryRow(ctx, query, string(status), reason, id, expectedUpdatedAt), &res)
	if err == nil {
		return &res, nil
	}
	if !base.IsNotFound(err) {
		if base.IsUniqueViolation(err, activeSlotIndex) {
			return nil, fmt.Errorf("update reservation status: %w", availability.ErrSlotTaken)
		}
		return nil, fmt.Errorf("update reservation status: %w", err)
	}

	// Ни одна строка не совпала: либо записи нет, либо она устарела
	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if current == nil {
		return nil, fmt.Errorf("update reservation status: %w", availability.ErrReservationNotFound)
	}
	return nil, fmt.Errorf("update reservation status: %w", ErrStaleReservation)
}

func (r *ReservationRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]model.Reservation, error) {
	return listReservations(ctx, r.Repository, op, query, args...)
}

func listReservations(ctx context.Context, db *base.Repository, op, query string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := base.Collect(rows, scanReservation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// scanReservation читает строку и нормализует статус.
// Неизвестный статус в БД делает чтение ошибочным.
func scanReservation(row pgx.Row, res *model.Reservation) error {
	var (
		date   time.Time
		status string
	)
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.ApartmentNumber,
		&res.ResidentName,
		&date,
		&res.TimeSlot,
		&res.Event,
		&res.Contact,
		&res.Notes,
		&status,
		&res.CancellationReason,
		&res.RequestedAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return err
	}

	parsed, err := model.ParseReservationStatus(status)
	if err != nil {
		return fmt.Errorf("reservation %s: %w", res.ID, err)
	}

	res.Date = model.DateOf(date)
	res.Status = parsed
	return nil
}
