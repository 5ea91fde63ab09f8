package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const noticeColumns = `id, title, content, priority, is_active, published_by, published_at, expires_at`

type NoticeRepository struct {
	*base.Repository
}

func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{Repository: base.NewRepository(pool)}
}

// Create публикует объявление
func (r *NoticeRepository) Create(ctx context.Context, notice *model.Notice) error {
	if notice.ID == uuid.Nil {
		notice.ID = uuid.New()
	}

	query := `
		INSERT INTO notices (id, title, content, priority, is_active, published_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING published_at
	`

	err := r.QueryRow(
		ctx, query,
		notice.ID,
		notice.Title,
		notice.Content,
		string(notice.Priority),
		notice.IsActive,
		notice.PublishedBy,
		notice.ExpiresAt,
	).Scan(&notice.PublishedAt)

	if err != nil {
		return fmt.Errorf("create notice: %w", err)
	}

	return nil
}

// GetByID получает объявление по ID
func (r *NoticeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices WHERE id = $1`

	var notice model.Notice
	if err := scanNotice(r.QueryRow(ctx, query, id), &notice); err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notice by id: %w", err)
	}

	return &notice, nil
}

// ListActive активные и не истёкшие объявления, новые первыми
func (r *NoticeRepository) ListActive(ctx context.Context, now time.Time) ([]*model.Notice, error) {
	query := `SELECT ` + noticeColumns + `
		FROM notices
		WHERE is_active AND (expires_at IS NULL OR expires_at > $1)
		ORDER BY published_at DESC`

	return r.list(ctx, "list active notices", query, now)
}

// ListAll все объявления, новые первыми
func (r *NoticeRepository) ListAll(ctx context.Context) ([]*model.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices ORDER BY published_at DESC`

	return r.list(ctx, "list notices", query)
}

// SetActive включает или снимает объявление с публикации
func (r *NoticeRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	n, err := r.ExecAffected(ctx, `UPDATE notices SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set notice active: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("notice not found")
	}
	return nil
}

// Delete удаляет объявление
func (r *NoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM notices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	return nil
}

// DeactivateExpired снимает с публикации истёкшие объявления
func (r *NoticeRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.ExecAffected(ctx, `
		UPDATE notices SET is_active = false
		WHERE is_active AND expires_at IS NOT NULL AND expires_at <= $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired notices: %w", err)
	}
	return n, nil
}

// CountActive количество действующих объявлений
func (r *NoticeRepository) CountActive(ctx context.Context, now time.Time) (int, error) {
	n, err := r.Count(ctx, `
		SELECT count(*) FROM notices
		WHERE is_active AND (expires_at IS NULL OR expires_at > $1)
	`, now)
	if err != nil {
		return 0, fmt.Errorf("count active notices: %w", err)
	}
	return n, nil
}

func (r *NoticeRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]*model.Notice, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	notices, err := base.Collect(rows, scanNotice)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]*model.Notice, len(notices))
	for i := range notices {
		out[i] = &notices[i]
	}
	return out, nil
}

func scanNotice(row pgx.Row, notice *model.Notice) error {
	var priority string
	err := row.Scan(
		&notice.ID,
		&notice.Title,
		&notice.Content,
		&priority,
		&notice.IsActive,
		&notice.PublishedBy,
		&notice.PublishedAt,
		&notice.ExpiresAt,
	)
	if err != nil {
		return err
	}
	notice.Priority = model.NoticePriority(priority)
	return nil
}
