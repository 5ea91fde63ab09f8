package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoticeDraft данные нового объявления
type NoticeDraft struct {
	Title     string `validate:"required,min=3,max=200"`
	Content   string `validate:"required,max=4000"`
	Priority  model.NoticePriority
	ExpiresAt *time.Time
}

type NoticeService struct {
	repo   NoticeRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewNoticeService(repo NoticeRepository, logger *zap.Logger) *NoticeService {
	return &NoticeService{repo: repo, now: time.Now, logger: logger}
}

// Publish публикует объявление
func (s *NoticeService) Publish(ctx context.Context, actor *model.User, draft NoticeDraft) (*model.Notice, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Content = strings.TrimSpace(draft.Content)
	if draft.Priority == "" {
		draft.Priority = model.NoticePriorityNormal
	}
	if !draft.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, draft.Priority)
	}
	if draft.ExpiresAt != nil && !draft.ExpiresAt.After(s.now()) {
		return nil, fmt.Errorf("%w: expiry is in the past", ErrValidation)
	}
	if err := validateStruct(draft); err != nil {
		return nil, err
	}

	notice := &model.Notice{
		ID:          uuid.New(),
		Title:       draft.Title,
		Content:     draft.Content,
		Priority:    draft.Priority,
		IsActive:    true,
		PublishedBy: actor.ID,
		ExpiresAt:   draft.ExpiresAt,
	}
	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}

	s.logger.Info("Notice published",
		zap.String("notice_id", notice.ID.String()),
		zap.Int64("actor_id", actor.ID),
		zap.String("priority", string(notice.Priority)),
	)
	return notice, nil
}

// ListActive действующие объявления для жителей
func (s *NoticeService) ListActive(ctx context.Context) ([]*model.Notice, error) {
	notices, err := s.repo.ListActive(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list active notices: %w", err)
	}
	return notices, nil
}

// ListAll все объявления, включая снятые
func (s *NoticeService) ListAll(ctx context.Context, actor *model.User) ([]*model.Notice, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	notices, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// Toggle включает или снимает объявление с публикации
func (s *NoticeService) Toggle(ctx context.Context, actor *model.User, id uuid.UUID) (*model.Notice, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	notice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get notice: %w", err)
	}
	if notice == nil {
		return nil, ErrNotFound
	}

	if err := s.repo.SetActive(ctx, id, !notice.IsActive); err != nil {
		return nil, fmt.Errorf("toggle notice: %w", err)
	}
	notice.IsActive = !notice.IsActive

	s.logger.Info("Notice toggled",
		zap.String("notice_id", id.String()),
		zap.Int64("actor_id", actor.ID),
		zap.Bool("active", notice.IsActive),
	)
	return notice, nil
}

// Delete удаляет объявление
func (s *NoticeService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	s.logger.Info("Notice deleted", zap.String("notice_id", id.String()), zap.Int64("actor_id", actor.ID))
	return nil
}

// ExpireDue снимает с публикации объявления с истёкшим сроком
func (s *NoticeService) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.DeactivateExpired(ctx, now)
}

// CountActive количество действующих объявлений
func (s *NoticeService) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx, s.now())
}
