package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentDraft метаданные загруженного в Telegram файла
type DocumentDraft struct {
	Title       string `validate:"required,min=3,max=200"`
	Description string `validate:"max=1000"`
	Category    string `validate:"required,max=50"`
	FileID      string `validate:"required"`
	FileName    string `validate:"max=255"`
	FileSize    int64  `validate:"gte=0"`
}

type DocumentService struct {
	repo   DocumentRepository
	logger *zap.Logger
}

func NewDocumentService(repo DocumentRepository, logger *zap.Logger) *DocumentService {
	return &DocumentService{repo: repo, logger: logger}
}

// Add сохраняет документ
func (s *DocumentService) Add(ctx context.Context, actor *model.User, draft DocumentDraft) (*model.Document, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.Category = strings.ToLower(strings.TrimSpace(draft.Category))
	if draft.Category == "" {
		draft.Category = model.DocumentCategoryOther
	}
	if err := validateStruct(draft); err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:          uuid.New(),
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		FileID:      draft.FileID,
		FileName:    draft.FileName,
		FileSize:    draft.FileSize,
		UploadedBy:  actor.ID,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	s.logger.Info("Document added",
		zap.String("document_id", doc.ID.String()),
		zap.Int64("actor_id", actor.ID),
		zap.String("category", doc.Category),
	)
	return doc, nil
}

// List документы категории, пустая строка означает все
func (s *DocumentService) List(ctx context.Context, category string) ([]*model.Document, error) {
	docs, err := s.repo.List(ctx, strings.ToLower(strings.TrimSpace(category)))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Get документ по id
func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Delete удаляет документ
func (s *DocumentService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	s.logger.Info("Document deleted", zap.String("document_id", id.String()), zap.Int64("actor_id", actor.ID))
	return nil
}

// CountAll количество документов
func (s *DocumentService) CountAll(ctx context.Context) (int, error) {
	return s.repo.CountAll(ctx)
}
