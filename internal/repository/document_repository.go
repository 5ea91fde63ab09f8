package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/condo_bot/internal/model"
	"github.com/Freeeeeet/condo_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `id, title, description, category, file_id, file_name, file_size, uploaded_by, uploaded_at`

type DocumentRepository struct {
	*base.Repository
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет метаданные документа
func (r *DocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	query := `
		INSERT INTO documents (id, title, description, category, file_id, file_name, file_size, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING uploaded_at
	`

	err := r.QueryRow(
		ctx, query,
		doc.ID,
		doc.Title,
		doc.Description,
		doc.Category,
		doc.FileID,
		doc.FileName,
		doc.FileSize,
		doc.UploadedBy,
	).Scan(&doc.UploadedAt)

	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID получает документ по ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	var doc model.Document
	if err := scanDocument(r.QueryRow(ctx, query, id), &doc); err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by id: %w", err)
	}

	return &doc, nil
}

// List документы категории, пустая категория означает все
func (r *DocumentRepository) List(ctx context.Context, category string) ([]*model.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents
		WHERE $1 = '' OR category = $1
		ORDER BY uploaded_at DESC`

	rows, err := r.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		var doc model.Document
		if err := scanDocument(rows, &doc); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// Delete удаляет запись о документе. Файл в Telegram остаётся.
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.ExecAffected(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document not found")
	}
	return nil
}

// CountAll количество документов
func (r *DocumentRepository) CountAll(ctx context.Context) (int, error) {
	n, err := r.Count(ctx, `SELECT count(*) FROM documents`)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func scanDocument(row pgx.Row, doc *model.Document) error {
	return row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Description,
		&doc.Category,
		&doc.FileID,
		&doc.FileName,
		&doc.FileSize,
		&doc.UploadedBy,
		&doc.UploadedAt,
	)
}
