package model

import (
	"time"

	"github.com/google/uuid"
)

// Стандартные категории документов. Поле свободное, список только для подсказок.
const (
	DocumentCategoryRules     = "regulamento"
	DocumentCategoryMinutes   = "ata"
	DocumentCategoryStatement = "comunicado"
	DocumentCategoryFinancial = "financeiro"
	DocumentCategoryOther     = "outros"
)

// DocumentCategories категории, предлагаемые кнопками
var DocumentCategories = []string{
	DocumentCategoryRules,
	DocumentCategoryMinutes,
	DocumentCategoryStatement,
	DocumentCategoryFinancial,
	DocumentCategoryOther,
}

// Document документ кондоминиума. Сам файл хранится в Telegram, здесь только file_id.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FileID      string    `json:"file_id"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	UploadedBy  int64     `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
