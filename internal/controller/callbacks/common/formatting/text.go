package formatting

import (
	"fmt"
	"html"
	"unicode/utf8"
)

// Escape экранирует пользовательский текст для ParseModeHTML
func Escape(s string) string {
	return html.EscapeString(s)
}

// Truncate обрезает строку до max символов (не байт)
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// FormatFileSize размер файла в человекочитаемом виде
func FormatFileSize(size int64) string {
	const unit = 1024
	switch {
	case size <= 0:
		return "—"
	case size < unit:
		return fmt.Sprintf("%d Б", size)
	case size < unit*unit:
		return fmt.Sprintf("%.1f КБ", float64(size)/unit)
	default:
		return fmt.Sprintf("%.1f МБ", float64(size)/(unit*unit))
	}
}

// Deref значение указателя или запасной текст
func Deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
