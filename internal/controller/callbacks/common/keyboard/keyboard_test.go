package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	assert.Nil(t, NewBuilder().Build())

	kb := NewBuilder().
		Row(Button("a", "1"), Button("b", "2")).
		Row().
		AddBackToMainButton().
		Build()

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "2", kb.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, BackToMainData, kb.InlineKeyboard[1][0].CallbackData)
}

func TestGrid(t *testing.T) {
	b := NewBuilder().Grid(3,
		Button("1", "1"), Button("2", "2"), Button("3", "3"),
		Button("4", "4"), Button("5", "5"),
	)
	kb := b.Build()

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[1], 2)
	assert.Equal(t, 2, b.Len())
}

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("p:", 0, 1))

	first := PaginationButtons("p:", 0, 3)
	require.Len(t, first, 2)
	assert.Equal(t, NoopData, first[0].CallbackData)
	assert.Equal(t, "p:1", first[1].CallbackData)

	middle := PaginationButtons("p:", 1, 3)
	require.Len(t, middle, 3)
	assert.Equal(t, "p:0", middle[0].CallbackData)
	assert.Equal(t, "📄 2/3", middle[1].Text)
	assert.Equal(t, "p:2", middle[2].CallbackData)

	last := PaginationButtons("p:", 2, 3)
	require.Len(t, last, 2)
	assert.Equal(t, "p:1", last[0].CallbackData)
}

func TestDialogButtons(t *testing.T) {
	kb := DialogCancel()
	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, DialogCancelData, kb.InlineKeyboard[0][0].CallbackData)

	row := ConfirmCancelButtons("yes", "no")
	require.Len(t, row, 2)
	assert.Equal(t, "yes", row[0].CallbackData)
	assert.Equal(t, "no", row[1].CallbackData)

	nav := MonthPagination("m:2024-05", "Июнь 2024", "m:2024-07")
	assert.Equal(t, NoopData, nav[1].CallbackData)
	assert.Equal(t, "📅 Июнь 2024", nav[1].Text)
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name                   string
		page, total, perPage   int
		wantPage, wantS, wantE int
	}{
		{"first page", 0, 25, 10, 0, 0, 10},
		{"last page", 2, 25, 10, 2, 20, 25},
		{"page past end", 9, 25, 10, 2, 20, 25},
		{"negative", -1, 25, 10, 0, 0, 10},
		{"empty", 0, 0, 10, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, start, end := PageBounds(tt.page, tt.total, tt.perPage)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantS, start)
			assert.Equal(t, tt.wantE, end)
		})
	}
}
