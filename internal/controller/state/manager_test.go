package state

import (
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_StateLifecycle(t *testing.T) {
	sm := NewManager()
	const id int64 = 42

	assert.Equal(t, StateNone, sm.GetState(id))

	sm.SetState(id, StateReserveEvent)
	sm.SetData(id, KeyDate, "2024-06-10")
	assert.Equal(t, StateReserveEvent, sm.GetState(id))

	date, ok := sm.GetString(id, KeyDate)
	require.True(t, ok)
	assert.Equal(t, "2024-06-10", date)

	// переход сохраняет данные
	sm.SetState(id, StateReserveContact)
	_, ok = sm.GetData(id, KeyDate)
	assert.True(t, ok)

	sm.SetState(id, StateNone)
	assert.Equal(t, StateNone, sm.GetState(id))
	_, ok = sm.GetData(id, KeyDate)
	assert.False(t, ok)
}

func TestManager_GetStringWrongType(t *testing.T) {
	sm := NewManager()
	sm.SetData(1, KeyField, 10)

	_, ok := sm.GetString(1, KeyField)
	assert.False(t, ok)
	_, ok = sm.GetString(1, "missing")
	assert.False(t, ok)
}

func TestManager_DialogExpires(t *testing.T) {
	sm := NewManagerWithTTL(10 * time.Minute)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	sm.SetState(1, StateNoticeTitle)
	sm.SetData(1, KeyTitle, "Manutenção")

	now = now.Add(9 * time.Minute)
	assert.Equal(t, StateNoticeTitle, sm.GetState(1))

	// запись данных продлевает диалог
	sm.SetData(1, KeyContent, "Elevador parado")
	now = now.Add(9 * time.Minute)
	title, ok := sm.GetString(1, KeyTitle)
	require.True(t, ok)
	assert.Equal(t, "Manutenção", title)

	now = now.Add(11 * time.Minute)
	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok = sm.GetString(1, KeyTitle)
	assert.False(t, ok)

	// новый диалог после истечения начинается с чистых данных
	sm.SetState(1, StateDocumentTitle)
	_, ok = sm.GetString(1, KeyContent)
	assert.False(t, ok)
}

func TestManager_NoTTL(t *testing.T) {
	sm := NewManagerWithTTL(0)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	sm.SetState(1, StateReserveEvent)
	now = now.Add(72 * time.Hour)
	assert.Equal(t, StateReserveEvent, sm.GetState(1))
}

func TestManager_Concurrent(t *testing.T) {
	sm := NewManager()
	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateReserveEvent)
			sm.SetData(id, KeyEvent, "festa")
			sm.GetState(id)
			sm.ClearState(id)
		}(i)
	}
	wg.Wait()
	for i := int64(0); i < 50; i++ {
		assert.Equal(t, StateNone, sm.GetState(i))
	}
}

func TestManager_ImplementsCallbackStateManager(t *testing.T) {
	var sm callbacktypes.StateManager = NewManager()

	sm.SetState(7, StateRejectReason)
	sm.SetData(7, KeyReservationID, "abc")

	assert.Equal(t, StateRejectReason, sm.GetState(7))
	id, ok := sm.GetString(7, KeyReservationID)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	sm.ClearState(7)
	assert.Equal(t, StateNone, sm.GetState(7))
}

func TestIsReservationForm(t *testing.T) {
	assert.True(t, IsReservationForm(StateReserveNotes))
	assert.False(t, IsReservationForm(StateRejectReason))
	assert.False(t, IsReservationForm(StateNone))
}
