package state

import (
	"sync"
	"time"
)

// DefaultDialogTTL через сколько бездействия незавершённый диалог забывается
const DefaultDialogTTL = 30 * time.Minute

// Manager хранит диалоги пользователей в памяти.
// Диалог без активности дольше ttl считается завершённым.
type Manager struct {
	mu     sync.Mutex
	states map[int64]*UserData // telegramID -> UserData
	ttl    time.Duration
	now    func() time.Time
}

// NewManager менеджер с DefaultDialogTTL
func NewManager() *Manager {
	return NewManagerWithTTL(DefaultDialogTTL)
}

// NewManagerWithTTL менеджер с заданным временем жизни диалога, 0 = без ограничения
func NewManagerWithTTL(ttl time.Duration) *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
		ttl:    ttl,
		now:    time.Now,
	}
}

// lookup запись пользователя; устаревшая удаляется. Вызывать под mu.
func (sm *Manager) lookup(telegramID int64) (*UserData, bool) {
	userData, exists := sm.states[telegramID]
	if !exists {
		return nil, false
	}
	if sm.ttl > 0 && sm.now().Sub(userData.UpdatedAt) > sm.ttl {
		delete(sm.states, telegramID)
		return nil, false
	}
	return userData, true
}

// entry запись пользователя, создаётся при необходимости. Вызывать под mu.
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, ok := sm.lookup(telegramID)
	if !ok {
		userData = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
		sm.states[telegramID] = userData
	}
	userData.UpdatedAt = sm.now()
	return userData
}

// GetState текущий шаг диалога
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, ok := sm.lookup(telegramID); ok {
		return userData.State
	}
	return StateNone
}

// SetState переводит диалог на шаг state, данные сохраняются.
// StateNone завершает диалог.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}
	sm.entry(telegramID).State = state
}

// GetData значение из данных диалога
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, ok := sm.lookup(telegramID); ok {
		value, found := userData.Data[key]
		return value, found
	}
	return nil, false
}

// SetData сохраняет значение в данных диалога
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

// GetString строковое значение из данных диалога
func (sm *Manager) GetString(telegramID int64, key string) (string, bool) {
	value, ok := sm.GetData(telegramID, key)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// ClearState завершает диалог и удаляет его данные
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
