package state

import (
	"sync"

	"github.com/AngelinAnto/OneAdmit/internal/filter"
)

type inFlightKey struct {
	telegramID int64
	op         string
}

// Manager keeps per-user dialog state, the last college filter
// and the mutations currently in flight
type Manager struct {
	mu       sync.RWMutex
	states   map[int64]*UserData // telegramID -> UserData
	filters  map[int64]filter.FilterSet
	inFlight map[inFlightKey]struct{}
}

func NewManager() *Manager {
	return &Manager{
		states:   make(map[int64]*UserData),
		filters:  make(map[int64]filter.FilterSet),
		inFlight: make(map[inFlightKey]struct{}),
	}
}

// GetState returns the user's dialog step
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState moves the user to a dialog step. StateNone drops the dialog data too.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}

	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &UserData{
			State: state,
			Data:  make(map[string]interface{}),
		}
	} else {
		sm.states[telegramID].State = state
	}
}

func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
	}
	sm.states[telegramID].Data[key] = value
}

// ClearState drops the dialog. The saved filter and in-flight marks survive.
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData returns a copy of the dialog data
func (sm *Manager) GetAllData(telegramID int64) map[string]interface{} {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		dataCopy := make(map[string]interface{}, len(userData.Data))
		for k, v := range userData.Data {
			dataCopy[k] = v
		}
		return dataCopy
	}
	return nil
}

// Filter returns the college filter the user applied last
func (sm *Manager) Filter(telegramID int64) filter.FilterSet {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.filters[telegramID]
}

func (sm *Manager) SetFilter(telegramID int64, f filter.FilterSet) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if f.IsEmpty() {
		delete(sm.filters, telegramID)
		return
	}
	sm.filters[telegramID] = f
}

// TryBegin marks op as running for the user. It returns false when the same
// op is already running; the caller must not proceed then.
func (sm *Manager) TryBegin(telegramID int64, op string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	key := inFlightKey{telegramID: telegramID, op: op}
	if _, busy := sm.inFlight[key]; busy {
		return false
	}
	sm.inFlight[key] = struct{}{}
	return true
}

// Finish releases the mark set by TryBegin
func (sm *Manager) Finish(telegramID int64, op string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.inFlight, inFlightKey{telegramID: telegramID, op: op})
}
