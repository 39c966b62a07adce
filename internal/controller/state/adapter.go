package state

import (
	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/callbacktypes"
	"github.com/AngelinAnto/OneAdmit/internal/filter"
)

var _ callbacktypes.StateManager = (*Adapter)(nil)

// Adapter exposes Manager through callbacktypes.StateManager
type Adapter struct {
	sm *Manager
}

// NewAdapter wraps the manager shared with the command handlers
func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{sm: sm}
}

func (a *Adapter) Filter(telegramID int64) filter.FilterSet {
	return a.sm.Filter(telegramID)
}

func (a *Adapter) TryBegin(telegramID int64, op string) bool {
	return a.sm.TryBegin(telegramID, op)
}

func (a *Adapter) Finish(telegramID int64, op string) {
	a.sm.Finish(telegramID, op)
}
