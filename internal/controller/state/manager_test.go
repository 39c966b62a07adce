package state

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/AngelinAnto/OneAdmit/internal/filter"
	"github.com/stretchr/testify/assert"
)

func TestManager_StateAndData(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateProfilePhone)
	sm.SetData(1, "name", "Priya")
	assert.Equal(t, StateProfilePhone, sm.GetState(1))

	v, ok := sm.GetData(1, "name")
	assert.True(t, ok)
	assert.Equal(t, "Priya", v)

	data := sm.GetAllData(1)
	data["name"] = "changed"
	v, _ = sm.GetData(1, "name")
	assert.Equal(t, "Priya", v, "GetAllData must return a copy")

	sm.SetState(1, StateNone)
	_, ok = sm.GetData(1, "name")
	assert.False(t, ok)
}

func TestManager_ClearStateKeepsFilter(t *testing.T) {
	sm := NewManager()
	f := filter.FilterSet{Cities: []string{"Chennai"}}

	sm.SetFilter(7, f)
	sm.SetState(7, StateCollegeName)
	sm.ClearState(7)

	assert.Equal(t, StateNone, sm.GetState(7))
	assert.Equal(t, f, sm.Filter(7))

	sm.SetFilter(7, filter.FilterSet{})
	assert.True(t, sm.Filter(7).IsEmpty())
}

func TestManager_TryBegin(t *testing.T) {
	sm := NewManager()

	assert.True(t, sm.TryBegin(1, OpApply))
	assert.False(t, sm.TryBegin(1, OpApply), "second apply while the first is running")
	assert.True(t, sm.TryBegin(1, OpBook), "other operations are not blocked")
	assert.True(t, sm.TryBegin(2, OpApply), "other users are not blocked")

	sm.Finish(1, OpApply)
	assert.True(t, sm.TryBegin(1, OpApply))
}

func TestManager_TryBeginConcurrent(t *testing.T) {
	sm := NewManager()

	var (
		wg      sync.WaitGroup
		started atomic.Int32
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sm.TryBegin(42, OpBook) {
				started.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), started.Load())
}
