package http

import (
	"sync"

	"doanhso/internal/core"
)

// snapshotState holds the latest successfully extracted snapshot. It is
// only replaced on success, so a failed upload leaves the previous data
// queryable. The generation counter feeds cache keys: a replacement makes
// every older total unreachable without explicit invalidation.
type snapshotState struct {
	mu   sync.RWMutex
	snap *core.Snapshot
	gen  uint64
}

func (st *snapshotState) current() (*core.Snapshot, uint64) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snap, st.gen
}

func (st *snapshotState) replace(snap *core.Snapshot) uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snap = snap
	st.gen++
	return st.gen
}
