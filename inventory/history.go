package inventory

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/AntonStoeckl/school-library-lending/core"
)

// historyLog is append-only. Appends extend the shared backing array beyond the length
// any published header covers, so readers holding an older header are never affected.
type historyLog struct {
	mu      sync.Mutex
	records atomic.Pointer[[]core.BorrowRecord]
}

func (h *historyLog) append(records ...core.BorrowRecord) {
	if len(records) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var current []core.BorrowRecord
	if p := h.records.Load(); p != nil {
		current = *p
	}

	next := append(current, records...)
	h.records.Store(&next)
}

func (h *historyLog) snapshot() []core.BorrowRecord {
	p := h.records.Load()
	if p == nil {
		return []core.BorrowRecord{}
	}

	return slices.Clone(*p)
}
