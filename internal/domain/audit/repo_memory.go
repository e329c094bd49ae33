package audit

import (
	"context"
	"sort"
	"sync"
)

// LogRepoMemory keeps the audit trail in memory. Used when the server runs
// without a database and as the test double for the service.
type LogRepoMemory struct {
	mu   sync.RWMutex
	logs []*Log
}

func NewLogRepoMemory() *LogRepoMemory {
	return &LogRepoMemory{}
}

func (r *LogRepoMemory) Insert(_ context.Context, log *Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *LogRepoMemory) ListRecent(_ context.Context, limit int) ([]*Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.logs) == 0 {
		return nil, ErrNoLogs
	}
	sorted := r.sortedDesc()
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *LogRepoMemory) List(_ context.Context, limit, offset int) ([]*Log, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := r.sortedDesc()
	total := len(sorted)

	if offset >= total {
		return []*Log{}, total, nil
	}
	sorted = sorted[offset:]
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, total, nil
}

// sortedDesc returns a copy ordered newest first. Callers must hold r.mu.
func (r *LogRepoMemory) sortedDesc() []*Log {
	sorted := make([]*Log, len(r.logs))
	copy(sorted, r.logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}
