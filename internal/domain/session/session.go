// Package session holds the per-session working set of trial data. Each
// browser or API session carries the raw records it generated, the canonical
// records mapped from them, and the alerts raised against those records, so
// that concurrent users never see each other's data.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edc/edc/internal/domain/audit"
	"github.com/edc/edc/internal/domain/risk"
	"github.com/edc/edc/internal/domain/sdtm"
	"github.com/edc/edc/internal/domain/synthetic"
)

// Workspace is the mutable working set bound to a single session.
type Workspace struct {
	ID        string
	Raw       []synthetic.RawRecord
	Canonical []sdtm.CanonicalRecord
	Alerts    []risk.Alert
	LastEvent *audit.Event
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Manager keeps session workspaces in memory, keyed by session ID, and
// expires them after the configured TTL. It satisfies the workset interfaces
// the domain handlers declare.
type Manager struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	ttl        time.Duration
	now        func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		workspaces: make(map[string]*Workspace),
		ttl:        ttl,
		now:        time.Now,
	}
}

// Resolve returns the workspace ID for the given session ID, creating a
// workspace if the ID is empty, unknown, or expired.
func (m *Manager) Resolve(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked(id).ID
}

// locked fetches or creates a workspace. Callers must hold m.mu.
func (m *Manager) locked(id string) *Workspace {
	if id != "" {
		if ws, ok := m.workspaces[id]; ok && !m.expired(ws) {
			return ws
		}
	}
	if id == "" {
		id = uuid.New().String()
	}
	ws := &Workspace{
		ID:        id,
		CreatedAt: m.now().UTC(),
		UpdatedAt: m.now().UTC(),
	}
	m.workspaces[id] = ws
	return ws
}

// ReplaceRaw installs a freshly generated dataset and clears the downstream
// canonical records and alerts derived from the previous one.
func (m *Manager) ReplaceRaw(id string, records []synthetic.RawRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.locked(id)
	ws.Raw = records
	ws.Canonical = nil
	ws.Alerts = nil
	ws.UpdatedAt = m.now().UTC()
}

func (m *Manager) Raw(id string) []synthetic.RawRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ws, ok := m.workspaces[id]; ok && !m.expired(ws) {
		return ws.Raw
	}
	return nil
}

func (m *Manager) SetCanonical(id string, records []sdtm.CanonicalRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.locked(id)
	ws.Canonical = records
	ws.Alerts = nil
	ws.UpdatedAt = m.now().UTC()
}

func (m *Manager) Canonical(id string) []sdtm.CanonicalRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ws, ok := m.workspaces[id]; ok && !m.expired(ws) {
		return ws.Canonical
	}
	return nil
}

func (m *Manager) SetAlerts(id string, alerts []risk.Alert) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.locked(id)
	ws.Alerts = alerts
	ws.UpdatedAt = m.now().UTC()
}

func (m *Manager) Alerts(id string) []risk.Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ws, ok := m.workspaces[id]; ok && !m.expired(ws) {
		return ws.Alerts
	}
	return nil
}

func (m *Manager) SetLastEvent(id string, ev *audit.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.locked(id)
	ws.LastEvent = ev
	ws.UpdatedAt = m.now().UTC()
}

func (m *Manager) LastEvent(id string) *audit.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ws, ok := m.workspaces[id]; ok && !m.expired(ws) {
		return ws.LastEvent
	}
	return nil
}

// Sweep removes expired workspaces. Intended to run periodically from the
// server's background loop.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, ws := range m.workspaces {
		if m.expired(ws) {
			delete(m.workspaces, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live workspaces.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workspaces)
}

func (m *Manager) expired(ws *Workspace) bool {
	if m.ttl <= 0 {
		return false
	}
	return m.now().Sub(ws.UpdatedAt) > m.ttl
}
