package state

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

// Discovery is one entry in the discovery log.
type Discovery struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Via       string    `json:"via"` // select, search or randomize
}

// Config holds configuration for the state manager.
type Config struct {
	MaxDiscoveries int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxDiscoveries: 50,
	}
}

// Manager owns the session, the scene objects and dataset status with
// thread-safe access.
type Manager struct {
	mu sync.RWMutex

	sessionID string
	session   Session
	objects   []scene.Object
	records   []exo.Record

	loading   bool
	lastLoad  time.Time
	lastError error
	loadTime  time.Duration

	// Discovery log (ring buffer)
	discoveries []Discovery
	maxDisc     int
	discWriteAt int

	now func() time.Time
}

// NewManager creates a new state manager with a fresh session.
func NewManager(cfg Config) *Manager {
	maxDisc := cfg.MaxDiscoveries
	if maxDisc <= 0 {
		maxDisc = 50
	}
	return &Manager{
		sessionID:   uuid.NewString(),
		session:     NewSession(),
		maxDisc:     maxDisc,
		discoveries: make([]Discovery, 0, maxDisc),
		now:         time.Now,
	}
}

// SessionID identifies this session in logs and exports.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// SetLoading marks a dataset load as in flight.
func (m *Manager) SetLoading() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = true
}

// SetScene installs a freshly generated scene. records must be the records
// the objects were generated from, in the same order. Discovered flags on
// the new objects follow the session, so a refresh keeps discoveries. A
// selection that no longer exists in the new scene is cleared.
func (m *Manager) SetScene(records []exo.Record, objects []scene.Object, loadTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loading = false
	m.lastError = nil
	m.lastLoad = m.now()
	m.loadTime = loadTime
	m.records = records
	m.objects = make([]scene.Object, len(objects))
	copy(m.objects, objects)
	for i := range m.objects {
		m.objects[i].Discovered = m.session.IsDiscovered(m.objects[i].ID)
	}
	if m.session.HasSelection() && scene.IndexOf(m.objects, m.session.Selected) < 0 {
		m.session, _ = Transition(m.session, Close{}, m.objects)
	}
}

// SetError records a failed load. The current scene is kept.
func (m *Manager) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	m.lastError = err
}

// Apply runs ev through Transition against the current scene and stores
// the result. Newly discovered objects are flagged and logged. A search
// that misses the scene but matches a cached record returns a
// *NotPlacedError.
func (m *Manager) Apply(ev Event) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Transition(m.session, ev, m.objects)
	if err != nil {
		if q, ok := ev.(Search); ok && exo.IsNotFound(err) {
			if i, ferr := exo.FindByName(m.records, q.Query); ferr == nil {
				r := m.records[i]
				return m.session, &NotPlacedError{Query: q.Query, ID: r.ID, Name: r.DisplayName()}
			}
		}
		return m.session, err
	}
	if next.Selected != "" && !m.session.IsDiscovered(next.Selected) {
		i := scene.IndexOf(m.objects, next.Selected)
		m.objects[i].Discovered = true
		m.addDiscovery(Discovery{
			ID:        next.Selected,
			Name:      m.objects[i].Name,
			Timestamp: m.now(),
			Via:       via(ev),
		})
	}
	m.session = next
	return next, nil
}

func via(ev Event) string {
	switch ev.(type) {
	case Search:
		return "search"
	case Randomize:
		return "randomize"
	default:
		return "select"
	}
}

// addDiscovery adds an entry to the ring buffer.
func (m *Manager) addDiscovery(d Discovery) {
	if len(m.discoveries) < m.maxDisc {
		m.discoveries = append(m.discoveries, d)
	} else {
		m.discoveries[m.discWriteAt] = d
		m.discWriteAt = (m.discWriteAt + 1) % m.maxDisc
	}
}

// getDiscoveriesOrdered returns discoveries oldest first.
func (m *Manager) getDiscoveriesOrdered() []Discovery {
	if len(m.discoveries) == 0 {
		return nil
	}
	if len(m.discoveries) < m.maxDisc {
		result := make([]Discovery, len(m.discoveries))
		copy(result, m.discoveries)
		return result
	}
	result := make([]Discovery, m.maxDisc)
	for i := 0; i < m.maxDisc; i++ {
		result[i] = m.discoveries[(m.discWriteAt+i)%m.maxDisc]
	}
	return result
}

// RecentDiscoveries returns the last n discoveries.
func (m *Manager) RecentDiscoveries(n int) []Discovery {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getDiscoveriesOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	SessionID   string
	Session     Session
	Objects     []scene.Object
	Records     []exo.Record
	Loading     bool
	LastLoad    time.Time
	LastError   error
	LoadTime    time.Duration
	Discoveries []Discovery
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	objs := make([]scene.Object, len(m.objects))
	copy(objs, m.objects)

	return Snapshot{
		SessionID:   m.sessionID,
		Session:     m.session,
		Objects:     objs,
		Records:     m.records,
		Loading:     m.loading,
		LastLoad:    m.lastLoad,
		LastError:   m.lastError,
		LoadTime:    m.loadTime,
		Discoveries: m.getDiscoveriesOrdered(),
	}
}

// Selected returns the selected object and its source record.
func (m *Manager) Selected() (scene.Object, exo.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return selectedIn(m.session, m.objects, m.records)
}

// Selected returns the selected object and its source record.
func (s Snapshot) Selected() (scene.Object, exo.Record, bool) {
	return selectedIn(s.Session, s.Objects, s.Records)
}

func selectedIn(s Session, objects []scene.Object, records []exo.Record) (scene.Object, exo.Record, bool) {
	if !s.HasSelection() {
		return scene.Object{}, exo.Record{}, false
	}
	i := scene.IndexOf(objects, s.Selected)
	if i < 0 {
		return scene.Object{}, exo.Record{}, false
	}
	for _, r := range records {
		if r.ID == s.Selected {
			return objects[i], r, true
		}
	}
	return objects[i], exo.Record{ID: s.Selected}, true
}

// IsUnknown reports whether err names an object not in the scene.
func IsUnknown(err error) bool {
	return errors.Is(err, ErrUnknownObject)
}
