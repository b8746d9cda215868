package navigation

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/regionav/internal/event"
)

// Manager is the region registry. It creates regions, keeps the
// name-to-region table, and answers the child-region discovery queries
// the recursion in Region relies on. The region tree is never stored
// as edges: ChildRegionsOf recomputes it from host identity on demand.
//
// Registration and lookup are safe for concurrent use. The regions
// themselves are not; see Region.
type Manager struct {
	mu       sync.RWMutex
	regions  map[string]*Region
	provider Provider
	bus      *event.Bus
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithBus attaches an event bus; regions created by the manager
// publish navigation and lifecycle events to it.
func WithBus(bus *event.Bus) ManagerOption {
	return func(m *Manager) {
		m.bus = bus
	}
}

// NewManager creates a manager resolving views through provider.
func NewManager(provider Provider, opts ...ManagerOption) *Manager {
	m := &Manager{
		regions:  make(map[string]*Region),
		provider: provider,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegionOption configures a region at creation.
type RegionOption func(*Region)

// WithScope binds a scoped resource to the region, closed exactly once
// at DestroyAll.
func WithScope(scope io.Closer) RegionOption {
	return func(r *Region) {
		r.scope = scope
	}
}

// Add creates and registers a region under name, nested under host.
// A root region uses a nil host. Returns ErrRegionExists for a
// duplicate name.
func (m *Manager) Add(name string, host View, opts ...RegionOption) (*Region, error) {
	if name == "" {
		return nil, fmt.Errorf("add region: empty name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.regions[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrRegionExists, name)
	}

	r := &Region{
		name:     name,
		host:     host,
		provider: m.provider,
		manager:  m,
		bus:      m.bus,
		current:  -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	m.regions[name] = r
	return r, nil
}

// AddAnonymous creates and registers a region under a generated
// unique name.
func (m *Manager) AddAnonymous(host View, opts ...RegionOption) *Region {
	for {
		r, err := m.Add("region-"+uuid.NewString(), host, opts...)
		if err == nil {
			return r
		}
	}
}

// Region returns the region registered under name, or nil.
func (m *Manager) Region(name string) *Region {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.regions[name]
}

// Names returns all registered region names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.regions))
	for name := range m.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChildRegionsOf returns the regions hosted inside the given content
// item, sorted by name so broadcast order is deterministic. A nil host
// matches nothing.
func (m *Manager) ChildRegionsOf(host View) []*Region {
	if host == nil {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var children []*Region
	for _, r := range m.regions {
		if same(r.host, host) {
			children = append(children, r)
		}
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].name < children[j].name
	})
	return children
}

// RemoveHolder deregisters the named region without destroying it.
// Reports whether an entry was removed. DestroyAll calls this as its
// final step.
func (m *Manager) RemoveHolder(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.regions[name]; !exists {
		return false
	}
	delete(m.regions, name)
	return true
}
