package navigation

import (
	"fmt"
	"sort"
	"sync"
)

// Provider materializes a view and its controller from a logical view
// name. Resolve fails for unregistered names; every call produces a
// fresh instance.
type Provider interface {
	Resolve(name string) (View, Controller, error)
}

// Factory creates one view instance together with its controller,
// already wired together.
type Factory func() (View, Controller, error)

// BehaviorFactory creates one behavior instance for attachment to a
// freshly resolved view.
type BehaviorFactory func() Behavior

// Registry is the default Provider: a name-to-factory table with
// optional per-view and global behavior factories. Registration is
// safe for concurrent use; resolution is as well.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	behaviors map[string][]BehaviorFactory
	global    []BehaviorFactory
}

// NewRegistry creates an empty view registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		behaviors: make(map[string][]BehaviorFactory),
	}
}

// Register adds a view factory under name.
// Returns ErrViewAlreadyRegistered if the name is taken.
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("%w: %s", ErrNilFactory, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrViewAlreadyRegistered, name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister registers a view factory and panics on error.
// Useful for registering built-in views at init time.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Replace installs a factory under name, overwriting any existing one.
// Used by live view reloading; running view instances are unaffected.
func (r *Registry) Replace(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("%w: %s", ErrNilFactory, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
	return nil
}

// RegisterBehavior adds a behavior factory applied to every resolved
// instance of the named view that implements BehaviorHost.
func (r *Registry) RegisterBehavior(name string, factory BehaviorFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.behaviors[name] = append(r.behaviors[name], factory)
}

// RegisterGlobalBehavior adds a behavior factory applied to every
// resolved view that implements BehaviorHost.
func (r *Registry) RegisterGlobalBehavior(factory BehaviorFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = append(r.global, factory)
}

// Has reports whether a factory is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[name]
	return exists
}

// Names returns the registered view names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve materializes a fresh view and controller for name.
func (r *Registry) Resolve(name string) (View, Controller, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, nil, fmt.Errorf("%w: %s", ErrViewNotRegistered, name)
	}

	view, ctrl, err := factory()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving view %s: %w", name, err)
	}
	if view == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNilView, name)
	}
	return view, ctrl, nil
}

// BehaviorAttacher is an optional Provider capability. When the
// provider implements it, the engine invokes it after controller
// initialization and before the first navigated notification.
type BehaviorAttacher interface {
	AttachBehaviors(name string, view View)
}

// AttachBehaviors creates and attaches the behaviors registered for
// name to a freshly resolved view.
func (r *Registry) AttachBehaviors(name string, view View) {
	host, ok := view.(BehaviorHost)
	if !ok {
		return
	}

	r.mu.RLock()
	factories := make([]BehaviorFactory, 0, len(r.global)+len(r.behaviors[name]))
	factories = append(factories, r.global...)
	factories = append(factories, r.behaviors[name]...)
	r.mu.RUnlock()

	for _, factory := range factories {
		b := factory()
		if b == nil {
			continue
		}
		host.AddBehavior(b)
		b.Attach(view)
	}
}
