package navigation

import (
	"fmt"

	"github.com/dshills/regionav/internal/event"
)

// journal records lifecycle calls in order so tests can assert the
// exact sequencing the engine guarantees.
type journal struct {
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

// testView implements the full capability set and journals every hook.
type testView struct {
	name    string
	j       *journal
	binding any

	behaviors []Behavior

	initErr    error
	navToErr   error
	navFromErr error
	destroyErr error

	destroyCount int
}

func (v *testView) Initialize(params *Parameters) error {
	v.j.add("%s:init", v.name)
	return v.initErr
}

func (v *testView) OnNavigatedTo(params *Parameters) error {
	v.j.add("%s:to:%s", v.name, params.Direction())
	return v.navToErr
}

func (v *testView) OnNavigatedFrom(params *Parameters) error {
	v.j.add("%s:from:%s", v.name, params.Direction())
	return v.navFromErr
}

func (v *testView) Destroy() error {
	v.destroyCount++
	v.j.add("%s:destroy", v.name)
	return v.destroyErr
}

func (v *testView) OnResume()       { v.j.add("%s:resume", v.name) }
func (v *testView) OnSuspend()      { v.j.add("%s:suspend", v.name) }
func (v *testView) OnAppearing()    { v.j.add("%s:appearing", v.name) }
func (v *testView) OnDisappearing() { v.j.add("%s:disappearing", v.name) }

func (v *testView) SetBindingContext(ctx any) { v.binding = ctx }
func (v *testView) BindingContext() any       { return v.binding }

func (v *testView) AddBehavior(b Behavior) { v.behaviors = append(v.behaviors, b) }
func (v *testView) Behaviors() []Behavior  { return v.behaviors }
func (v *testView) ClearBehaviors()        { v.behaviors = nil }

// testBehavior journals attach/detach.
type testBehavior struct {
	j        *journal
	attached View
}

func (b *testBehavior) Attach(v View) {
	b.attached = v
	if tv, ok := v.(*testView); ok {
		b.j.add("behavior:attach:%s", tv.name)
	}
}

func (b *testBehavior) Detach() {
	if tv, ok := b.attached.(*testView); ok {
		b.j.add("behavior:detach:%s", tv.name)
	}
	b.attached = nil
}

// rig bundles a registry, manager, and journal with per-name instance
// tracking so tests can reach materialized views.
type rig struct {
	registry *Registry
	manager  *Manager
	bus      *event.Bus
	j        *journal
	created  map[string][]*testView
}

func newRig(names ...string) *rig {
	rg := &rig{
		registry: NewRegistry(),
		bus:      event.NewBus(),
		j:        &journal{},
		created:  make(map[string][]*testView),
	}
	rg.manager = NewManager(rg.registry, WithBus(rg.bus))
	for _, name := range names {
		rg.register(name)
	}
	return rg
}

// register installs a factory whose view doubles as its controller.
func (rg *rig) register(name string) {
	rg.registry.MustRegister(name, func() (View, Controller, error) {
		v := &testView{name: name, j: rg.j}
		rg.created[name] = append(rg.created[name], v)
		return v, v, nil
	})
}

// last returns the most recently materialized instance of name.
func (rg *rig) last(name string) *testView {
	views := rg.created[name]
	if len(views) == 0 {
		return nil
	}
	return views[len(views)-1]
}

// root creates a root region.
func (rg *rig) root() *Region {
	r, err := rg.manager.Add("root", nil)
	if err != nil {
		panic(err)
	}
	return r
}

// closeCounter counts Close calls for scope tests.
type closeCounter struct {
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return nil
}
