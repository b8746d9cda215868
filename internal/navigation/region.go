package navigation

import (
	"errors"
	"io"
	"runtime/debug"

	"github.com/dshills/regionav/internal/event"
)

// entry is one owned stack slot: the materialized view, its
// controller, and the logical name it was resolved from.
type entry struct {
	name string
	view View
	ctrl Controller
}

// Region is a navigation host: an ordered stack of views with a single
// current pointer, the navigation operations over it, and the
// lifecycle propagation into regions nested under its content.
//
// A Region exclusively owns its stack. It is created by a Manager and
// ends its own lifetime with DestroyAll. All methods assume
// single-threaded, non-reentrant access.
type Region struct {
	name     string
	host     View
	provider Provider
	manager  *Manager
	bus      *event.Bus

	stack   []*entry
	current int // index into stack, -1 when absent

	// scope is a resource bound to the region's host (for example a
	// dependency-injection scope), closed exactly once at DestroyAll.
	scope     io.Closer
	destroyed bool
}

// Name returns the region's registered name.
func (r *Region) Name() string { return r.name }

// Host returns the content item this region is nested under, or nil
// for a root region.
func (r *Region) Host() View { return r.host }

// Len returns the number of stack entries.
func (r *Region) Len() int { return len(r.stack) }

// CurrentIndex returns the index of the current entry, or -1 when no
// navigation has occurred.
func (r *Region) CurrentIndex() int { return r.current }

// CurrentView returns the currently displayed view, or nil.
func (r *Region) CurrentView() View {
	if e := r.currentEntry(); e != nil {
		return e.view
	}
	return nil
}

// CurrentName returns the logical name of the current view, or "".
func (r *Region) CurrentName() string {
	if e := r.currentEntry(); e != nil {
		return e.name
	}
	return ""
}

// StackNames returns the logical names of the stack entries in
// navigation order.
func (r *Region) StackNames() []string {
	names := make([]string, len(r.stack))
	for i, e := range r.stack {
		names[i] = e.name
	}
	return names
}

func (r *Region) currentEntry() *entry {
	if r.current < 0 || r.current >= len(r.stack) {
		return nil
	}
	return r.stack[r.current]
}

// CanGoBack reports whether the current entry has a backward neighbor.
// Pure query, no side effects.
func (r *Region) CanGoBack() bool {
	return r.current >= 1 && len(r.stack) > 1
}

// CanGoForward reports whether the current entry has a forward
// neighbor. Pure query, no side effects.
func (r *Region) CanGoForward() bool {
	return r.current >= 0 && r.current <= len(r.stack)-2 && len(r.stack) > 1
}

// ReplaceAll navigates to a fresh instance of the named view,
// scheduling every existing stack entry for destruction. The new view
// becomes the sole stack entry and the current view.
func (r *Region) ReplaceAll(name string, params *Parameters) Result {
	return r.navigate("replaceall", name, params, func(r *Region, e *entry) []*entry {
		evicted := r.stack
		r.stack = []*entry{e}
		r.current = 0
		return evicted
	})
}

// Push navigates forward to a fresh instance of the named view. The
// new view is appended after the current position; any forward history
// beyond the prior current is evicted.
func (r *Region) Push(name string, params *Parameters) Result {
	return r.navigate("push", name, params, func(r *Region, e *entry) []*entry {
		if r.current < 0 {
			r.stack = []*entry{e}
			r.current = 0
			return nil
		}
		evicted := append([]*entry(nil), r.stack[r.current+1:]...)
		r.stack = append(r.stack[:r.current+1], e)
		r.current = len(r.stack) - 1
		return evicted
	})
}

// PushBackwards navigates to a fresh instance of the named view,
// inserting it immediately before the current position; any backward
// history before the insertion point is evicted. With no current view
// the new entry is inserted at the front and nothing is evicted.
func (r *Region) PushBackwards(name string, params *Parameters) Result {
	return r.navigate("pushbackwards", name, params, func(r *Region, e *entry) []*entry {
		if r.current < 0 {
			r.stack = append([]*entry{e}, r.stack...)
			r.current = 0
			return nil
		}
		evicted := append([]*entry(nil), r.stack[:r.current]...)
		r.stack = append([]*entry{e}, r.stack[r.current:]...)
		r.current = 0
		return evicted
	})
}

// GoBack steps the current pointer to its backward neighbor. No
// content is created or destroyed. Fails with ErrCannotGoBack when no
// backward neighbor exists.
func (r *Region) GoBack(params *Parameters) Result {
	return r.step("goback", params, DirectionBack, -1, ErrCannotGoBack, r.CanGoBack)
}

// GoForward steps the current pointer to its forward neighbor. No
// content is created or destroyed. Fails with ErrCannotGoForward when
// no forward neighbor exists.
func (r *Region) GoForward(params *Parameters) Result {
	return r.step("goforward", params, DirectionForward, 1, ErrCannotGoForward, r.CanGoForward)
}

// navigate runs the shared pipeline for the content-creating
// operations: materialize, tag direction, navigated-from, mutate the
// stack per policy, navigated-to, then evict-and-destroy strictly
// last. Faults and panics anywhere in the pipeline are captured into a
// failed Result; nothing propagates to the caller.
func (r *Region) navigate(op, name string, params *Parameters, policy func(*Region, *entry) []*entry) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = r.failed(op, name, &RecoveredPanicError{Value: rec, Stack: string(debug.Stack())})
		}
	}()

	if r.destroyed {
		return r.failed(op, name, ErrRegionDestroyed)
	}
	if params == nil {
		params = NewParameters()
	}

	e, err := r.materialize(name, params)
	if err != nil {
		return r.failed(op, name, err)
	}

	params.setDirection(DirectionNew)

	from := r.CurrentName()
	if err := r.NavigatedRecursively(params, false); err != nil {
		return r.failed(op, name, err)
	}
	if from != "" {
		r.publishNavigated(TopicNavigatedFrom, from, DirectionNew)
	}

	evicted := policy(r, e)

	if err := r.NavigatedRecursively(params, true); err != nil {
		return r.failed(op, name, err)
	}

	r.publishNavigated(TopicNavigatedTo, e.name, DirectionNew)

	for _, ev := range evicted {
		if err := r.destroyEntry(ev); err != nil {
			return r.failed(op, name, err)
		}
	}

	return Succeeded()
}

// step runs the shared pipeline for GoBack and GoForward: no
// materialization, no eviction, only the current pointer moves.
func (r *Region) step(op string, params *Parameters, dir Direction, delta int, boundary error, can func() bool) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = r.failed(op, "", &RecoveredPanicError{Value: rec, Stack: string(debug.Stack())})
		}
	}()

	if r.destroyed {
		return r.failed(op, "", ErrRegionDestroyed)
	}
	if !can() {
		return r.failed(op, "", boundary)
	}
	if params == nil {
		params = NewParameters()
	}

	params.setDirection(dir)

	from := r.CurrentName()
	if err := r.NavigatedRecursively(params, false); err != nil {
		return r.failed(op, "", err)
	}
	r.publishNavigated(TopicNavigatedFrom, from, dir)

	r.current += delta

	if err := r.NavigatedRecursively(params, true); err != nil {
		return r.failed(op, "", err)
	}

	r.publishNavigated(TopicNavigatedTo, r.CurrentName(), dir)

	return Succeeded()
}

// materialize resolves the named view, initializes its controller with
// the parameter bag, installs the controller as the view's binding
// context, and attaches registered behaviors.
func (r *Region) materialize(name string, params *Parameters) (*entry, error) {
	view, ctrl, err := r.provider.Resolve(name)
	if err != nil {
		return nil, err
	}

	if bt, ok := view.(BindingTarget); ok && ctrl != nil {
		bt.SetBindingContext(ctrl)
	}

	if init, ok := ctrl.(Initializer); ok {
		if err := init.Initialize(params); err != nil {
			return nil, err
		}
	}
	// A view that is its own controller has been initialized above.
	if init, ok := view.(Initializer); ok && !same(view, ctrl) {
		if err := init.Initialize(params); err != nil {
			return nil, err
		}
	}

	if attacher, ok := r.provider.(BehaviorAttacher); ok {
		attacher.AttachBehaviors(name, view)
	}

	return &entry{name: name, view: view, ctrl: ctrl}, nil
}

// NavigatedRecursively fires a navigated notification over the
// implicit region tree rooted at this region's current content.
//
// On navigated-to the region's own content is notified first, then
// every child region under it (pre-order). On navigated-from children
// are notified first and the region's own content last (post-order).
// A region with no current content is a no-op. Faults propagate to the
// enclosing navigation operation.
func (r *Region) NavigatedRecursively(params *Parameters, to bool) error {
	cur := r.currentEntry()
	if cur == nil {
		return nil
	}

	if to {
		if err := notifyNavigated(cur, params, to); err != nil {
			return err
		}
	}
	for _, child := range r.manager.ChildRegionsOf(cur.view) {
		if err := child.NavigatedRecursively(params, to); err != nil {
			return err
		}
	}
	if !to {
		if err := notifyNavigated(cur, params, to); err != nil {
			return err
		}
	}
	return nil
}

// notifyNavigated delivers a navigated notification to an entry's view
// and, when distinct, its controller.
func notifyNavigated(e *entry, params *Parameters, to bool) error {
	targets := []any{e.view}
	if e.ctrl != nil && !same(e.view, e.ctrl) {
		targets = append(targets, e.ctrl)
	}

	for _, t := range targets {
		aware, ok := t.(NavigationAware)
		if !ok {
			continue
		}
		var err error
		if to {
			err = aware.OnNavigatedTo(params)
		} else {
			err = aware.OnNavigatedFrom(params)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// DestroyRecursively tears down a content item and everything it
// transitively owns: child regions first (DestroyAll on each), then
// the item's own teardown hook, behavior clearing, and binding-context
// severing. Faults propagate. An item still on the stack is destroyed
// with its full entry, so the destroyed event carries its logical name.
func (r *Region) DestroyRecursively(item View) error {
	for _, e := range r.stack {
		if same(e.view, item) {
			return r.destroyEntry(e)
		}
	}
	return r.destroyEntry(&entry{view: item})
}

func (r *Region) destroyEntry(e *entry) error {
	for _, child := range r.manager.ChildRegionsOf(e.view) {
		if err := child.DestroyAll(); err != nil {
			return err
		}
	}

	targets := []any{e.view}
	if e.ctrl != nil && !same(e.view, e.ctrl) {
		targets = append(targets, e.ctrl)
	}
	for _, t := range targets {
		if d, ok := t.(Destroyer); ok {
			if err := d.Destroy(); err != nil {
				return err
			}
		}
	}

	if host, ok := e.view.(BehaviorHost); ok {
		for _, b := range host.Behaviors() {
			b.Detach()
		}
		host.ClearBehaviors()
	}
	if bt, ok := e.view.(BindingTarget); ok {
		bt.SetBindingContext(nil)
	}

	r.publishDestroyed(e.name)
	return nil
}

// DestroyAll evicts and destroys every stack entry in reverse
// insertion order, closes the region's scoped resource, and removes
// the region from its manager. Terminal and idempotent: a second call
// does nothing and reports no error.
func (r *Region) DestroyAll() error {
	if r.destroyed {
		return nil
	}
	r.destroyed = true

	var errs []error
	for i := len(r.stack) - 1; i >= 0; i-- {
		if err := r.destroyEntry(r.stack[i]); err != nil {
			errs = append(errs, err)
		}
	}
	r.stack = nil
	r.current = -1

	if r.scope != nil {
		if err := r.scope.Close(); err != nil {
			errs = append(errs, err)
		}
		r.scope = nil
	}

	if r.manager != nil {
		r.manager.RemoveHolder(r.name)
	}

	return errors.Join(errs...)
}

// OnWindowLifecycleRecursively broadcasts a resume or suspend signal
// to every stack entry, then recurses into the regions nested under
// each entry. All entries are notified unconditionally, so ordering
// between own entries and children is not significant.
func (r *Region) OnWindowLifecycleRecursively(resume bool) {
	for _, e := range r.stack {
		notifyWindow(e, resume)
	}
	for _, e := range r.stack {
		for _, child := range r.manager.ChildRegionsOf(e.view) {
			child.OnWindowLifecycleRecursively(resume)
		}
	}
	r.publishLifecycle(TopicWindowLifecycle, resume)
}

// OnPageLifecycleRecursively broadcasts an appearing or disappearing
// signal. Appearing notifies this region's own entries in forward
// order before recursing into children; disappearing recurses into
// children first and notifies own entries in reverse order.
func (r *Region) OnPageLifecycleRecursively(appearing bool) {
	if appearing {
		for _, e := range r.stack {
			notifyPage(e, appearing)
		}
	}
	for _, e := range r.stack {
		for _, child := range r.manager.ChildRegionsOf(e.view) {
			child.OnPageLifecycleRecursively(appearing)
		}
	}
	if !appearing {
		for i := len(r.stack) - 1; i >= 0; i-- {
			notifyPage(r.stack[i], appearing)
		}
	}
	r.publishLifecycle(TopicPageLifecycle, appearing)
}

func notifyWindow(e *entry, resume bool) {
	targets := []any{e.view}
	if e.ctrl != nil && !same(e.view, e.ctrl) {
		targets = append(targets, e.ctrl)
	}
	for _, t := range targets {
		if aware, ok := t.(WindowLifecycleAware); ok {
			if resume {
				aware.OnResume()
			} else {
				aware.OnSuspend()
			}
		}
	}
}

func notifyPage(e *entry, appearing bool) {
	targets := []any{e.view}
	if e.ctrl != nil && !same(e.view, e.ctrl) {
		targets = append(targets, e.ctrl)
	}
	for _, t := range targets {
		if aware, ok := t.(PageLifecycleAware); ok {
			if appearing {
				aware.OnAppearing()
			} else {
				aware.OnDisappearing()
			}
		}
	}
}

// same reports identity between a view and a controller, tolerating
// uncomparable dynamic types.
func same(a, b any) (eq bool) {
	if a == nil || b == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func (r *Region) failed(op, view string, err error) Result {
	return Failed(&OperationError{Op: op, Region: r.name, View: view, Err: err})
}
