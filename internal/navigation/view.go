package navigation

// View is any value that can occupy a region's stack. Capabilities are
// discovered through the optional interfaces below, checked with type
// assertions at each lifecycle point.
//
// Views must be comparable (in practice, pointers): region ownership
// and child-region discovery rely on identity comparison.
type View any

// Controller is the behavior object wired to a view by the provider.
// The engine initializes it with the navigation parameters and, when
// the view is a BindingTarget, installs it as the view's binding
// context. A provider may return the same object as both view and
// controller; each hook then fires once.
type Controller any

// Initializer receives the parameter bag once, after creation and
// before the first navigated notification.
type Initializer interface {
	Initialize(params *Parameters) error
}

// NavigationAware is notified when its content becomes current or
// ceases to be current. Errors propagate into the enclosing navigation
// operation and surface as a failed Result.
type NavigationAware interface {
	OnNavigatedTo(params *Parameters) error
	OnNavigatedFrom(params *Parameters) error
}

// Destroyer is the teardown hook invoked when content is evicted from
// a stack, after every region nested under it has been destroyed.
type Destroyer interface {
	Destroy() error
}

// WindowLifecycleAware is notified of window-level resume and suspend
// broadcasts. These broadcasts reach every stack entry, not just the
// current one, and cannot fail.
type WindowLifecycleAware interface {
	OnResume()
	OnSuspend()
}

// PageLifecycleAware is notified of page appearing and disappearing
// broadcasts. These broadcasts cannot fail.
type PageLifecycleAware interface {
	OnAppearing()
	OnDisappearing()
}

// BindingTarget holds a data-binding context. The engine installs the
// controller as the context at materialization and severs it (sets
// nil) during destruction.
type BindingTarget interface {
	SetBindingContext(ctx any)
	BindingContext() any
}

// Behavior is an attachable behavior object. Behaviors are attached by
// the provider registry at materialization and detached during
// destruction.
type Behavior interface {
	Attach(v View)
	Detach()
}

// BehaviorHost is a view that carries attachable behaviors.
type BehaviorHost interface {
	AddBehavior(b Behavior)
	Behaviors() []Behavior
	ClearBehaviors()
}
