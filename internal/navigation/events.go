package navigation

import (
	"github.com/dshills/regionav/internal/event"
)

// Topics published by the engine.
const (
	// TopicNavigatedTo fires after content becomes current and its
	// navigated-to recursion completes.
	TopicNavigatedTo = event.Topic("region.navigated.to")

	// TopicNavigatedFrom fires after the departing content's
	// navigated-from recursion completes, before the stack mutates.
	// Transitions with no prior current view publish nothing.
	TopicNavigatedFrom = event.Topic("region.navigated.from")

	// TopicDestroyed fires after a content item's teardown completes.
	TopicDestroyed = event.Topic("region.destroyed")

	// TopicWindowLifecycle fires for resume/suspend broadcasts.
	TopicWindowLifecycle = event.Topic("region.lifecycle.window")

	// TopicPageLifecycle fires for appearing/disappearing broadcasts.
	TopicPageLifecycle = event.Topic("region.lifecycle.page")
)

// NavigatedPayload describes a completed transition.
type NavigatedPayload struct {
	Region    string
	View      string
	Direction Direction
}

// DestroyedPayload describes a destroyed content item.
type DestroyedPayload struct {
	Region string
	View   string
}

// LifecyclePayload describes a window or page lifecycle broadcast.
type LifecyclePayload struct {
	Region string
	Active bool // resume / appearing
}

// publishNavigated emits a navigated event. Observers cannot fail a
// navigation: the bus recovers handler panics internally.
func (r *Region) publishNavigated(topic event.Topic, view string, dir Direction) {
	if r.bus == nil {
		return
	}
	r.bus.PublishSync(event.New(topic, NavigatedPayload{
		Region:    r.name,
		View:      view,
		Direction: dir,
	}, r.name).Envelope())
}

func (r *Region) publishDestroyed(view string) {
	if r.bus == nil {
		return
	}
	r.bus.PublishSync(event.New(TopicDestroyed, DestroyedPayload{
		Region: r.name,
		View:   view,
	}, r.name).Envelope())
}

func (r *Region) publishLifecycle(topic event.Topic, active bool) {
	if r.bus == nil {
		return
	}
	r.bus.PublishSync(event.New(topic, LifecyclePayload{
		Region: r.name,
		Active: active,
	}, r.name).Envelope())
}
