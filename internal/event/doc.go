// Package event provides a synchronous observer bus for navigation
// and lifecycle events.
//
// Topics are hierarchical dot-separated strings ("region.navigated.to")
// and subscriptions may match a subtree with a trailing wildcard
// ("region.navigated.*"). Delivery is synchronous and in subscription
// order; handler panics are recovered and counted so an observer can
// never fail a navigation operation.
package event
