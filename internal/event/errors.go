package event

import "errors"

// Bus errors.
var (
	// ErrNilHandler indicates a subscription with a nil handler.
	ErrNilHandler = errors.New("nil handler")

	// ErrInvalidTopic indicates an empty topic or pattern.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrSubscriptionNotFound indicates an unsubscribe for an unknown
	// subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
