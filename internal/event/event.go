package event

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Event is an immutable typed event.
type Event[T any] struct {
	// Topic is the hierarchical event type.
	Topic Topic

	// Payload contains the event-specific data.
	Payload T

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// New creates an event with generated metadata.
func New[T any](topic Topic, payload T, source string) Event[T] {
	return Event[T]{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        generateID(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// Envelope is the type-erased form delivered to handlers.
type Envelope struct {
	Topic    Topic
	Payload  any
	Metadata Metadata
}

// Envelope converts the typed event for delivery.
func (e Event[T]) Envelope() Envelope {
	return Envelope{
		Topic:    e.Topic,
		Payload:  e.Payload,
		Metadata: e.Metadata,
	}
}

// generateID generates a unique event ID.
func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// Fallback to a timestamp-based ID if crypto/rand fails
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}
