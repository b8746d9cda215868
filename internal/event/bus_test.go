package event

import (
	"testing"
)

func TestBus_PublishSyncDelivers(t *testing.T) {
	b := NewBus()

	var got []Topic
	_, err := b.SubscribeFunc("region.navigated.*", func(env Envelope) {
		got = append(got, env.Topic)
	})
	if err != nil {
		t.Fatalf("SubscribeFunc failed: %v", err)
	}

	b.PublishSync(New("region.navigated.to", "payload", "test").Envelope())
	b.PublishSync(New("region.destroyed", "payload", "test").Envelope())

	if len(got) != 1 || got[0] != "region.navigated.to" {
		t.Errorf("delivered = %v, want [region.navigated.to]", got)
	}
}

func TestBus_SubscriptionOrder(t *testing.T) {
	b := NewBus()

	var order []int
	for i := 1; i <= 3; i++ {
		if _, err := b.SubscribeFunc("*", func(Envelope) {
			order = append(order, i)
		}); err != nil {
			t.Fatalf("SubscribeFunc failed: %v", err)
		}
	}

	b.PublishSync(New("x", 0, "test").Envelope())

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("delivery order = %v, want [1 2 3]", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus()

	calls := 0
	sub, err := b.SubscribeFunc("x", func(Envelope) { calls++ })
	if err != nil {
		t.Fatalf("SubscribeFunc failed: %v", err)
	}

	b.PublishSync(New("x", 0, "test").Envelope())

	if err := b.Unsubscribe(sub); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}
	b.PublishSync(New("x", 0, "test").Envelope())

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	if err := b.Unsubscribe(sub); err != ErrSubscriptionNotFound {
		t.Errorf("second Unsubscribe = %v, want ErrSubscriptionNotFound", err)
	}
}

func TestBus_NilHandlerAndEmptyTopic(t *testing.T) {
	b := NewBus()

	if _, err := b.SubscribeFunc("x", nil); err != ErrNilHandler {
		t.Errorf("err = %v, want ErrNilHandler", err)
	}
	if _, err := b.SubscribeFunc("", func(Envelope) {}); err != ErrInvalidTopic {
		t.Errorf("err = %v, want ErrInvalidTopic", err)
	}
}

func TestBus_HandlerPanicRecovered(t *testing.T) {
	b := NewBus()

	if _, err := b.SubscribeFunc("x", func(Envelope) { panic("observer bug") }); err != nil {
		t.Fatalf("SubscribeFunc failed: %v", err)
	}
	survived := false
	if _, err := b.SubscribeFunc("x", func(Envelope) { survived = true }); err != nil {
		t.Fatalf("SubscribeFunc failed: %v", err)
	}

	b.PublishSync(New("x", 0, "test").Envelope())

	if !survived {
		t.Error("panicking handler prevented later delivery")
	}
	if b.Stats().HandlerPanics != 1 {
		t.Errorf("HandlerPanics = %d, want 1", b.Stats().HandlerPanics)
	}
}

func TestBus_Stats(t *testing.T) {
	b := NewBus()
	if _, err := b.SubscribeFunc("*", func(Envelope) {}); err != nil {
		t.Fatalf("SubscribeFunc failed: %v", err)
	}

	b.PublishSync(New("a", 0, "test").Envelope())
	b.PublishSync(New("b", 0, "test").Envelope())

	stats := b.Stats()
	if stats.Published != 2 {
		t.Errorf("Published = %d, want 2", stats.Published)
	}
	if stats.Delivered != 2 {
		t.Errorf("Delivered = %d, want 2", stats.Delivered)
	}
	if stats.Subscribers != 1 {
		t.Errorf("Subscribers = %d, want 1", stats.Subscribers)
	}
}

func TestEvent_MetadataGenerated(t *testing.T) {
	e := New("region.navigated.to", 42, "region:main")
	if e.Metadata.ID == "" {
		t.Error("expected generated event ID")
	}
	if e.Metadata.Timestamp.IsZero() {
		t.Error("expected event timestamp")
	}
	if e.Metadata.Source != "region:main" {
		t.Errorf("Source = %q, want region:main", e.Metadata.Source)
	}

	env := e.Envelope()
	if env.Topic != e.Topic || env.Payload != any(42) {
		t.Errorf("envelope mismatch: %+v", env)
	}
}
