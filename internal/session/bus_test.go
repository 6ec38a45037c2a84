package session

import (
	"testing"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish()

	for name, ch := range map[string]<-chan struct{}{"a": a, "b": b} {
		select {
		case <-ch:
		default:
			t.Errorf("subscriber %s missed the signal", name)
		}
	}
}

func TestBusCoalescesPendingSignals(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	ch := bus.Subscribe()

	// Three rapid publishes while nobody is reading collapse into one
	// pending delivery.
	bus.Publish()
	bus.Publish()
	bus.Publish()

	<-ch
	select {
	case <-ch:
		t.Error("coalesced signals should deliver exactly once")
	default:
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	t.Parallel()

	// Must not block or panic.
	NewBus().Publish()
}
