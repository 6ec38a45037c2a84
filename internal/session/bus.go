package session

import "sync"

// Bus is the process-wide expiry signal: any authenticated call site that
// observes a 401 publishes, and the supervisor's host subscribes. The signal
// carries no payload and coalesces; publishing while a delivery is pending is
// a no-op, which matches the idempotent handling on the receiving side.
type Bus struct {
	mu   sync.Mutex
	subs []chan struct{}
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe returns a channel that receives at most one pending signal at a
// time.
func (b *Bus) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish notifies all subscribers without blocking.
func (b *Bus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
