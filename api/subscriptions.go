package countdown

import "sync"

// subscriberBuffer bounds how far a slow reader may lag before snapshots are dropped.
const subscriberBuffer = 10

type hub struct {
	mu     sync.Mutex
	subs   []chan Snapshot
	closed bool
}

// --- Subscriptions ---

func (h *hub) subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subs = append(h.subs, ch)
	return ch
}

func (h *hub) unsubscribe(target <-chan Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, ch := range h.subs {
		if ch == target {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

func (h *hub) publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- s:
		default: // drop if slow
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, ch := range h.subs {
		close(ch)
	}
	h.subs = nil
}
