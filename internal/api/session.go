package api

import "sync"

// sessionNotifier holds the single session-expiry callback slot. The slot is
// registered by the app layer at startup (it owns navigation; the transport
// layer does not) and invoked by the request path on a 401, after the
// credential store has been cleared. Invoking with no callback registered is
// a no-op.
type sessionNotifier struct {
	mu sync.Mutex
	fn func()
}

func (n *sessionNotifier) set(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fn = fn
}

func (n *sessionNotifier) notify() {
	n.mu.Lock()
	fn := n.fn
	n.mu.Unlock()
	if fn != nil {
		fn()
	}
}
