// Package event propagates cart and wishlist changes: in-process to
// subscribed presentation code via Notifier, and externally via the Kafka
// Producer.
package event

import "sync"

// Change describes a cart or wishlist mutation for subscribers that keep
// dependent counters (badge counts) in sync.
type Change struct {
	SessionID    string
	CartLines    int
	CartQuantity int
	WishlistSize int
}

// Notifier is a minimal in-process observer registry. The engine signals a
// change by publishing new state; subscribers decide how to propagate it.
type Notifier struct {
	mu   sync.RWMutex
	subs map[int]func(Change)
	next int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Change))}
}

// Subscribe registers fn for future changes and returns an unsubscribe
// function.
func (n *Notifier) Subscribe(fn func(Change)) func() {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// Publish delivers the change to all current subscribers synchronously, in
// the caller's goroutine.
func (n *Notifier) Publish(c Change) {
	n.mu.RLock()
	fns := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}
