// internal/service/broadcast.go
package service

import "sync"

// broadcaster is a minimal subscriber registry. Stores embed one and call
// notify after every state change so observers (the rendering layer) can
// re-read accessors; subscribers never receive the state itself.
type broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// subscribe registers fn and returns a cancel func. Cancelling twice is a
// no-op.
func (b *broadcaster) subscribe(fn func()) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func())
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// notify invokes every subscriber. Callers must not hold their state lock:
// subscribers are expected to call back into accessors.
func (b *broadcaster) notify() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
