package command

import (
	"maps"
	"slices"
	"sync"
)

// observers is the subscriber list for the can-execute-changed notification.
type observers struct {
	mu   sync.Mutex
	next uint64
	fns  map[uint64]func()
}

func (o *observers) add(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fns == nil {
		o.fns = make(map[uint64]func())
	}
	id := o.next
	o.next++
	o.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.fns, id)
			o.mu.Unlock()
		})
	}
}

// notify calls subscribers in subscription order, outside the lock.
func (o *observers) notify() {
	o.mu.Lock()
	ids := slices.Sorted(maps.Keys(o.fns))
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
