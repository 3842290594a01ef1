// Package dedupe tracks idempotency keys of submitted critique jobs.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 4096

// Deduper maps client idempotency keys to the job they first created.
type Deduper interface {
	// Claim binds key to id unless key is already bound. It returns the bound
	// id and true when key was seen before, or id and false when newly bound.
	Claim(ctx context.Context, key, id string) (string, bool)

	// Release forgets key so a retry creates a new job. Used when the job
	// bound to it was rejected or no longer exists.
	Release(ctx context.Context, key string)

	Size() int64
}

// InMemoryDeduper is a bounded Deduper with oldest-first eviction.
type InMemoryDeduper struct {
	mu      sync.Mutex
	ids     map[string]string
	order   []string
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) *InMemoryDeduper {
	d := &InMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.ids = make(map[string]string)
	return d
}

func (d *InMemoryDeduper) Claim(_ context.Context, key, id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if bound, ok := d.ids[key]; ok {
		return bound, true
	}
	d.ids[key] = id
	d.order = append(d.order, key)
	if d.maxSize > 0 {
		for len(d.ids) > d.maxSize {
			d.evictOldest()
		}
	}
	d.size.Store(int64(len(d.ids)))
	return id, false
}

func (d *InMemoryDeduper) Release(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.ids[key]; !ok {
		return
	}
	delete(d.ids, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.size.Store(int64(len(d.ids)))
}

func (d *InMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// evictOldest drops the first key in order that is still bound. Caller holds mu.
func (d *InMemoryDeduper) evictOldest() {
	for len(d.order) > 0 {
		k := d.order[0]
		d.order = d.order[1:]
		if _, ok := d.ids[k]; ok {
			delete(d.ids, k)
			return
		}
	}
}
