// Package dedupe tracks applied match ids so a match log can be replayed idempotently.
package dedupe

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMaxSize = 50_000

// Deduper records seen match ids.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded, recording it if not.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a failed match can be applied again.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// boundedDeduper keeps the most recently recorded ids; the oldest is evicted when full.
type boundedDeduper struct {
	cache *lru.Cache[string, struct{}]
}

// unboundedDeduper never evicts.
type unboundedDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates a deduper. With WithMaxSize(n <= 0) it grows without bound.
func NewInMemoryDeduper(opts ...Option) Deduper {
	cfg := &options{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.maxSize <= 0 {
		return &unboundedDeduper{seen: make(map[string]struct{})}
	}
	cache, err := lru.New[string, struct{}](cfg.maxSize)
	if err != nil {
		// only returned for non-positive sizes, handled above
		panic("dedupe: " + err.Error())
	}
	return &boundedDeduper{cache: cache}
}

func (d *boundedDeduper) SeenAndRecord(_ context.Context, id string) bool {
	seen, _ := d.cache.ContainsOrAdd(id, struct{}{})
	return seen
}

func (d *boundedDeduper) Unrecord(_ context.Context, id string) {
	d.cache.Remove(id)
}

func (d *boundedDeduper) Size() int64 {
	return int64(d.cache.Len())
}

func (d *unboundedDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *unboundedDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, id)
}

func (d *unboundedDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
