// Package cache provides a keyed, invalidation-aware result cache.
//
// Concurrent fetches of the same key share one in-flight call. Each tracked key
// carries a generation drawn from a cache-wide counter. Invalidation forgets the
// key, so a fetch that started before it cannot write its result back, and
// callers arriving afterwards start a new fetch under a fresh generation.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query. Family groups keys for bulk invalidation
// and Owner scopes them to a principal.
type Key struct {
	Family string
	Owner  string
	Params string
}

// String returns the canonical form of the key.
func (k Key) String() string {
	return strings.Join([]string{k.Family, k.Owner, k.Params}, "\x1f")
}

// Recorder receives cache events. Implementations must be safe for concurrent use.
type Recorder interface {
	Hit(cache string)
	Miss(cache string)
	Invalidated(cache string, n int)
}

type entry[V any] struct {
	value  V
	stored time.Time
}

// Cache stores values of type V by Key.
type Cache[V any] struct {
	name     string
	ttl      time.Duration
	now      func() time.Time
	recorder Recorder

	mu      sync.Mutex
	entries map[string]entry[V]
	keys    map[string]Key
	gens    map[string]uint64
	seq     uint64
	group   singleflight.Group
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	ttl      time.Duration
	now      func() time.Time
	recorder Recorder
}

// WithTTL expires entries after d. Zero keeps entries until invalidated.
func WithTTL(d time.Duration) Option {
	return func(o *options) { o.ttl = d }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRecorder reports hits, misses, and invalidations to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// New creates an empty cache. name labels recorded events.
func New[V any](name string, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[V]{
		name:     name,
		ttl:      o.ttl,
		now:      o.now,
		recorder: o.recorder,
		entries:  make(map[string]entry[V]),
		keys:     make(map[string]Key),
		gens:     make(map[string]uint64),
	}
}

type flight[V any] struct {
	value V
}

// Fetch returns the cached value for key or calls fetch to produce it.
// Only one fetch per key generation runs at a time; concurrent callers wait for it,
// each bounded by its own ctx. Errors are returned to every waiter and never cached.
func (c *Cache[V]) Fetch(ctx context.Context, key Key, fetch func(context.Context) (V, error)) (V, error) {
	id := key.String()

	c.mu.Lock()
	if e, ok := c.entries[id]; ok && !c.expired(e) {
		c.mu.Unlock()
		c.hit()
		return e.value, nil
	}
	gen, ok := c.gens[id]
	if !ok {
		c.seq++
		gen = c.seq
		c.gens[id] = gen
		c.keys[id] = key
	}
	c.mu.Unlock()

	c.miss()

	ch := c.group.DoChan(fmt.Sprintf("%s#%d", id, gen), func() (any, error) {
		value, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gens[id] == gen {
			c.entries[id] = entry[V]{value: value, stored: c.now()}
		}
		c.mu.Unlock()

		return flight[V]{value: value}, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(flight[V]).value, nil
	}
}

// Peek returns the cached value for key without fetching.
func (c *Cache[V]) Peek(key Key) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok || c.expired(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Invalidate forgets every key matching pred, including keys with a fetch in flight,
// and returns the number of stored entries it removed.
func (c *Cache[V]) Invalidate(pred func(Key) bool) int {
	c.mu.Lock()
	n := 0
	for id, key := range c.keys {
		if !pred(key) {
			continue
		}
		if _, ok := c.entries[id]; ok {
			delete(c.entries, id)
			n++
		}
		delete(c.keys, id)
		delete(c.gens, id)
	}
	c.mu.Unlock()

	if c.recorder != nil && n > 0 {
		c.recorder.Invalidated(c.name, n)
	}
	return n
}

// InvalidateKey forgets a single key and reports whether it had a stored entry.
func (c *Cache[V]) InvalidateKey(key Key) bool {
	return c.Invalidate(func(k Key) bool { return k == key }) > 0
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Family matches every key in family owned by owner.
func Family(family, owner string) func(Key) bool {
	return func(k Key) bool {
		return k.Family == family && k.Owner == owner
	}
}

func (c *Cache[V]) expired(e entry[V]) bool {
	return c.ttl > 0 && c.now().Sub(e.stored) >= c.ttl
}

func (c *Cache[V]) hit() {
	if c.recorder != nil {
		c.recorder.Hit(c.name)
	}
}

func (c *Cache[V]) miss() {
	if c.recorder != nil {
		c.recorder.Miss(c.name)
	}
}
