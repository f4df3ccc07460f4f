package mcpserver

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/ramldoc/parser"
)

// cached is one parse result in a parseCache.
type cached struct {
	key     string
	result  *parser.ParseResult
	expires time.Time
}

func (e *cached) expired(now time.Time) bool { return now.After(e.expires) }

// parseCache keeps recently parsed documents for the session. It is a
// least-recently-used list bounded by limit, with a deadline per entry.
type parseCache struct {
	mu    sync.Mutex
	limit int
	order *list.List // front is most recently used
	index map[string]*list.Element

	janitor atomic.Bool
}

var specCache = newParseCache(cfg.CacheMaxSize)

func newParseCache(limit int) *parseCache {
	return &parseCache{limit: limit, order: list.New(), index: map[string]*list.Element{}}
}

// lookup returns the live result for key, or nil.
func (c *parseCache) lookup(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.index[key]
	if !ok {
		return nil
	}
	e := el.Value.(*cached)
	if e.expired(time.Now()) {
		c.drop(el)
		return nil
	}
	c.order.MoveToFront(el)
	return e.result
}

// store adds or replaces key, evicting the least recently used entry when
// the cache is full.
func (c *parseCache) store(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := &cached{key: key, result: result, expires: time.Now().Add(ttl)}
	if el, ok := c.index[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() >= c.limit && c.order.Len() > 0 {
		c.drop(c.order.Back())
	}
	c.index[key] = c.order.PushFront(e)
}

// drop removes el. The caller holds mu.
func (c *parseCache) drop(el *list.Element) {
	delete(c.index, el.Value.(*cached).key)
	c.order.Remove(el)
}

// purgeExpired removes every expired entry and returns how many went.
func (c *parseCache) purgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	n := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*cached).expired(now) {
			c.drop(el)
			n++
		}
		el = next
	}
	return n
}

// runJanitor purges expired entries every interval until ctx is done. Only
// one janitor runs at a time; extra calls return immediately.
func (c *parseCache) runJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.janitor.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.janitor.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.purgeExpired()
			}
		}
	}()
}

func (c *parseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.index = map[string]*list.Element{}
}

func (c *parseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
