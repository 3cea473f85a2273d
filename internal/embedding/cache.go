package embedding

import (
	"container/list"
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store is an optional shared second tier beneath the in-process cache,
// keyed by content hash. A miss is (nil, false, nil).
type Store interface {
	GetVector(ctx context.Context, hash string) ([]float64, bool, error)
	SetVector(ctx context.Context, hash string, vec []float64) error
}

// ComputeFunc produces the vector for a cache miss. Failures are propagated
// unchanged and never cached.
type ComputeFunc func(ctx context.Context) ([]float64, error)

// Cache memoizes embedding vectors by content hash. Lookups go through a
// concurrent map so eviction of one key never blocks reads of another; the
// LRU bookkeeping lives under its own mutex. Concurrent misses for the same
// hash are collapsed into a single compute. Cached slices are shared and
// must be treated as immutable by callers.
type Cache struct {
	capacity int
	remote   Store
	logger   *zap.Logger

	entries sync.Map
	group   singleflight.Group

	lruMu sync.Mutex
	order *list.List
	index map[string]*list.Element
}

const DefaultCapacity = 4096

func NewCache(capacity int, remote Store, logger *zap.Logger) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		capacity: capacity,
		remote:   remote,
		logger:   logger,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

// GetOrCompute returns the cached vector for hash, consulting the shared
// tier and finally the compute function on miss.
func (c *Cache) GetOrCompute(ctx context.Context, hash string, compute ComputeFunc) ([]float64, error) {
	if v, ok := c.entries.Load(hash); ok {
		c.touch(hash)
		return v.([]float64), nil
	}

	v, err, _ := c.group.Do(hash, func() (any, error) {
		// A concurrent flight may have stored the entry after our miss.
		if v, ok := c.entries.Load(hash); ok {
			return v, nil
		}

		if c.remote != nil {
			vec, ok, err := c.remote.GetVector(ctx, hash)
			if err != nil {
				c.logger.Warn("shared vector tier read failed", zap.String("hash", hash), zap.Error(err))
			} else if ok {
				c.store(hash, vec)
				return vec, nil
			}
		}

		vec, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.store(hash, vec)

		if c.remote != nil {
			if err := c.remote.SetVector(ctx, hash, vec); err != nil {
				c.logger.Warn("shared vector tier write failed", zap.String("hash", hash), zap.Error(err))
			}
		}
		return vec, nil
	})
	if err != nil {
		return nil, err
	}
	c.touch(hash)
	return v.([]float64), nil
}

// Get returns a cached vector without computing.
func (c *Cache) Get(hash string) ([]float64, bool) {
	v, ok := c.entries.Load(hash)
	if !ok {
		return nil, false
	}
	c.touch(hash)
	return v.([]float64), true
}

func (c *Cache) Len() int {
	c.lruMu.Lock()
	defer c.lruMu.Unlock()
	return c.order.Len()
}

func (c *Cache) store(hash string, vec []float64) {
	c.entries.Store(hash, vec)

	c.lruMu.Lock()
	if el, ok := c.index[hash]; ok {
		c.order.MoveToFront(el)
		c.lruMu.Unlock()
		return
	}
	c.index[hash] = c.order.PushFront(hash)

	var evicted []string
	for c.order.Len() > c.capacity {
		back := c.order.Back()
		if back == nil {
			break
		}
		victim := c.order.Remove(back).(string)
		delete(c.index, victim)
		evicted = append(evicted, victim)
	}
	c.lruMu.Unlock()

	for _, victim := range evicted {
		c.entries.Delete(victim)
	}
}

func (c *Cache) touch(hash string) {
	c.lruMu.Lock()
	if el, ok := c.index[hash]; ok {
		c.order.MoveToFront(el)
	}
	c.lruMu.Unlock()
}
