// Copyright 2025-2026 plamb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package expcache is a content-addressed cache for compiled expression
// artifacts. GetOrSet runs the factory at most once per key even under
// concurrent callers; entries are byte-size accounted and evicted in LRU
// order once the capacity is exceeded.
package expcache

import (
	"sync"
	"sync/atomic"

	"github.com/tidwall/btree"
	"golang.org/x/sync/singleflight"

	"github.com/plamb/sortdesc/pkg/util"
)

// Entry is one cached artifact. The cache and every consumer holds its own
// reference; Release drops one reference and the entry frees its underlying
// resources when the last reference is gone.
type Entry interface {
	SizeBytes() uint64
	Retain()
	Release()
}

type item struct {
	entry Entry
	tick  uint64
}

type Cache struct {
	group singleflight.Group

	mu    sync.Mutex
	items map[util.UInt128]*item
	// recency tick -> key, smallest tick is the least recently used
	order    btree.Map[uint64, util.UInt128]
	tick     uint64
	size     uint64
	capacity uint64

	hits   atomic.Int64
	misses atomic.Int64
}

func New(capacityBytes uint64) *Cache {
	return &Cache{
		items:    make(map[util.UInt128]*item),
		capacity: capacityBytes,
	}
}

// GetOrSet returns the entry for key, running factory to produce it on a
// miss. Concurrent callers for the same key block on a single factory run.
// The returned entry carries one reference owned by the caller, which must
// Release it when done.
func (c *Cache) GetOrSet(key util.UInt128, factory func() (Entry, error)) (Entry, error) {
	if entry := c.lookup(key); entry != nil {
		c.hits.Add(1)
		return entry, nil
	}
	for {
		_, err, _ := c.group.Do(key.String(), func() (any, error) {
			if c.peek(key) {
				return nil, nil
			}
			fresh, err := factory()
			if err != nil {
				return nil, err
			}
			c.misses.Add(1)
			c.insert(key, fresh)
			return nil, nil
		})
		if err != nil {
			return nil, err
		}
		// the winning flight has inserted the entry. A miss here means a
		// racing insert evicted it already, so go around.
		if entry := c.lookup(key); entry != nil {
			return entry, nil
		}
	}
}

// lookup retains and returns the entry for key, or nil.
func (c *Cache) lookup(key util.UInt128) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, has := c.items[key]
	if !has {
		return nil
	}
	c.touch(key, it)
	it.entry.Retain()
	return it.entry
}

func (c *Cache) peek(key util.UInt128) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, has := c.items[key]
	return has
}

// insert takes over the entry's current reference as the cache's own.
func (c *Cache) insert(key util.UInt128, entry Entry) {
	c.mu.Lock()
	c.tick++
	it := &item{entry: entry, tick: c.tick}
	c.items[key] = it
	c.order.Set(it.tick, key)
	c.size += entry.SizeBytes()
	released := c.evict()
	c.mu.Unlock()

	for _, e := range released {
		e.Release()
	}
}

func (c *Cache) touch(key util.UInt128, it *item) {
	c.order.Delete(it.tick)
	c.tick++
	it.tick = c.tick
	c.order.Set(it.tick, key)
}

// evict removes least recently used items until the cache fits its
// capacity, always keeping the most recent entry. Caller holds c.mu;
// releases happen outside the lock.
func (c *Cache) evict() []Entry {
	var released []Entry
	for c.size > c.capacity && len(c.items) > 1 {
		tick, key, ok := c.order.Min()
		if !ok {
			break
		}
		it := c.items[key]
		c.order.Delete(tick)
		delete(c.items, key)
		c.size -= it.entry.SizeBytes()
		released = append(released, it.entry)
	}
	return released
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	dropped := make([]Entry, 0, len(c.items))
	for key, it := range c.items {
		dropped = append(dropped, it.entry)
		c.order.Delete(it.tick)
		delete(c.items, key)
	}
	c.size = 0
	c.mu.Unlock()

	for _, e := range dropped {
		e.Release()
	}
}

func (c *Cache) SizeBytes() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache) Hits() int64 {
	return c.hits.Load()
}

func (c *Cache) Misses() int64 {
	return c.misses.Load()
}
