package indexmap

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// MapCollection keeps named maps in registration order and re-emits their
// change events as its own.
type MapCollection[M Map] struct {
	localHooks
	names []string
	maps  map[string]M
	hooks map[string]HookID
}

func NewMapCollection[M Map]() *MapCollection[M] {
	return &MapCollection[M]{
		maps:  make(map[string]M),
		hooks: make(map[string]HookID),
	}
}

func (c *MapCollection[M]) Register(name string, m M) {
	if _, ok := c.maps[name]; ok {
		panic(fmt.Sprintf("map with name %q has been already registered", name))
	}
	c.names = append(c.names, name)
	c.maps[name] = m
	c.hooks[name] = m.AddLocalHook(EventChange, func() {
		c.RunLocalHooks(EventChange)
	})
}

func (c *MapCollection[M]) Unregister(name string) {
	m, ok := c.maps[name]
	if !ok {
		return
	}
	m.RemoveLocalHook(c.hooks[name])
	delete(c.maps, name)
	delete(c.hooks, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
}

func (c *MapCollection[M]) Get(name string) (m M, ok bool) {
	m, ok = c.maps[name]
	return
}

func (c *MapCollection[M]) Has(name string) bool {
	_, ok := c.maps[name]
	return ok
}

func (c *MapCollection[M]) Len() int {
	return len(c.names)
}

func (c *MapCollection[M]) ForEach(fn func(name string, m M) bool) {
	for _, name := range c.names {
		if !fn(name, c.maps[name]) {
			break
		}
	}
}

func (c *MapCollection[M]) InitEvery(length int) {
	c.ForEach(func(_ string, m M) bool {
		m.Init(length)
		return true
	})
}

func (c *MapCollection[M]) InsertToEvery(insertionIndex int, insertedIndexes []int) {
	c.ForEach(func(_ string, m M) bool {
		m.Insert(insertionIndex, insertedIndexes)
		return true
	})
}

func (c *MapCollection[M]) RemoveFromEvery(removedIndexes []int) {
	c.ForEach(func(_ string, m M) bool {
		m.Remove(removedIndexes)
		return true
	})
}

// AggregatedCollection merges flag maps with a logical OR. The merged result
// is cached and refreshed by UpdateCache.
type AggregatedCollection struct {
	*MapCollection[FlagMap]
	merged *roaring.Bitmap
}

func NewAggregatedCollection() *AggregatedCollection {
	return &AggregatedCollection{
		MapCollection: NewMapCollection[FlagMap](),
		merged:        roaring.New(),
	}
}

func (c *AggregatedCollection) UpdateCache() {
	c.merged.Clear()
	c.ForEach(func(_ string, m FlagMap) bool {
		for i, flag := range m.Values() {
			if flag {
				c.merged.Add(uint32(i))
			}
		}
		return true
	})
}

func (c *AggregatedCollection) MergedValueAtIndex(index int) bool {
	if index < 0 {
		return false
	}
	return c.merged.Contains(uint32(index))
}

// MergedIndexes returns a copy of the merged flags as a bitmap.
func (c *AggregatedCollection) MergedIndexes() *roaring.Bitmap {
	return c.merged.Clone()
}
