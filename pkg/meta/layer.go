package meta

import (
	"maps"
	"slices"
)

// Layer is one level of settings. Lookups fall through to the next layer of
// a Meta when a key is not set here.
type Layer struct {
	values map[string]any
}

func NewLayer() *Layer {
	return &Layer{values: make(map[string]any)}
}

func (l *Layer) Get(key string) (v any, ok bool) {
	v, ok = l.values[key]
	return
}

func (l *Layer) Set(key string, value any) {
	l.values[key] = value
}

func (l *Layer) Delete(key string) {
	delete(l.values, key)
}

func (l *Layer) Len() int {
	return len(l.values)
}

func (l *Layer) Keys() []string {
	return slices.Sorted(maps.Keys(l.values))
}

// Lookup searches the layers in order and returns the first value set for
// key.
func Lookup(chain []*Layer, key string) (any, bool) {
	for _, layer := range chain {
		if layer == nil {
			continue
		}
		if v, ok := layer.Get(key); ok {
			return v, true
		}
	}
	return nil, false
}

// Meta is a read view over a chain of layers, the most specific first.
type Meta struct {
	chain []*Layer
}

func (m Meta) Get(key string) (any, bool) {
	return Lookup(m.chain, key)
}

// Own is the most specific layer of the view. Settings written to it apply
// to this view only.
func (m Meta) Own() *Layer {
	return m.chain[0]
}

// Value returns the value of key converted to T. A value of another type is
// reported as missing.
func Value[T any](m Meta, key string) (v T, ok bool) {
	raw, found := m.Get(key)
	if !found {
		return
	}
	v, ok = raw.(T)
	return
}
