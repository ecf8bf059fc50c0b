package registry

import (
	"maps"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry maps names to items. A registry is owned by whoever creates it;
// it may be shared between grids, so access is guarded.
type Registry[T any] struct {
	sync.RWMutex
	name  string
	items map[string]T
}

func New[T any](name string) *Registry[T] {
	return &Registry[T]{
		name:  name,
		items: make(map[string]T),
	}
}

// Register adds item under name, replacing a previous registration.
func (r *Registry[T]) Register(name string, item T) {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.items[name]; ok {
		logrus.Debugf("%s registry: %q replaced", r.name, name)
	}
	r.items[name] = item
}

func (r *Registry[T]) Item(name string) (item T, ok bool) {
	r.RLock()
	defer r.RUnlock()
	item, ok = r.items[name]
	return
}

func (r *Registry[T]) Has(name string) bool {
	r.RLock()
	defer r.RUnlock()
	_, ok := r.items[name]
	return ok
}

func (r *Registry[T]) Names() []string {
	r.RLock()
	defer r.RUnlock()
	return slices.Sorted(maps.Keys(r.items))
}
