package lazymap

import (
	"iter"

	"gridmap/pkg/common"

	"github.com/RoaringBitmap/roaring"
)

// LazyFactoryMap holds values under volatile zero-based keys. A value is
// created by the factory on first Obtain and lives in a storage slot that
// never moves. Inserting or removing keys only shifts the key -> slot index,
// so the payload follows the row or column it was created for.
//
//	keys (key/slot)   | 0/0 | 1/1 | 2/2 | 3/3 |
//	Insert(1, 1)      | 0/0 | 1/4 | 2/1 | 3/2 | 4/3 |
//	Remove(0, 2)      | 0/1 | 1/2 | 2/3 |        holes: {0, 4}
//
// Slots released by Remove become holes and are reused by the next values
// created for unmapped keys.
type LazyFactoryMap[V any] struct {
	valueFactory func(key int) V
	data         []slot[V]
	index        []int
	holes        *roaring.Bitmap
}

type slot[V any] struct {
	value V
	set   bool
}

const unmapped = -1

func New[V any](valueFactory func(key int) V) *LazyFactoryMap[V] {
	return &LazyFactoryMap[V]{
		valueFactory: valueFactory,
		holes:        roaring.New(),
	}
}

// Obtain returns the value stored under key, creating it when necessary.
func (m *LazyFactoryMap[V]) Obtain(key int) V {
	common.Assert(common.IsUnsigned(key), "Expecting an unsigned number.")

	if dataIndex := m.storageIndexByKey(key); dataIndex != unmapped {
		s := &m.data[dataIndex]
		if !s.set {
			s.value = m.valueFactory(key)
			s.set = true
		}
		return s.value
	}

	value := m.valueFactory(key)
	if !m.holes.IsEmpty() {
		reuse := m.holes.Minimum()
		m.holes.Remove(reuse)
		m.data[reuse] = slot[V]{value: value, set: true}
		m.setIndex(key, int(reuse))
	} else {
		m.data = append(m.data, slot[V]{value: value, set: true})
		m.setIndex(key, len(m.data)-1)
	}
	return value
}

// Insert reserves amount empty slots at key. Keys at and after key are
// upshifted by amount.
func (m *LazyFactoryMap[V]) Insert(key, amount int) {
	common.Assert(common.IsUnsigned(key), "Expecting an unsigned number or null/undefined argument.")
	m.insert(key, amount)
}

// InsertAtEnd reserves amount empty slots after the last key.
func (m *LazyFactoryMap[V]) InsertAtEnd(amount int) {
	m.insert(len(m.index), amount)
}

func (m *LazyFactoryMap[V]) insert(key, amount int) {
	common.Assert(common.IsUnsigned(amount), "Expecting an unsigned amount.")
	if key > len(m.index) {
		key = len(m.index)
	}
	newIndexes := make([]int, amount)
	for i := 0; i < amount; i++ {
		newIndexes[i] = len(m.data)
		m.data = append(m.data, slot[V]{})
	}
	index := make([]int, 0, len(m.index)+amount)
	index = append(index, m.index[:key]...)
	index = append(index, newIndexes...)
	m.index = append(index, m.index[key:]...)
}

// Remove detaches amount keys starting at key. Keys after the removed range
// are downshifted; the data itself is left in place as holes.
func (m *LazyFactoryMap[V]) Remove(key, amount int) {
	common.Assert(common.IsUnsigned(key), "Expecting an unsigned number or null/undefined argument.")
	m.remove(key, amount)
}

// RemoveFromEnd detaches the last amount keys.
func (m *LazyFactoryMap[V]) RemoveFromEnd(amount int) {
	common.Assert(common.IsUnsigned(amount), "Expecting an unsigned amount.")
	start := len(m.index) - amount
	if start < 0 {
		start = 0
	}
	m.remove(start, amount)
}

func (m *LazyFactoryMap[V]) remove(key, amount int) {
	common.Assert(common.IsUnsigned(amount), "Expecting an unsigned amount.")
	if key >= len(m.index) {
		return
	}
	end := key + amount
	if end > len(m.index) {
		end = len(m.index)
	}
	for _, dataIndex := range m.index[key:end] {
		if dataIndex != unmapped {
			m.holes.Add(uint32(dataIndex))
		}
	}
	m.index = append(m.index[:key], m.index[end:]...)
}

// Size is the number of slots that are not holes, constructed or not.
func (m *LazyFactoryMap[V]) Size() int {
	return len(m.data) - int(m.holes.GetCardinality())
}

// Values yields the values in storage order, skipping holes. Slots reserved
// by Insert and not obtained yet yield the zero value.
func (m *LazyFactoryMap[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for dataIndex, s := range m.data {
			if m.holes.Contains(uint32(dataIndex)) {
				continue
			}
			if !yield(s.value) {
				return
			}
		}
	}
}

// Entries returns a single-pass iterator over (key, value) pairs in storage
// order. Slots that are not reachable by any key are skipped.
func (m *LazyFactoryMap[V]) Entries() *EntriesIt[V] {
	keys := make([]int, len(m.data))
	for i := range keys {
		keys[i] = unmapped
	}
	for key, dataIndex := range m.index {
		if dataIndex != unmapped && keys[dataIndex] == unmapped {
			keys[dataIndex] = key
		}
	}
	it := &EntriesIt[V]{host: m, keys: keys, pos: -1}
	it.Next()
	return it
}

// All is Entries for range-over-func.
func (m *LazyFactoryMap[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		it := m.Entries()
		defer it.Close()
		for ; it.Valid(); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

func (m *LazyFactoryMap[V]) Clear() {
	m.data = nil
	m.index = nil
	m.holes.Clear()
}

func (m *LazyFactoryMap[V]) storageIndexByKey(key int) int {
	if key < len(m.index) {
		return m.index[key]
	}
	return unmapped
}

func (m *LazyFactoryMap[V]) setIndex(key, dataIndex int) {
	for len(m.index) <= key {
		m.index = append(m.index, unmapped)
	}
	m.index[key] = dataIndex
}

type EntriesIt[V any] struct {
	host *LazyFactoryMap[V]
	keys []int
	pos  int
}

var _ common.Iterator = (*EntriesIt[int])(nil)

func (it *EntriesIt[V]) Valid() bool {
	return it.pos < len(it.keys)
}

func (it *EntriesIt[V]) Next() {
	it.pos++
	for it.pos < len(it.keys) && it.keys[it.pos] == unmapped {
		it.pos++
	}
}

func (it *EntriesIt[V]) Key() int {
	return it.keys[it.pos]
}

func (it *EntriesIt[V]) Value() V {
	return it.host.data[it.pos].value
}

func (it *EntriesIt[V]) Close() error {
	it.pos = len(it.keys)
	return nil
}
