package indexmap

// Map is implemented by every index map an IndexMapper can hold.
type Map interface {
	Length() int
	Init(length int)
	Clear()
	Insert(insertionIndex int, insertedIndexes []int)
	Remove(removedIndexes []int)
	AddLocalHook(event HookEvent, fn func()) HookID
	RemoveLocalHook(id HookID)
}

// FlagMap is a map of booleans, used to skip indexes (hiding, trimming).
type FlagMap interface {
	Map
	Values() []bool
}

// IndexMap maps a zero-based index to a value. The list is dense: its length
// is the number of handled indexes. Every mutation fires EventChange.
type IndexMap[V comparable] struct {
	localHooks
	values []V
	initFn func(index int) V
}

// NewIndexMap creates a map whose default entries all equal initValue.
func NewIndexMap[V comparable](initValue V) *IndexMap[V] {
	return &IndexMap[V]{
		initFn: func(int) V { return initValue },
	}
}

// NewIndexMapFunc creates a map whose default entry for an index is
// generated by fn.
func NewIndexMapFunc[V comparable](fn func(index int) V) *IndexMap[V] {
	return &IndexMap[V]{
		initFn: fn,
	}
}

func (m *IndexMap[V]) Values() []V {
	return m.values
}

func (m *IndexMap[V]) ValueAtIndex(index int) (v V, ok bool) {
	if index >= 0 && index < len(m.values) {
		return m.values[index], true
	}
	return
}

// SetValues replaces the whole list. Use it to extend the map.
func (m *IndexMap[V]) SetValues(values []V) {
	m.values = append(make([]V, 0, len(values)), values...)
	m.RunLocalHooks(EventChange)
}

// SetValueAtIndex never extends the map. It returns false when index is
// beyond the current length.
func (m *IndexMap[V]) SetValueAtIndex(index int, value V) bool {
	if index >= 0 && index < m.Length() {
		m.values[index] = value
		m.RunLocalHooks(EventChange)
		return true
	}
	return false
}

// Clear resets every entry to its default value.
func (m *IndexMap[V]) Clear() {
	m.setDefaultValues(len(m.values))
}

func (m *IndexMap[V]) Length() int {
	return len(m.values)
}

func (m *IndexMap[V]) setDefaultValues(length int) {
	m.values = m.values[:0]
	for i := 0; i < length; i++ {
		m.values = append(m.values, m.initFn(i))
	}
	m.RunLocalHooks(EventChange)
}

func (m *IndexMap[V]) IndexesByValue(value V) []int {
	indexes := make([]int, 0)
	for i, v := range m.values {
		if v == value {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

func (m *IndexMap[V]) Init(length int) {
	m.setDefaultValues(length)
	m.RunLocalHooks(EventInit)
}

func (m *IndexMap[V]) Insert(insertionIndex int, insertedIndexes []int) {
	m.RunLocalHooks(EventChange)
}

func (m *IndexMap[V]) Remove(removedIndexes []int) {
	m.RunLocalHooks(EventChange)
}
