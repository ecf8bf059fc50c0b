package indexmap

// PhysicalIndexToValueMap keeps one value per physical index. Inserted
// indexes get default values, removed ones are dropped.
type PhysicalIndexToValueMap[V comparable] struct {
	*IndexMap[V]
}

func NewPhysicalIndexToValueMap[V comparable](initValue V) *PhysicalIndexToValueMap[V] {
	return &PhysicalIndexToValueMap[V]{IndexMap: NewIndexMap(initValue)}
}

func NewPhysicalIndexToValueMapFunc[V comparable](fn func(index int) V) *PhysicalIndexToValueMap[V] {
	return &PhysicalIndexToValueMap[V]{IndexMap: NewIndexMapFunc(fn)}
}

func (m *PhysicalIndexToValueMap[V]) Insert(insertionIndex int, insertedIndexes []int) {
	m.values = valuesWithInsertedItems(m.values, insertedIndexes, m.initFn)
	m.IndexMap.Insert(insertionIndex, insertedIndexes)
}

func (m *PhysicalIndexToValueMap[V]) Remove(removedIndexes []int) {
	m.values = valuesWithRemovedItems(m.values, removedIndexes)
	m.IndexMap.Remove(removedIndexes)
}

// HidingMap flags physical indexes that keep their visual position but are
// not rendered.
type HidingMap struct {
	*PhysicalIndexToValueMap[bool]
}

func NewHidingMap() *HidingMap {
	return &HidingMap{PhysicalIndexToValueMap: NewPhysicalIndexToValueMap(false)}
}

func (m *HidingMap) HiddenIndexes() []int {
	return m.IndexesByValue(true)
}

// TrimmingMap flags physical indexes that are excluded from the visual space.
type TrimmingMap struct {
	*PhysicalIndexToValueMap[bool]
}

func NewTrimmingMap() *TrimmingMap {
	return &TrimmingMap{PhysicalIndexToValueMap: NewPhysicalIndexToValueMap(false)}
}

func (m *TrimmingMap) TrimmedIndexes() []int {
	return m.IndexesByValue(true)
}

// IndexesSequence holds the physical indexes in visual order. Its default is
// the identity sequence.
type IndexesSequence struct {
	*IndexMap[int]
}

func NewIndexesSequence() *IndexesSequence {
	return &IndexesSequence{IndexMap: NewIndexMapFunc(func(index int) int { return index })}
}

func (s *IndexesSequence) Insert(insertionIndex int, insertedIndexes []int) {
	s.values = indexesWithInsertedItems(s.values, insertionIndex, insertedIndexes)
	s.IndexMap.Insert(insertionIndex, insertedIndexes)
}

func (s *IndexesSequence) Remove(removedIndexes []int) {
	s.values = indexesWithRemovedItems(s.values, removedIndexes)
	s.IndexMap.Remove(removedIndexes)
}
