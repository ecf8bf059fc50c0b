package indexmap

import (
	"fmt"

	"gridmap/pkg/common"

	"github.com/sirupsen/logrus"
)

// IndexMapper translates between physical, visual and renderable indexes of
// one axis (rows or columns).
//
//	physical   - position in the data source, never changes on reorder
//	visual     - position after reordering, trimmed indexes excluded
//	renderable - visual position with hidden indexes excluded
//
// The caches are rebuilt synchronously after every change of the sequence or
// of a skip map, unless a batch is in progress.
type IndexMapper struct {
	localHooks
	name string

	sequence     *IndexesSequence
	trimmingMaps *AggregatedCollection
	hidingMaps   *AggregatedCollection
	variousMaps  *MapCollection[Map]

	notTrimmedIndexesCache []int
	notHiddenIndexesCache  []int
	renderableIndexesCache []int
	fromPhysicalToVisual   map[int]int
	fromVisualToRenderable map[int]int

	batchDepth          int
	cachedIndexesChange bool
}

func NewIndexMapper(name string) *IndexMapper {
	m := &IndexMapper{
		name:                   name,
		sequence:               NewIndexesSequence(),
		trimmingMaps:           NewAggregatedCollection(),
		hidingMaps:             NewAggregatedCollection(),
		variousMaps:            NewMapCollection[Map](),
		fromPhysicalToVisual:   make(map[int]int),
		fromVisualToRenderable: make(map[int]int),
	}
	onChange := func() {
		m.cachedIndexesChange = true
		m.updateCache(false)
	}
	m.sequence.AddLocalHook(EventChange, onChange)
	m.trimmingMaps.AddLocalHook(EventChange, onChange)
	m.hidingMaps.AddLocalHook(EventChange, onChange)
	return m
}

func (m *IndexMapper) Name() string { return m.name }

func (m *IndexMapper) suspendOperations() {
	m.batchDepth++
}

func (m *IndexMapper) resumeOperations() {
	m.batchDepth--
	if m.batchDepth == 0 {
		m.updateCache(false)
	}
}

// ExecuteBatchOperations runs fn with cache rebuilding deferred until it
// returns. Calls may be nested.
func (m *IndexMapper) ExecuteBatchOperations(fn func()) {
	m.suspendOperations()
	defer m.resumeOperations()
	fn()
}

func (m *IndexMapper) updateCache(force bool) {
	if !force && (m.batchDepth > 0 || !m.cachedIndexesChange) {
		return
	}
	m.trimmingMaps.UpdateCache()
	m.hidingMaps.UpdateCache()

	sequence := m.sequence.Values()
	notTrimmed := make([]int, 0, len(sequence))
	notHidden := make([]int, 0, len(sequence))
	for _, physical := range sequence {
		if !m.IsTrimmed(physical) {
			notTrimmed = append(notTrimmed, physical)
		}
		if !m.IsHidden(physical) {
			notHidden = append(notHidden, physical)
		}
	}

	fromPhysicalToVisual := make(map[int]int, len(notTrimmed))
	fromVisualToRenderable := make(map[int]int, len(notTrimmed))
	renderable := make([]int, 0, len(notTrimmed))
	for visual, physical := range notTrimmed {
		fromPhysicalToVisual[physical] = visual
		if !m.IsHidden(physical) {
			fromVisualToRenderable[visual] = len(renderable)
			renderable = append(renderable, visual)
		}
	}

	m.notTrimmedIndexesCache = notTrimmed
	m.notHiddenIndexesCache = notHidden
	m.renderableIndexesCache = renderable
	m.fromPhysicalToVisual = fromPhysicalToVisual
	m.fromVisualToRenderable = fromVisualToRenderable
	m.cachedIndexesChange = false

	m.RunLocalHooks(EventCacheUpdated)
}

// InitToLength resets the sequence and every registered map to length
// default entries.
func (m *IndexMapper) InitToLength(length int) {
	common.Assert(common.IsUnsigned(length), "Expecting an unsigned number.")
	m.ExecuteBatchOperations(func() {
		m.sequence.Init(length)
		m.trimmingMaps.InitEvery(length)
		m.hidingMaps.InitEvery(length)
		m.variousMaps.InitEvery(length)
		m.cachedIndexesChange = true
	})
	logrus.Debugf("%s mapper initialized to %d indexes", m.name, length)
	m.RunLocalHooks(EventInit)
}

func (m *IndexMapper) isRegistered(name string) bool {
	return m.trimmingMaps.Has(name) || m.hidingMaps.Has(name) || m.variousMaps.Has(name)
}

// RegisterMap attaches a map to the mapper. Hiding and trimming maps take
// part in index translation, any other map only follows structural changes.
func (m *IndexMapper) RegisterMap(name string, indexMap Map) Map {
	if m.isRegistered(name) {
		panic(fmt.Sprintf("map with name %q has been already registered", name))
	}
	switch typed := indexMap.(type) {
	case *TrimmingMap:
		m.trimmingMaps.Register(name, typed)
	case *HidingMap:
		m.hidingMaps.Register(name, typed)
	default:
		m.variousMaps.Register(name, indexMap)
	}
	if length := m.NumberOfIndexes(); length > 0 {
		indexMap.Init(length)
	}
	return indexMap
}

func (m *IndexMapper) UnregisterMap(name string) {
	switch {
	case m.trimmingMaps.Has(name):
		m.trimmingMaps.Unregister(name)
	case m.hidingMaps.Has(name):
		m.hidingMaps.Unregister(name)
	case m.variousMaps.Has(name):
		m.variousMaps.Unregister(name)
		return
	default:
		return
	}
	m.cachedIndexesChange = true
	m.updateCache(false)
}

func (m *IndexMapper) CreateAndRegisterHidingMap(name string) *HidingMap {
	hm := NewHidingMap()
	m.RegisterMap(name, hm)
	return hm
}

func (m *IndexMapper) CreateAndRegisterTrimmingMap(name string) *TrimmingMap {
	tm := NewTrimmingMap()
	m.RegisterMap(name, tm)
	return tm
}

// CreateAndRegisterValueMap creates a per physical index value map kept in
// sync with the mapper's structural changes.
func CreateAndRegisterValueMap[V comparable](m *IndexMapper, name string, initValue V) *PhysicalIndexToValueMap[V] {
	vm := NewPhysicalIndexToValueMap(initValue)
	m.RegisterMap(name, vm)
	return vm
}

func (m *IndexMapper) NumberOfIndexes() int {
	return m.sequence.Length()
}

func (m *IndexMapper) NotTrimmedIndexesLength() int {
	return len(m.notTrimmedIndexesCache)
}

func (m *IndexMapper) NotHiddenIndexesLength() int {
	return len(m.notHiddenIndexesCache)
}

func (m *IndexMapper) RenderableIndexesLength() int {
	return len(m.renderableIndexesCache)
}

func (m *IndexMapper) PhysicalFromVisualIndex(visual int) (int, bool) {
	if visual < 0 || visual >= len(m.notTrimmedIndexesCache) {
		return 0, false
	}
	return m.notTrimmedIndexesCache[visual], true
}

func (m *IndexMapper) VisualFromPhysicalIndex(physical int) (int, bool) {
	visual, ok := m.fromPhysicalToVisual[physical]
	return visual, ok
}

func (m *IndexMapper) VisualFromRenderableIndex(renderable int) (int, bool) {
	if renderable < 0 || renderable >= len(m.renderableIndexesCache) {
		return 0, false
	}
	return m.renderableIndexesCache[renderable], true
}

func (m *IndexMapper) RenderableFromVisualIndex(visual int) (int, bool) {
	renderable, ok := m.fromVisualToRenderable[visual]
	return renderable, ok
}

func (m *IndexMapper) IsTrimmed(physical int) bool {
	return m.trimmingMaps.MergedValueAtIndex(physical)
}

func (m *IndexMapper) IsHidden(physical int) bool {
	return m.hidingMaps.MergedValueAtIndex(physical)
}

func (m *IndexMapper) TrimmedIndexes() []int {
	return bitmapToInts(m.trimmingMaps.MergedIndexes().ToArray())
}

func (m *IndexMapper) HiddenIndexes() []int {
	return bitmapToInts(m.hidingMaps.MergedIndexes().ToArray())
}

// NotTrimmedIndexes returns the physical indexes in visual order.
func (m *IndexMapper) NotTrimmedIndexes() []int {
	return append([]int(nil), m.notTrimmedIndexesCache...)
}

// RenderableIndexes returns the visual indexes that are not hidden.
func (m *IndexMapper) RenderableIndexes() []int {
	return append([]int(nil), m.renderableIndexesCache...)
}

func (m *IndexMapper) IndexesSequence() []int {
	return append([]int(nil), m.sequence.Values()...)
}

// SetIndexesSequence replaces the physical order. A sequence of a different
// length than the handled one is ignored.
func (m *IndexMapper) SetIndexesSequence(indexes []int) bool {
	if len(indexes) != m.NumberOfIndexes() {
		logrus.Warnf("%s mapper: sequence of length %d ignored, expected %d",
			m.name, len(indexes), m.NumberOfIndexes())
		return false
	}
	m.sequence.SetValues(indexes)
	return true
}

func (m *IndexMapper) isMovePossible(visualIndexes []int, finalIndex int) bool {
	length := m.NotTrimmedIndexesLength()
	if len(visualIndexes) == 0 || finalIndex < 0 || finalIndex > length-len(visualIndexes) {
		return false
	}
	seen := make(map[int]struct{}, len(visualIndexes))
	for _, visual := range visualIndexes {
		if visual < 0 || visual >= length {
			return false
		}
		if _, ok := seen[visual]; ok {
			return false
		}
		seen[visual] = struct{}{}
	}
	return true
}

// MoveIndexes moves the visual indexes so that the first of them lands at
// finalIndex. Trimmed indexes keep their place in the sequence.
func (m *IndexMapper) MoveIndexes(visualIndexes []int, finalIndex int) bool {
	if !m.isMovePossible(visualIndexes, finalIndex) {
		logrus.Debugf("%s mapper: move of %v to %d is not possible", m.name, visualIndexes, finalIndex)
		return false
	}
	moved := make([]int, 0, len(visualIndexes))
	for _, visual := range visualIndexes {
		physical, _ := m.PhysicalFromVisualIndex(visual)
		moved = append(moved, physical)
	}
	list := filterIndexes(m.sequence.Values(), moved)
	// At the visual end the indexes go right after the last not trimmed one.
	destination := 0
	for pos := len(list) - 1; pos >= 0; pos-- {
		if !m.IsTrimmed(list[pos]) {
			destination = pos + 1
			break
		}
	}
	if finalIndex+len(moved) < m.NotTrimmedIndexesLength() {
		visual := 0
		for pos, physical := range list {
			if m.IsTrimmed(physical) {
				continue
			}
			if visual == finalIndex {
				destination = pos
				break
			}
			visual++
		}
	}
	sequence := make([]int, 0, len(list)+len(moved))
	sequence = append(sequence, list[:destination]...)
	sequence = append(sequence, moved...)
	sequence = append(sequence, list[destination:]...)
	return m.SetIndexesSequence(sequence)
}

// InsertIndexes makes room for amount new indexes at the visual position.
// Inserting beyond the last visual index appends.
func (m *IndexMapper) InsertIndexes(firstInsertedVisualIndex, amount int) {
	common.Assert(common.IsUnsigned(firstInsertedVisualIndex), "Expecting an unsigned number.")
	common.Assert(common.IsUnsigned(amount), "Expecting an unsigned number.")
	if amount == 0 {
		return
	}
	firstPhysical := m.NumberOfIndexes()
	insertionIndex := m.NumberOfIndexes()
	if nth, ok := m.PhysicalFromVisualIndex(firstInsertedVisualIndex); ok {
		firstPhysical = nth
		insertionIndex = indexOf(m.sequence.Values(), nth)
	}
	inserted := make([]int, amount)
	for i := range inserted {
		inserted[i] = firstPhysical + i
	}
	m.ExecuteBatchOperations(func() {
		m.sequence.Insert(insertionIndex, inserted)
		m.trimmingMaps.InsertToEvery(insertionIndex, inserted)
		m.hidingMaps.InsertToEvery(insertionIndex, inserted)
		m.variousMaps.InsertToEvery(insertionIndex, inserted)
	})
	logrus.Debugf("%s mapper: inserted physical %v at %d", m.name, inserted, insertionIndex)
}

func (m *IndexMapper) RemoveIndexes(physicalIndexes []int) {
	if len(physicalIndexes) == 0 {
		return
	}
	m.ExecuteBatchOperations(func() {
		m.sequence.Remove(physicalIndexes)
		m.trimmingMaps.RemoveFromEvery(physicalIndexes)
		m.hidingMaps.RemoveFromEvery(physicalIndexes)
		m.variousMaps.RemoveFromEvery(physicalIndexes)
	})
	logrus.Debugf("%s mapper: removed physical %v", m.name, physicalIndexes)
}

func indexOf(list []int, v int) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}

func bitmapToInts(values []uint32) []int {
	ints := make([]int, len(values))
	for i, v := range values {
		ints[i] = int(v)
	}
	return ints
}
