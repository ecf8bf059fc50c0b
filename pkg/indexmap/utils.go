package indexmap

// valuesWithInsertedItems places one generated value per inserted index at
// the position of the first inserted physical index.
func valuesWithInsertedItems[V any](values []V, insertedIndexes []int, initFn func(int) V) []V {
	if len(insertedIndexes) == 0 {
		return values
	}
	at := insertedIndexes[0]
	if at > len(values) {
		at = len(values)
	}
	list := make([]V, 0, len(values)+len(insertedIndexes))
	list = append(list, values[:at]...)
	for _, index := range insertedIndexes {
		list = append(list, initFn(index))
	}
	return append(list, values[at:]...)
}

func valuesWithRemovedItems[V any](values []V, removedIndexes []int) []V {
	removed := toSet(removedIndexes)
	list := make([]V, 0, len(values))
	for i, v := range values {
		if _, ok := removed[i]; !ok {
			list = append(list, v)
		}
	}
	return list
}

// indexesWithInsertedItems splices insertedIndexes at insertionIndex and
// upshifts every physical index not lower than the first inserted one.
func indexesWithInsertedItems(indexes []int, insertionIndex int, insertedIndexes []int) []int {
	if len(insertedIndexes) == 0 {
		return indexes
	}
	if insertionIndex > len(indexes) || insertionIndex < 0 {
		insertionIndex = len(indexes)
	}
	first := insertedIndexes[0]
	shift := func(index int) int {
		if index >= first {
			return index + len(insertedIndexes)
		}
		return index
	}
	list := make([]int, 0, len(indexes)+len(insertedIndexes))
	for _, index := range indexes[:insertionIndex] {
		list = append(list, shift(index))
	}
	list = append(list, insertedIndexes...)
	for _, index := range indexes[insertionIndex:] {
		list = append(list, shift(index))
	}
	return list
}

// indexesWithRemovedItems drops removedIndexes and downshifts the remaining
// physical indexes so that the sequence stays dense.
func indexesWithRemovedItems(indexes []int, removedIndexes []int) []int {
	removed := toSet(removedIndexes)
	list := make([]int, 0, len(indexes))
	for _, index := range indexes {
		if _, ok := removed[index]; ok {
			continue
		}
		shift := 0
		for _, r := range removedIndexes {
			if r < index {
				shift++
			}
		}
		list = append(list, index-shift)
	}
	return list
}

func filterIndexes(indexes []int, removedIndexes []int) []int {
	removed := toSet(removedIndexes)
	list := make([]int, 0, len(indexes))
	for _, index := range indexes {
		if _, ok := removed[index]; !ok {
			list = append(list, index)
		}
	}
	return list
}

func toSet(indexes []int) map[int]struct{} {
	set := make(map[int]struct{}, len(indexes))
	for _, index := range indexes {
		set[index] = struct{}{}
	}
	return set
}
