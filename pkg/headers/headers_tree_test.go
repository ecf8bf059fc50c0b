package headers

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func buildSampleTree(t *testing.T) *HeadersTree {
	s := NewSourceSettings()
	assert.NoError(t, s.SetData(sampleConfig()))
	tr := NewHeadersTree(s)
	assert.NoError(t, tr.BuildTree())
	return tr
}

func TestBuildTree(t *testing.T) {
	tr := buildSampleTree(t)
	roots := tr.Roots()
	assert.Equal(t, 3, len(roots))
	assert.Equal(t, "A1", roots[0].Data.Label)
	assert.Equal(t, "A2", roots[1].Data.Label)
	assert.Equal(t, "A3", roots[2].Data.Label)

	a2 := roots[1]
	assert.Equal(t, 1, len(a2.Childs))
	assert.Equal(t, "B2", a2.Childs[0].Data.Label)
	assert.Equal(t, 2, len(a2.Childs[0].Childs))
	c3 := a2.Childs[0].Childs[1]
	assert.Equal(t, NodeData{Label: "C3", Colspan: 3, OrigColspan: 3, HeaderLevel: 2, ColumnIndex: 2}, c3.Data)
	assert.Equal(t, 3, len(c3.Childs))
	assert.Equal(t, 3, c3.Childs[0].Depth())
}

func TestTreeTiling(t *testing.T) {
	tr := buildSampleTree(t)
	widths := make([]int, 4)
	for _, root := range tr.Roots() {
		for _, node := range flatten(root) {
			widths[node.Data.HeaderLevel] += node.Data.Colspan
			if !node.IsLeaf() {
				sum := 0
				for _, child := range node.Childs {
					sum += child.Data.Colspan
				}
				assert.Equal(t, node.Data.Colspan, sum, node.Data.Label)
			}
		}
	}
	assert.Equal(t, []int{7, 7, 7, 7}, widths)
}

func TestTreeLookups(t *testing.T) {
	tr := buildSampleTree(t)

	for column, label := range []string{"A1", "A2", "A2", "A2", "A2", "A3", "A3"} {
		root := tr.RootByColumn(column)
		assert.NotNil(t, root)
		assert.Equal(t, label, root.Data.Label)
	}
	assert.Nil(t, tr.RootByColumn(7))

	assert.Equal(t, "D4", tr.Node(3, 3).Data.Label)
	assert.Equal(t, "C3", tr.Node(4, 2).Data.Label)
	assert.Equal(t, "B3", tr.Node(6, 1).Data.Label)
	assert.Equal(t, "A2", tr.Node(4, 0).Data.Label)
	assert.Nil(t, tr.Node(3, 4))
	assert.Nil(t, tr.Node(10, 0))

	tr.Clear()
	assert.Empty(t, tr.Roots())
	assert.Nil(t, tr.RootByColumn(0))
}

type rawSource struct {
	cells [][]ColumnSettings
}

func (s rawSource) ColumnSettings(level, column int) (ColumnSettings, bool) {
	if level >= len(s.cells) || column >= len(s.cells[level]) {
		return ColumnSettings{}, false
	}
	return s.cells[level][column], true
}

func (s rawSource) ColumnsSettings(level, column, extractionLength int) []ColumnSettings {
	settings := make([]ColumnSettings, 0)
	for cursor := column; cursor < column+extractionLength; {
		cell, ok := s.ColumnSettings(level, cursor)
		if !ok {
			break
		}
		settings = append(settings, cell)
		if span, err := headerSpan(cell, level, cursor); err == nil {
			cursor += span
		} else {
			cursor++
		}
	}
	return settings
}

func (s rawSource) LayersCount() int  { return len(s.cells) }
func (s rawSource) ColumnsCount() int { return len(s.cells[0]) }

func TestBuildTreeRejectsCrossing(t *testing.T) {
	// The second level is not validated by the source: B2 starts inside A1.
	src := rawSource{cells: [][]ColumnSettings{
		{{Label: "A1", Colspan: 2, OrigColspan: 2}, placeholder(2), {Label: "A2", Colspan: 1, OrigColspan: 1}},
		{{Label: "B1", Colspan: 1, OrigColspan: 1}, {Label: "B2", Colspan: 2, OrigColspan: 2}, placeholder(2)},
	}}
	tr := NewHeadersTree(src)
	err := tr.BuildTree()
	assert.True(t, errors.Is(err, ErrOverlappingHeaders))
	assert.Empty(t, tr.Roots())
	assert.Nil(t, tr.RootByColumn(0))
}

func TestBuildTreeColspanOnly(t *testing.T) {
	src := rawSource{cells: [][]ColumnSettings{
		{{Label: "A1", Colspan: 2}, {Hidden: true}, {Label: "A2", Colspan: 1}},
		{{Label: "B1", Colspan: 1}, {Label: "B2", Colspan: 1}, {Label: "B3", Colspan: 1}},
	}}
	tr := NewHeadersTree(src)
	done := make(chan error, 1)
	go func() { done <- tr.BuildTree() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("BuildTree did not return")
	}

	roots := tr.Roots()
	assert.Len(t, roots, 2)
	assert.Equal(t, 2, roots[0].Data.OrigColspan)
	assert.Len(t, roots[0].Childs, 2)
	assert.Equal(t, roots[0], tr.RootByColumn(1))
	assert.Equal(t, "A2", tr.RootByColumn(2).Data.Label)
	assert.Equal(t, "B2", tr.Node(1, 1).Data.Label)
}

func TestBuildTreeZeroWidth(t *testing.T) {
	src := rawSource{cells: [][]ColumnSettings{
		{{Label: "A1"}, {Label: "A2", Colspan: 1}},
	}}
	tr := NewHeadersTree(src)
	err := tr.BuildTree()
	assert.True(t, errors.Is(err, ErrInvalidHeader))
	assert.Empty(t, tr.Roots())
}
