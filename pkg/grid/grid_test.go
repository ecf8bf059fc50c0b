package grid

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"gridmap/pkg/headers"
	"gridmap/pkg/meta"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nestedHeaders() headers.HeaderConfig {
	return headers.HeaderConfig{
		{headers.Label("A1"), headers.Span("A2", 4), headers.Span("A3", 2)},
		{headers.Label("B1"), headers.Span("B2", 4), headers.Span("B3", 2)},
		{headers.Label("C1"), headers.Label("C2"), headers.Span("C3", 3), headers.Span("C4", 2)},
		{headers.Label("D1"), headers.Label("D2"), headers.Label("D3"), headers.Label("D4"), headers.Label("D5"), headers.Span("D6", 2)},
	}
}

func comment(t *testing.T, g *Grid, row, column int) string {
	cell, ok := g.CellMeta(row, column)
	require.True(t, ok)
	v, _ := meta.Value[string](cell, "comment")
	return v
}

func TestRowsFollowMeta(t *testing.T) {
	g, err := New(Options{Rows: 5, Columns: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, g.CountRows())
	assert.Equal(t, 3, g.CountColumns())

	cell, ok := g.CellMeta(2, 1)
	require.True(t, ok)
	cell.Own().Set("comment", "x")

	g.InsertRows(1, 2)
	assert.Equal(t, 7, g.CountRows())
	assert.Equal(t, "x", comment(t, g, 4, 1))
	assert.Equal(t, "", comment(t, g, 2, 1))

	g.RemoveRows(0, 2)
	assert.Equal(t, 5, g.CountRows())
	assert.Equal(t, "x", comment(t, g, 2, 1))

	assert.True(t, g.MoveRows([]int{2}, 0))
	assert.Equal(t, "x", comment(t, g, 0, 1))
	physical, ok := g.ToPhysicalRow(0)
	assert.True(t, ok)
	assert.Equal(t, 2, physical)
	visual, ok := g.ToVisualRow(0)
	assert.True(t, ok)
	assert.Equal(t, 1, visual)

	g.InsertRows(100, 1)
	assert.Equal(t, 6, g.CountRows())
	physical, _ = g.ToPhysicalRow(5)
	assert.Equal(t, 5, physical)

	_, ok = g.CellMeta(6, 0)
	assert.False(t, ok)
	_, ok = g.CellMeta(0, 3)
	assert.False(t, ok)
}

func TestColumnsFollowMeta(t *testing.T) {
	g, err := New(Options{Rows: 2, Columns: 4})
	require.NoError(t, err)
	g.Meta().UpdateColumnMeta(2, map[string]any{"type": "numeric"})

	g.InsertColumns(0, 1)
	assert.Equal(t, 5, g.CountColumns())
	cell, _ := g.CellMeta(0, 3)
	editor, _ := meta.Value[string](cell, "editor")
	assert.Equal(t, "numeric", editor)

	g.RemoveColumns(1, 1)
	cell, _ = g.CellMeta(0, 2)
	editor, _ = meta.Value[string](cell, "editor")
	assert.Equal(t, "numeric", editor)

	assert.True(t, g.MoveColumns([]int{2}, 3))
	physical, _ := g.ToPhysicalColumn(3)
	assert.Equal(t, 2, physical)
	visual, _ := g.ToVisualColumn(2)
	assert.Equal(t, 3, visual)
	assert.False(t, g.MoveColumns([]int{0}, 10))
}

func TestHidingAndTrimming(t *testing.T) {
	g, err := New(Options{Rows: 6, Columns: 2})
	require.NoError(t, err)

	g.HideRows(1, 3)
	assert.Equal(t, 6, g.CountRows())
	assert.Equal(t, 4, g.CountRenderedRows())
	assert.True(t, g.RowMapper().IsHidden(3))
	g.ShowRows(3)
	assert.Equal(t, 5, g.CountRenderedRows())

	g.TrimRows(0, 5)
	assert.Equal(t, 4, g.CountRows())
	physical, _ := g.ToPhysicalRow(0)
	assert.Equal(t, 1, physical)
	_, ok := g.ToVisualRow(0)
	assert.False(t, ok)

	g.UntrimRows(0)
	assert.Equal(t, 5, g.CountRows())

	g.HideColumns(0)
	assert.Equal(t, 1, g.CountRenderedColumns())
	g.ShowColumns(0)
	assert.Equal(t, 2, g.CountRenderedColumns())
}

func TestCollapsibleHeaders(t *testing.T) {
	g, err := New(Options{Rows: 1, Columns: 7, NestedHeaders: nestedHeaders()})
	require.NoError(t, err)

	settings, ok := g.HeaderSettings(1, 0)
	assert.True(t, ok)
	assert.Equal(t, "A2", settings.Label)

	g.HideColumns(2)
	assert.Equal(t, []int{2, 3, 4}, g.CollapseHeader(1, 0))
	assert.Equal(t, 4, g.CountRenderedColumns())
	assert.True(t, g.ColumnMapper().IsHidden(4))
	settings, _ = g.HeaderSettings(1, 0)
	assert.Equal(t, 1, settings.Colspan)
	assert.True(t, settings.IsCollapsed)

	assert.Equal(t, []int{2, 3, 4}, g.ExpandHeader(1, 0))
	assert.Equal(t, 6, g.CountRenderedColumns())
	assert.True(t, g.ColumnMapper().IsHidden(2))
	assert.Empty(t, g.ExpandHeader(1, 0))

	g.CollapseHeader(5, 0)
	assert.Equal(t, 5, g.CountRenderedColumns())
	require.NoError(t, g.SetNestedHeaders(nestedHeaders()))
	assert.Equal(t, 6, g.CountRenderedColumns())
}

func TestHeadersFollowMovedColumns(t *testing.T) {
	g, err := New(Options{Rows: 1, Columns: 7, NestedHeaders: nestedHeaders()})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 4}, g.CollapseHeader(1, 0))
	assert.True(t, g.MoveColumns([]int{0}, 6))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 0}, g.ColumnMapper().IndexesSequence())

	settings, ok := g.HeaderSettings(6, 0)
	require.True(t, ok)
	assert.Equal(t, "A1", settings.Label)
	settings, _ = g.HeaderSettings(0, 0)
	assert.Equal(t, "A2", settings.Label)
	assert.True(t, settings.IsCollapsed)

	// physical 2, 3 and 4 sit at visual 1, 2 and 3 now
	assert.Equal(t, []int{1, 2, 3}, g.ExpandHeader(0, 0))
	assert.Equal(t, 7, g.CountRenderedColumns())
	assert.Empty(t, g.ColumnMapper().HiddenIndexes())
}

func TestInvalidHeaders(t *testing.T) {
	invalid := headers.HeaderConfig{
		{headers.Span("A", 2), headers.Label("B")},
		{headers.Label("C"), headers.Span("D", 2)},
	}
	_, err := New(Options{Rows: 1, Columns: 3, NestedHeaders: invalid})
	assert.True(t, errors.Is(err, headers.ErrOverlappingHeaders))

	g, err := New(Options{Rows: 1, Columns: 3, NestedHeaders: nestedHeaders()})
	require.NoError(t, err)
	assert.Error(t, g.SetNestedHeaders(invalid))
	_, ok := g.HeaderSettings(0, 0)
	assert.False(t, ok)
	assert.Empty(t, g.CollapseHeader(1, 0))
}

func TestIndependentGrids(t *testing.T) {
	pool, err := ants.NewPool(8)
	require.NoError(t, err)
	defer pool.Release()

	types := DefaultCellTypes()
	var wg sync.WaitGroup
	var done int32
	worker := func(id int) func() {
		return func() {
			defer wg.Done()
			g, err := New(Options{Rows: 10, Columns: 7, NestedHeaders: nestedHeaders(), CellTypes: types})
			if err != nil {
				return
			}
			g.Meta().UpdateCellMeta(id%10, 0, map[string]any{"type": "password"})
			g.InsertRows(0, id%5)
			g.HideRows(1)
			g.CollapseHeader(1, 0)
			g.MoveColumns([]int{0}, 6)
			cell, ok := g.CellMeta(id%10+id%5, 6)
			if !ok {
				return
			}
			if _, ok := cell.Get("copyable"); ok && g.CountRenderedColumns() == 4 && g.CountRows() == 10+id%5 {
				atomic.AddInt32(&done, 1)
			}
		}
	}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		err := pool.Submit(worker(i))
		assert.NoError(t, err)
	}
	wg.Wait()
	assert.Equal(t, int32(32), atomic.LoadInt32(&done))
}
