package grid

import (
	"slices"

	"gridmap/pkg/headers"
	"gridmap/pkg/indexmap"
	"gridmap/pkg/meta"

	"github.com/sirupsen/logrus"
)

const (
	manualRowHiding    = "manualRowHiding"
	manualColumnHiding = "manualColumnHiding"
	trimRows           = "trimRows"
	collapsibleColumns = "collapsibleColumns"
)

// Grid ties the index mappers of both axes to the cell meta and the nested
// headers of one table. A Grid is not safe for concurrent use; distinct
// grids share nothing but the cell types registry.
type Grid struct {
	rowMapper    *indexmap.IndexMapper
	columnMapper *indexmap.IndexMapper
	meta         *meta.Manager
	headers      *headers.ColumnStatesManager

	hiddenRows       *indexmap.HidingMap
	hiddenColumns    *indexmap.HidingMap
	trimmedRows      *indexmap.TrimmingMap
	collapsedColumns *indexmap.HidingMap

	// headerColumns[c] is the physical column the header column c was set
	// on; headerByPhysical is its inverse.
	headerColumns    []int
	headerByPhysical map[int]int
}

func New(opts Options) (*Grid, error) {
	types := opts.CellTypes
	if types == nil {
		types = DefaultCellTypes()
	}
	g := &Grid{
		rowMapper:    indexmap.NewIndexMapper("rows"),
		columnMapper: indexmap.NewIndexMapper("columns"),
		meta:         meta.NewManager(types),
		headers:      headers.NewColumnStatesManager(),
	}
	g.hiddenRows = g.rowMapper.CreateAndRegisterHidingMap(manualRowHiding)
	g.trimmedRows = g.rowMapper.CreateAndRegisterTrimmingMap(trimRows)
	g.hiddenColumns = g.columnMapper.CreateAndRegisterHidingMap(manualColumnHiding)
	g.collapsedColumns = g.columnMapper.CreateAndRegisterHidingMap(collapsibleColumns)

	g.rowMapper.InitToLength(opts.Rows)
	g.columnMapper.InitToLength(opts.Columns)
	if len(opts.NestedHeaders) > 0 {
		if err := g.SetNestedHeaders(opts.NestedHeaders); err != nil {
			return nil, err
		}
	}
	logrus.Infof("grid created: %d rows, %d columns", opts.Rows, opts.Columns)
	return g, nil
}

func (g *Grid) RowMapper() *indexmap.IndexMapper    { return g.rowMapper }
func (g *Grid) ColumnMapper() *indexmap.IndexMapper { return g.columnMapper }
func (g *Grid) Meta() *meta.Manager                 { return g.meta }
func (g *Grid) Headers() *headers.ColumnStatesManager {
	return g.headers
}

// CountRows is the number of rows that are not trimmed.
func (g *Grid) CountRows() int    { return g.rowMapper.NotTrimmedIndexesLength() }
func (g *Grid) CountColumns() int { return g.columnMapper.NotTrimmedIndexesLength() }

func (g *Grid) CountRenderedRows() int    { return g.rowMapper.RenderableIndexesLength() }
func (g *Grid) CountRenderedColumns() int { return g.columnMapper.RenderableIndexesLength() }

func (g *Grid) ToPhysicalRow(visual int) (int, bool)    { return g.rowMapper.PhysicalFromVisualIndex(visual) }
func (g *Grid) ToVisualRow(physical int) (int, bool)    { return g.rowMapper.VisualFromPhysicalIndex(physical) }
func (g *Grid) ToPhysicalColumn(visual int) (int, bool) { return g.columnMapper.PhysicalFromVisualIndex(visual) }
func (g *Grid) ToVisualColumn(physical int) (int, bool) { return g.columnMapper.VisualFromPhysicalIndex(physical) }

// InsertRows adds amount rows before the visual row. A row beyond the last
// one appends.
func (g *Grid) InsertRows(visualRow, amount int) {
	physical := insertionPhysical(g.rowMapper, visualRow)
	g.meta.CreateRow(physical, amount)
	g.rowMapper.InsertIndexes(visualRow, amount)
}

func (g *Grid) RemoveRows(visualRow, amount int) {
	removed := physicalRange(g.rowMapper, visualRow, amount)
	g.rowMapper.RemoveIndexes(removed)
	for _, physical := range descending(removed) {
		g.meta.RemoveRow(physical, 1)
	}
}

func (g *Grid) InsertColumns(visualColumn, amount int) {
	g.warnHeadersOutOfSync()
	physical := insertionPhysical(g.columnMapper, visualColumn)
	g.meta.CreateColumn(physical, amount)
	g.columnMapper.InsertIndexes(visualColumn, amount)
}

func (g *Grid) RemoveColumns(visualColumn, amount int) {
	g.warnHeadersOutOfSync()
	removed := physicalRange(g.columnMapper, visualColumn, amount)
	g.columnMapper.RemoveIndexes(removed)
	for _, physical := range descending(removed) {
		g.meta.RemoveColumn(physical, 1)
	}
}

func (g *Grid) warnHeadersOutOfSync() {
	if g.headers.LayersCount() > 0 {
		logrus.Warnf("nested headers do not follow column insertion or removal")
	}
}

func (g *Grid) HideRows(visualRows ...int) { setFlags(g.rowMapper, g.hiddenRows, visualRows, true) }
func (g *Grid) ShowRows(visualRows ...int) { setFlags(g.rowMapper, g.hiddenRows, visualRows, false) }
func (g *Grid) HideColumns(visualColumns ...int) {
	setFlags(g.columnMapper, g.hiddenColumns, visualColumns, true)
}
func (g *Grid) ShowColumns(visualColumns ...int) {
	setFlags(g.columnMapper, g.hiddenColumns, visualColumns, false)
}

// TrimRows takes physical rows out of the visual space.
func (g *Grid) TrimRows(physicalRows ...int) {
	g.rowMapper.ExecuteBatchOperations(func() {
		for _, physical := range physicalRows {
			g.trimmedRows.SetValueAtIndex(physical, true)
		}
	})
}

func (g *Grid) UntrimRows(physicalRows ...int) {
	g.rowMapper.ExecuteBatchOperations(func() {
		for _, physical := range physicalRows {
			g.trimmedRows.SetValueAtIndex(physical, false)
		}
	})
}

func (g *Grid) MoveRows(visualRows []int, finalIndex int) bool {
	return g.rowMapper.MoveIndexes(visualRows, finalIndex)
}

// MoveColumns moves columns together with their nested headers.
func (g *Grid) MoveColumns(visualColumns []int, finalIndex int) bool {
	return g.columnMapper.MoveIndexes(visualColumns, finalIndex)
}

// CellMeta returns the settings of the cell at visual coordinates.
func (g *Grid) CellMeta(visualRow, visualColumn int) (meta.Meta, bool) {
	row, ok := g.ToPhysicalRow(visualRow)
	if !ok {
		return meta.Meta{}, false
	}
	column, ok := g.ToPhysicalColumn(visualColumn)
	if !ok {
		return meta.Meta{}, false
	}
	return g.meta.CellMeta(row, column), true
}

// SetNestedHeaders replaces the header configuration and expands every
// collapsed header. On error the grid has no nested headers.
func (g *Grid) SetNestedHeaders(config headers.HeaderConfig) error {
	g.collapsedColumns.Clear()
	g.headerColumns = nil
	g.headerByPhysical = make(map[int]int)
	if err := g.headers.SetState(config); err != nil {
		return err
	}
	for c := 0; c < g.headers.ColumnsCount(); c++ {
		physical, ok := g.columnMapper.PhysicalFromVisualIndex(c)
		if !ok {
			g.headerColumns = append(g.headerColumns, -1)
			continue
		}
		g.headerColumns = append(g.headerColumns, physical)
		g.headerByPhysical[physical] = c
	}
	logrus.Infof("nested headers set: %d levels, %d columns", g.headers.LayersCount(), g.headers.ColumnsCount())
	return nil
}

func (g *Grid) HeaderSettings(visualColumn, level int) (headers.ColumnSettings, bool) {
	return g.headers.ColumnSettings(g.headerColumn(visualColumn), level)
}

// headerColumn returns the header column labelling the visual column. Headers
// stay with the columns they were set on when columns move. A column without
// a header maps past the last header column.
func (g *Grid) headerColumn(visualColumn int) int {
	if physical, ok := g.columnMapper.PhysicalFromVisualIndex(visualColumn); ok {
		if c, ok := g.headerByPhysical[physical]; ok {
			return c
		}
	}
	return g.headers.ColumnsCount()
}

// CollapseHeader hides the columns of a header except those under its first
// child. It returns the visual columns that got hidden.
func (g *Grid) CollapseHeader(visualColumn, level int) []int {
	return g.modifyHeader(headers.ActionCollapse, visualColumn, level)
}

// ExpandHeader reverts CollapseHeader.
func (g *Grid) ExpandHeader(visualColumn, level int) []int {
	return g.modifyHeader(headers.ActionExpand, visualColumn, level)
}

func (g *Grid) modifyHeader(action headers.Action, visualColumn, level int) []int {
	result := g.headers.TriggerNodeModification(action, g.headerColumn(visualColumn), level)
	affected := make([]int, 0, len(result.AffectedColumns))
	g.columnMapper.ExecuteBatchOperations(func() {
		for _, c := range result.AffectedColumns {
			if c >= len(g.headerColumns) || g.headerColumns[c] < 0 {
				continue
			}
			physical := g.headerColumns[c]
			g.collapsedColumns.SetValueAtIndex(physical, action == headers.ActionCollapse)
			if visual, ok := g.columnMapper.VisualFromPhysicalIndex(physical); ok {
				affected = append(affected, visual)
			}
		}
	})
	slices.Sort(affected)
	return affected
}

func setFlags(mapper *indexmap.IndexMapper, flags *indexmap.HidingMap, visualIndexes []int, value bool) {
	mapper.ExecuteBatchOperations(func() {
		for _, visual := range visualIndexes {
			if physical, ok := mapper.PhysicalFromVisualIndex(visual); ok {
				flags.SetValueAtIndex(physical, value)
			}
		}
	})
}

func insertionPhysical(mapper *indexmap.IndexMapper, visual int) int {
	if physical, ok := mapper.PhysicalFromVisualIndex(visual); ok {
		return physical
	}
	return mapper.NumberOfIndexes()
}

func physicalRange(mapper *indexmap.IndexMapper, visual, amount int) []int {
	physicals := make([]int, 0, amount)
	for i := visual; i < visual+amount; i++ {
		if physical, ok := mapper.PhysicalFromVisualIndex(i); ok {
			physicals = append(physicals, physical)
		}
	}
	return physicals
}

func descending(indexes []int) []int {
	sorted := slices.Clone(indexes)
	slices.Sort(sorted)
	slices.Reverse(sorted)
	return sorted
}
