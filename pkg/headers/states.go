package headers

import (
	"github.com/sirupsen/logrus"
)

// ColumnStatesManager owns the nested headers state: the normalized source
// settings, the headers tree built from them and the colspan matrix
// generated from the tree.
type ColumnStatesManager struct {
	source    *SourceSettings
	tree      *HeadersTree
	modifiers *modifiers
	matrix    [][]ColumnSettings
}

func NewColumnStatesManager() *ColumnStatesManager {
	source := NewSourceSettings()
	return &ColumnStatesManager{
		source:    source,
		tree:      NewHeadersTree(source),
		modifiers: newModifiers(),
	}
}

// SetState replaces the headers configuration. On error the manager is left
// empty.
func (m *ColumnStatesManager) SetState(config HeaderConfig) error {
	m.modifiers.reset()
	if err := m.source.SetData(config); err != nil {
		logrus.Warnf("nested headers rejected: %v", err)
		m.Clear()
		return err
	}
	return m.rebuild()
}

// MergeStateWith changes the header at the given source coordinates and
// rebuilds the state. Collapsed headers are expanded by the rebuild.
func (m *ColumnStatesManager) MergeStateWith(level, column int, fn func(*ColumnSettings)) error {
	if !m.source.MergeWith(level, column, fn) {
		return nil
	}
	m.modifiers.reset()
	return m.rebuild()
}

func (m *ColumnStatesManager) rebuild() error {
	if err := m.tree.BuildTree(); err != nil {
		logrus.Warnf("nested headers rejected: %v", err)
		m.Clear()
		return err
	}
	m.matrix = generateMatrix(m.tree.Roots(), m.source.LayersCount(), m.source.ColumnsCount())
	return nil
}

// ColumnSettings returns the settings at a visual column and header level.
// It reports false for levels that do not exist. Columns beyond the headers
// get plain settings.
func (m *ColumnStatesManager) ColumnSettings(column, level int) (ColumnSettings, bool) {
	if level < 0 || level >= len(m.matrix) {
		return ColumnSettings{}, false
	}
	row := m.matrix[level]
	if column < 0 || column >= len(row) {
		return ColumnSettings{Colspan: 1}, true
	}
	return row[column], true
}

// Collapsible reports whether the header covering column at level can be
// collapsed or expanded.
func (m *ColumnStatesManager) Collapsible(column, level int) bool {
	node := m.tree.Node(column, level)
	return node != nil && !node.Data.Hidden && node.Data.OrigColspan > 1
}

// TriggerNodeModification collapses or expands the header covering column at
// level.
func (m *ColumnStatesManager) TriggerNodeModification(action Action, column, level int) ModificationResult {
	node := m.tree.Node(column, level)
	if node == nil {
		return ModificationResult{}
	}
	result := m.modifiers.trigger(action, node)
	if len(result.AffectedColumns) > 0 {
		m.tree.RebuildTreeIndex()
		m.matrix = generateMatrix(m.tree.Roots(), m.source.LayersCount(), m.source.ColumnsCount())
		logrus.Debugf("%s header at column %d level %d: columns %v", action, column, level, result.AffectedColumns)
	}
	return result
}

// RowCoordsToLevel converts a header row coordinate (negative, -1 is the
// header closest to the cells) into a header level. Without headers it
// returns 0.
func (m *ColumnStatesManager) RowCoordsToLevel(row int) int {
	layers := m.LayersCount()
	if layers == 0 {
		return 0
	}
	return min(max(row+layers, 0), layers-1)
}

// LevelToRowCoords is the inverse of RowCoordsToLevel. Without headers it
// returns 0.
func (m *ColumnStatesManager) LevelToRowCoords(level int) int {
	layers := m.LayersCount()
	if layers == 0 {
		return 0
	}
	return min(max(level, 0), layers-1) - layers
}

// FindLeftMostColumnIndex returns the first column of the header covering
// column at level.
func (m *ColumnStatesManager) FindLeftMostColumnIndex(column, level int) int {
	if node := m.tree.Node(column, level); node != nil {
		return node.Data.ColumnIndex
	}
	return column
}

func (m *ColumnStatesManager) LayersCount() int {
	return m.source.LayersCount()
}

func (m *ColumnStatesManager) ColumnsCount() int {
	return m.source.ColumnsCount()
}

// ColspanMatrix returns a copy of the settings matrix, one row per level.
func (m *ColumnStatesManager) ColspanMatrix() [][]ColumnSettings {
	matrix := make([][]ColumnSettings, len(m.matrix))
	for i, row := range m.matrix {
		matrix[i] = append([]ColumnSettings(nil), row...)
	}
	return matrix
}

func (m *ColumnStatesManager) Clear() {
	m.source.Clear()
	m.tree.Clear()
	m.modifiers.reset()
	m.matrix = nil
}

func generateMatrix(roots []*HeaderNode, layers, columns int) [][]ColumnSettings {
	matrix := make([][]ColumnSettings, layers)
	for level := range matrix {
		matrix[level] = make([]ColumnSettings, columns)
	}
	for _, root := range roots {
		for _, node := range flatten(root) {
			data := node.Data
			row := matrix[data.HeaderLevel]
			if data.Hidden {
				row[data.ColumnIndex] = placeholder(data.OrigColspan)
			} else {
				row[data.ColumnIndex] = ColumnSettings{
					Label:       data.Label,
					Colspan:     data.Colspan,
					OrigColspan: data.OrigColspan,
					IsCollapsed: data.IsCollapsed,
				}
			}
			for i := 1; i < data.OrigColspan; i++ {
				row[data.ColumnIndex+i] = placeholder(data.OrigColspan)
			}
		}
	}
	return matrix
}
