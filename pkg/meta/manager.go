package meta

import (
	"gridmap/pkg/lazymap"
	"gridmap/pkg/registry"

	"github.com/sirupsen/logrus"
)

// TypeKey selects a cell type. Setting it expands the type defaults into the
// same layer.
const TypeKey = "type"

// CellType is the set of settings a cell type brings along.
type CellType map[string]any

// Manager keeps the settings of a table in four layers: global, table,
// column and cell. Column and cell layers are addressed by physical indexes
// and are created on first access.
type Manager struct {
	types   *registry.Registry[CellType]
	global  *Layer
	table   *Layer
	columns *lazymap.LazyFactoryMap[*Layer]
	cells   *lazymap.LazyFactoryMap[*lazymap.LazyFactoryMap[*Layer]]
}

func NewManager(types *registry.Registry[CellType]) *Manager {
	return &Manager{
		types:   types,
		global:  NewLayer(),
		table:   NewLayer(),
		columns: lazymap.New(func(int) *Layer { return NewLayer() }),
		cells:   newCellRows(),
	}
}

func newCellRows() *lazymap.LazyFactoryMap[*lazymap.LazyFactoryMap[*Layer]] {
	return lazymap.New(func(int) *lazymap.LazyFactoryMap[*Layer] {
		return lazymap.New(func(int) *Layer { return NewLayer() })
	})
}

func (m *Manager) UpdateGlobalMeta(settings map[string]any) {
	m.update(m.global, settings)
}

func (m *Manager) UpdateTableMeta(settings map[string]any) {
	m.update(m.table, settings)
}

func (m *Manager) UpdateColumnMeta(physicalColumn int, settings map[string]any) {
	m.update(m.columns.Obtain(physicalColumn), settings)
}

func (m *Manager) UpdateCellMeta(physicalRow, physicalColumn int, settings map[string]any) {
	m.update(m.cells.Obtain(physicalRow).Obtain(physicalColumn), settings)
}

// update merges settings into the layer. The defaults of a cell type never
// override keys passed next to it.
func (m *Manager) update(layer *Layer, settings map[string]any) {
	for key, value := range settings {
		layer.Set(key, value)
	}
	name, ok := settings[TypeKey].(string)
	if !ok {
		return
	}
	cellType, ok := m.types.Item(name)
	if !ok {
		logrus.Warnf("unknown cell type %q", name)
		return
	}
	for key, value := range cellType {
		if _, explicit := settings[key]; !explicit {
			layer.Set(key, value)
		}
	}
}

func (m *Manager) GlobalMeta() Meta {
	return Meta{chain: []*Layer{m.global}}
}

func (m *Manager) TableMeta() Meta {
	return Meta{chain: []*Layer{m.table, m.global}}
}

func (m *Manager) ColumnMeta(physicalColumn int) Meta {
	return Meta{chain: []*Layer{m.columns.Obtain(physicalColumn), m.table, m.global}}
}

func (m *Manager) CellMeta(physicalRow, physicalColumn int) Meta {
	return Meta{chain: []*Layer{
		m.cells.Obtain(physicalRow).Obtain(physicalColumn),
		m.columns.Obtain(physicalColumn),
		m.table,
		m.global,
	}}
}

// CreateRow reserves amount rows of cell settings at physicalRow.
func (m *Manager) CreateRow(physicalRow, amount int) {
	m.cells.Insert(physicalRow, amount)
}

func (m *Manager) RemoveRow(physicalRow, amount int) {
	m.cells.Remove(physicalRow, amount)
}

// CreateColumn reserves amount columns at physicalColumn, in the column
// layer and in every row of the cell layer.
func (m *Manager) CreateColumn(physicalColumn, amount int) {
	m.columns.Insert(physicalColumn, amount)
	for row := range m.cells.Values() {
		if row != nil {
			row.Insert(physicalColumn, amount)
		}
	}
}

func (m *Manager) RemoveColumn(physicalColumn, amount int) {
	m.columns.Remove(physicalColumn, amount)
	for row := range m.cells.Values() {
		if row != nil {
			row.Remove(physicalColumn, amount)
		}
	}
}

// CellsCount is the number of rows holding cell settings.
func (m *Manager) CellsCount() int {
	return m.cells.Size()
}

// ClearCellsCache drops every column and cell layer. Global and table
// settings stay.
func (m *Manager) ClearCellsCache() {
	m.columns.Clear()
	m.cells.Clear()
}
