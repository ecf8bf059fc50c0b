package grid

import (
	"gridmap/pkg/headers"
	"gridmap/pkg/meta"
	"gridmap/pkg/registry"
)

type Options struct {
	Rows          int
	Columns       int
	NestedHeaders headers.HeaderConfig
	// CellTypes defaults to DefaultCellTypes.
	CellTypes *registry.Registry[meta.CellType]
}

// DefaultCellTypes returns a registry with the built-in cell types.
func DefaultCellTypes() *registry.Registry[meta.CellType] {
	types := registry.New[meta.CellType]("cell types")
	types.Register("text", meta.CellType{"editor": "text", "renderer": "text"})
	types.Register("numeric", meta.CellType{"editor": "numeric", "renderer": "numeric", "validator": "numeric"})
	types.Register("checkbox", meta.CellType{"editor": "checkbox", "renderer": "checkbox"})
	types.Register("password", meta.CellType{"editor": "password", "renderer": "password", "copyable": false})
	return types
}
