package headers

import (
	"fmt"
)

// SourceSettings keeps the header configuration normalized into a matrix
// where every level has the same number of cells. A header wider than one
// column is followed by origColspan-1 hidden placeholders.
type SourceSettings struct {
	data    [][]ColumnSettings
	columns int
}

func NewSourceSettings() *SourceSettings {
	return new(SourceSettings)
}

// SetData replaces the settings. A configuration whose levels differ in width
// or whose headers cross a header boundary of the level above is rejected and
// leaves the settings empty.
func (s *SourceSettings) SetData(config HeaderConfig) error {
	s.Clear()
	data := make([][]ColumnSettings, 0, len(config))
	for level, row := range config {
		cells := make([]ColumnSettings, 0, len(row))
		for _, header := range row {
			if header.Colspan < 1 {
				return fmt.Errorf("%w: %q at level %d has colspan %d", ErrInvalidHeader, header.Label, level, header.Colspan)
			}
			cells = append(cells, ColumnSettings{
				Label:       header.Label,
				Colspan:     header.Colspan,
				OrigColspan: header.Colspan,
			})
			for i := 1; i < header.Colspan; i++ {
				cells = append(cells, placeholder(header.Colspan))
			}
		}
		data = append(data, cells)
	}
	if err := validate(data); err != nil {
		return err
	}
	s.data = data
	if len(data) > 0 {
		s.columns = len(data[0])
	}
	return nil
}

func validate(data [][]ColumnSettings) error {
	for level := 1; level < len(data); level++ {
		upper, lower := data[level-1], data[level]
		if len(upper) != len(lower) {
			return fmt.Errorf("%w: level %d has %d columns, level %d has %d",
				ErrMismatchedWidths, level-1, len(upper), level, len(lower))
		}
		for column := range upper {
			if !upper[column].Hidden && lower[column].Hidden {
				return fmt.Errorf("%w: level %d crosses the boundary at column %d",
					ErrOverlappingHeaders, level, column)
			}
		}
	}
	return nil
}

// MergeWith applies fn to the header cell at the given coordinates. The cell
// keeps its span. It is a no-op for placeholders and out-of-range coordinates.
func (s *SourceSettings) MergeWith(level, column int, fn func(*ColumnSettings)) bool {
	if level < 0 || level >= len(s.data) || column < 0 || column >= s.columns {
		return false
	}
	cell := &s.data[level][column]
	if cell.Hidden {
		return false
	}
	colspan, origColspan := cell.Colspan, cell.OrigColspan
	fn(cell)
	cell.Colspan, cell.OrigColspan, cell.Hidden = colspan, origColspan, false
	return true
}

func (s *SourceSettings) ColumnSettings(level, column int) (ColumnSettings, bool) {
	if level < 0 || level >= len(s.data) || column < 0 || column >= s.columns {
		return ColumnSettings{}, false
	}
	return s.data[level][column], true
}

// ColumnsSettings walks the level from column, header by header, until
// extractionLength columns are covered.
func (s *SourceSettings) ColumnsSettings(level, column, extractionLength int) []ColumnSettings {
	settings := make([]ColumnSettings, 0)
	for cursor := column; cursor < column+extractionLength; {
		cell, ok := s.ColumnSettings(level, cursor)
		if !ok {
			break
		}
		settings = append(settings, cell)
		cursor += max(cell.OrigColspan, 1)
	}
	return settings
}

func (s *SourceSettings) LayersCount() int {
	return len(s.data)
}

func (s *SourceSettings) ColumnsCount() int {
	return s.columns
}

func (s *SourceSettings) Clear() {
	s.data = nil
	s.columns = 0
}
