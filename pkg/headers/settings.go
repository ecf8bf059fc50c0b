package headers

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// HeaderSettings is one user-defined header cell. In YAML a cell is either a
// plain label or a {label, colspan} mapping.
type HeaderSettings struct {
	Label   string `yaml:"label"`
	Colspan int    `yaml:"colspan"`
}

// HeaderConfig lists the header cells per level, the topmost level first.
type HeaderConfig [][]HeaderSettings

func Label(label string) HeaderSettings {
	return HeaderSettings{Label: label, Colspan: 1}
}

func Span(label string, colspan int) HeaderSettings {
	return HeaderSettings{Label: label, Colspan: colspan}
}

func (h *HeaderSettings) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*h = Label(node.Value)
		return nil
	case yaml.MappingNode:
		type plain HeaderSettings
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*h = HeaderSettings(p)
		if h.Colspan < 1 {
			h.Colspan = 1
		}
		return nil
	}
	return fmt.Errorf("%w: line %d: expected a label or a mapping", ErrInvalidHeader, node.Line)
}

// ParseConfig decodes either a bare list of levels or a document with a
// nestedHeaders key.
func ParseConfig(data []byte) (HeaderConfig, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return HeaderConfig{}, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.MappingNode {
		var wrapped struct {
			NestedHeaders HeaderConfig `yaml:"nestedHeaders"`
		}
		if err := doc.Decode(&wrapped); err != nil {
			return nil, err
		}
		return wrapped.NestedHeaders, nil
	}
	var config HeaderConfig
	if err := doc.Decode(&config); err != nil {
		return nil, err
	}
	return config, nil
}

// ColumnSettings is the normalized state of one header matrix cell. Cells
// covered by a header wider than one column are hidden placeholders.
type ColumnSettings struct {
	Label       string
	Colspan     int
	OrigColspan int
	Hidden      bool
	IsCollapsed bool
}

func placeholder(origColspan int) ColumnSettings {
	return ColumnSettings{Colspan: 1, OrigColspan: origColspan, Hidden: true}
}
