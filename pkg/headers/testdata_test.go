package headers

//	+----+----+----+----+----+----+----+
//	| A1 | A2                | A3      |
//	+----+----+----+----+----+----+----+
//	| B1 | B2                | B3      |
//	+----+----+----+----+----+----+----+
//	| C1 | C2 | C3           | C4      |
//	+----+----+----+----+----+----+----+
//	| D1 | D2 | D3 | D4 | D5 | D6      |
//	+----+----+----+----+----+----+----+
func sampleConfig() HeaderConfig {
	return HeaderConfig{
		{Label("A1"), Span("A2", 4), Span("A3", 2)},
		{Label("B1"), Span("B2", 4), Span("B3", 2)},
		{Label("C1"), Label("C2"), Span("C3", 3), Span("C4", 2)},
		{Label("D1"), Label("D2"), Label("D3"), Label("D4"), Label("D5"), Span("D6", 2)},
	}
}

// A2 ends one column after B2 does.
func overlappingConfig() HeaderConfig {
	return HeaderConfig{
		{Label("A1"), Span("A2", 5), Label("A3")},
		{Label("B1"), Span("B2", 4), Span("B3", 2)},
		{Label("C1"), Label("C2"), Span("C3", 3), Span("C4", 2)},
		{Label("D1"), Label("D2"), Label("D3"), Label("D4"), Label("D5"), Span("D6", 2)},
	}
}
