package headers

import (
	"slices"

	"gridmap/pkg/tree"
)

type Action uint8

const (
	ActionCollapse Action = iota
	ActionExpand
)

func (a Action) String() string {
	switch a {
	case ActionCollapse:
		return "collapse"
	case ActionExpand:
		return "expand"
	}
	panic("unexpected")
}

// ModificationResult lists the visual columns the action hid (collapse) or
// revealed (expand), and by how many columns the header span changed.
type ModificationResult struct {
	AffectedColumns     []int
	ColspanCompensation int
}

// modifiers collapses and expands header nodes. Siblings hidden by a
// collapse are cloned first so expanding restores them as they were.
type modifiers struct {
	clonedTrees map[*HeaderNode]*HeaderNode
}

func newModifiers() *modifiers {
	return &modifiers{clonedTrees: make(map[*HeaderNode]*HeaderNode)}
}

func (m *modifiers) reset() {
	clear(m.clonedTrees)
}

func (m *modifiers) trigger(action Action, node *HeaderNode) ModificationResult {
	switch action {
	case ActionCollapse:
		return m.collapse(node)
	case ActionExpand:
		return m.expand(node)
	}
	panic("unexpected")
}

// reflectsFirstChild reports a node whose first child spans the same columns.
// Such nodes delegate their state to that child.
func reflectsFirstChild(node *HeaderNode) bool {
	return len(node.Childs) > 0 && node.Childs[0].Data.OrigColspan == node.Data.OrigColspan
}

func (m *modifiers) collapse(node *HeaderNode) ModificationResult {
	data := &node.Data
	if data.IsCollapsed || data.Hidden || data.OrigColspan <= 1 {
		return ModificationResult{}
	}
	if reflectsFirstChild(node) {
		return m.collapse(node.Childs[0])
	}
	data.IsCollapsed = true

	affected := make(map[int]struct{})
	if len(node.Childs) > 1 {
		for _, sibling := range node.Childs[1:] {
			visibleColumns(sibling, affected)
			m.clonedTrees[sibling] = sibling.CloneTree(nil)
			sibling.WalkDown(func(n *HeaderNode) bool {
				n.Data.Hidden = true
				return true
			}, tree.TraversalDF)
		}
	} else if len(node.Childs) == 0 {
		for i := 1; i < data.OrigColspan; i++ {
			affected[data.ColumnIndex+i] = struct{}{}
		}
	}

	firstChildColspan := 1
	if len(node.Childs) > 0 {
		firstChildColspan = node.Childs[0].Data.Colspan
	}
	compensation := data.Colspan - firstChildColspan
	node.WalkUp(func(n *HeaderNode) bool {
		n.Data.Colspan -= compensation
		if n.Data.Colspan <= 1 {
			n.Data.Colspan = 1
			n.Data.IsCollapsed = true
		} else if reflectsFirstChild(n) {
			n.Data.IsCollapsed = n.Childs[0].Data.IsCollapsed
		}
		return true
	})
	return ModificationResult{AffectedColumns: sortedColumns(affected), ColspanCompensation: compensation}
}

func (m *modifiers) expand(node *HeaderNode) ModificationResult {
	data := &node.Data
	if !data.IsCollapsed || data.Hidden || data.OrigColspan <= 1 {
		return ModificationResult{}
	}
	if reflectsFirstChild(node) {
		return m.expand(node.Childs[0])
	}
	data.IsCollapsed = false

	affected := make(map[int]struct{})
	compensation := 0
	if len(node.Childs) > 1 {
		for _, sibling := range node.Childs[1:] {
			if cloned, ok := m.clonedTrees[sibling]; ok {
				delete(m.clonedTrees, sibling)
				m.restore(sibling, cloned)
			} else {
				sibling.WalkDown(func(n *HeaderNode) bool {
					n.Data.Hidden = false
					return true
				}, tree.TraversalDF)
			}
			compensation += sibling.Data.Colspan
			visibleColumns(sibling, affected)
		}
	} else if len(node.Childs) == 0 {
		compensation = data.OrigColspan - data.Colspan
		for i := 1; i < data.OrigColspan; i++ {
			affected[data.ColumnIndex+i] = struct{}{}
		}
	}

	node.WalkUp(func(n *HeaderNode) bool {
		n.Data.Colspan += compensation
		if n.Data.Colspan >= n.Data.OrigColspan {
			n.Data.Colspan = n.Data.OrigColspan
			n.Data.IsCollapsed = false
		} else if reflectsFirstChild(n) {
			n.Data.IsCollapsed = n.Childs[0].Data.IsCollapsed
		}
		return true
	})
	return ModificationResult{AffectedColumns: sortedColumns(affected), ColspanCompensation: compensation}
}

// restore puts the cloned state back into sibling. Clones taken for nested
// collapses follow the nodes that replace their original keys.
func (m *modifiers) restore(sibling, cloned *HeaderNode) {
	before, after := flatten(sibling), flatten(cloned)
	sibling.ReplaceTreeWith(cloned)
	for i := 1; i < len(before) && i < len(after); i++ {
		if nested, ok := m.clonedTrees[before[i]]; ok {
			delete(m.clonedTrees, before[i])
			m.clonedTrees[after[i]] = nested
		}
	}
}

func flatten(node *HeaderNode) []*HeaderNode {
	nodes := make([]*HeaderNode, 0)
	node.WalkDown(func(n *HeaderNode) bool {
		nodes = append(nodes, n)
		return true
	}, tree.TraversalDF)
	return nodes
}

// visibleColumns collects the columns shown by the visible nodes of the
// subtree.
func visibleColumns(node *HeaderNode, columns map[int]struct{}) {
	node.WalkDown(func(n *HeaderNode) bool {
		if n.Data.Hidden {
			return true
		}
		columns[n.Data.ColumnIndex] = struct{}{}
		if n.IsLeaf() {
			for i := 1; i < n.Data.Colspan; i++ {
				columns[n.Data.ColumnIndex+i] = struct{}{}
			}
		}
		return true
	}, tree.TraversalDF)
}

func sortedColumns(columns map[int]struct{}) []int {
	sorted := make([]int, 0, len(columns))
	for column := range columns {
		sorted = append(sorted, column)
	}
	slices.Sort(sorted)
	return sorted
}
