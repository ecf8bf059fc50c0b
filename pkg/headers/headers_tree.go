package headers

import (
	"fmt"

	"gridmap/pkg/tree"

	"github.com/google/btree"
	"github.com/sirupsen/logrus"
)

// NodeData is the state of one header kept in the headers tree.
type NodeData struct {
	Label       string
	Colspan     int
	OrigColspan int
	Hidden      bool
	IsCollapsed bool
	HeaderLevel int
	ColumnIndex int
}

type HeaderNode = tree.TreeNode[NodeData]

// Source is what the tree is built from.
type Source interface {
	LayersCount() int
	ColumnsCount() int
	ColumnSettings(level, column int) (ColumnSettings, bool)
	ColumnsSettings(level, column, extractionLength int) []ColumnSettings
}

type rootItem struct {
	column int
	node   *HeaderNode
}

func (r *rootItem) Less(than btree.Item) bool {
	return r.column < than.(*rootItem).column
}

// HeadersTree keeps one tree per top-level header. Roots are ordered by the
// visual column they start at, and rootsIndex maps every covered column to
// the column of its root.
type HeadersTree struct {
	source     Source
	rootNodes  *btree.BTree
	rootsIndex map[int]int
}

func NewHeadersTree(source Source) *HeadersTree {
	return &HeadersTree{
		source:     source,
		rootNodes:  btree.New(8),
		rootsIndex: make(map[int]int),
	}
}

// BuildTree rebuilds the forest from the source. When the source cannot be
// expressed as a forest the tree is left empty.
func (t *HeadersTree) BuildTree() error {
	t.Clear()
	columns := t.source.ColumnsCount()
	for column := 0; column < columns; {
		settings, ok := t.source.ColumnSettings(0, column)
		if !ok || settings.Hidden {
			t.Clear()
			return fmt.Errorf("%w: no header starts at column %d", ErrOverlappingHeaders, column)
		}
		span, err := headerSpan(settings, 0, column)
		if err != nil {
			t.Clear()
			return err
		}
		root := tree.NewTreeNode(NodeData{})
		if err := t.buildLeaves(root, column, 0, span); err != nil {
			t.Clear()
			return err
		}
		t.rootNodes.ReplaceOrInsert(&rootItem{column: column, node: root})
		column += span
	}
	t.RebuildTreeIndex()
	logrus.Debugf("headers tree built: %d roots, %d columns, %d levels",
		t.rootNodes.Len(), columns, t.source.LayersCount())
	return nil
}

func (t *HeadersTree) buildLeaves(parent *HeaderNode, column, level, extractionLength int) error {
	covered := 0
	for _, settings := range t.source.ColumnsSettings(level, column, extractionLength) {
		if settings.Hidden {
			return fmt.Errorf("%w: level %d crosses the boundary at column %d",
				ErrOverlappingHeaders, level, column)
		}
		span, err := headerSpan(settings, level, column)
		if err != nil {
			return err
		}
		data := NodeData{
			Label:       settings.Label,
			Colspan:     span,
			OrigColspan: span,
			HeaderLevel: level,
			ColumnIndex: column,
		}
		node := parent
		if level == 0 {
			parent.Data = data
		} else {
			node = tree.NewTreeNode(data)
			parent.AddChild(node)
		}
		if level+1 < t.source.LayersCount() {
			if err := t.buildLeaves(node, column, level+1, span); err != nil {
				return err
			}
		}
		column += span
		covered += span
	}
	if covered != extractionLength {
		return fmt.Errorf("%w: level %d covers %d of %d columns before column %d",
			ErrOverlappingHeaders, level, covered, extractionLength, column)
	}
	return nil
}

// headerSpan is the width a header takes in the uncollapsed tree. Sources
// that do not track collapsing may leave OrigColspan unset.
func headerSpan(settings ColumnSettings, level, column int) (int, error) {
	span := settings.OrigColspan
	if span <= 0 {
		span = settings.Colspan
	}
	if span < 1 {
		return 0, fmt.Errorf("%w: header at level %d column %d has no width", ErrInvalidHeader, level, column)
	}
	return span, nil
}

// RebuildTreeIndex recomputes the root anchors. Collapsing hides columns
// rather than removing them, so a root always covers its original span.
func (t *HeadersTree) RebuildTreeIndex() {
	roots := t.Roots()
	t.rootNodes.Clear(false)
	clear(t.rootsIndex)
	column := 0
	for _, root := range roots {
		t.rootNodes.ReplaceOrInsert(&rootItem{column: column, node: root})
		for i := column; i < column+root.Data.OrigColspan; i++ {
			t.rootsIndex[i] = column
		}
		column += root.Data.OrigColspan
	}
}

func (t *HeadersTree) Roots() []*HeaderNode {
	roots := make([]*HeaderNode, 0, t.rootNodes.Len())
	t.rootNodes.Ascend(func(i btree.Item) bool {
		roots = append(roots, i.(*rootItem).node)
		return true
	})
	return roots
}

func (t *HeadersTree) RootByColumn(column int) *HeaderNode {
	anchor, ok := t.rootsIndex[column]
	if !ok {
		return nil
	}
	item := t.rootNodes.Get(&rootItem{column: anchor})
	if item == nil {
		return nil
	}
	return item.(*rootItem).node
}

// Node returns the header covering column at level, or nil.
func (t *HeadersTree) Node(column, level int) *HeaderNode {
	root := t.RootByColumn(column)
	if root == nil {
		return nil
	}
	var found *HeaderNode
	root.WalkDown(func(node *HeaderNode) bool {
		if node.Data.HeaderLevel != level {
			return true
		}
		if column >= node.Data.ColumnIndex && column < node.Data.ColumnIndex+node.Data.OrigColspan {
			found = node
			return false
		}
		return true
	}, tree.TraversalBF)
	return found
}

func (t *HeadersTree) Clear() {
	t.rootNodes.Clear(false)
	clear(t.rootsIndex)
}
