package tree

type Traversal uint8

const (
	// TraversalDF walks depth-first, pre-order.
	TraversalDF Traversal = iota
	// TraversalBF walks breadth-first, level by level.
	TraversalBF
)

// TreeNode owns its children. Parent is a plain back reference and does not
// keep the parent alive on its own.
type TreeNode[T any] struct {
	Data   T
	Parent *TreeNode[T]
	Childs []*TreeNode[T]
}

func NewTreeNode[T any](data T) *TreeNode[T] {
	return &TreeNode[T]{Data: data}
}

func (n *TreeNode[T]) AddChild(child *TreeNode[T]) {
	child.Parent = n
	n.Childs = append(n.Childs, child)
}

func (n *TreeNode[T]) IsRoot() bool { return n.Parent == nil }
func (n *TreeNode[T]) IsLeaf() bool { return len(n.Childs) == 0 }

func (n *TreeNode[T]) Root() *TreeNode[T] {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

func (n *TreeNode[T]) Depth() int {
	depth := 0
	for curr := n.Parent; curr != nil; curr = curr.Parent {
		depth++
	}
	return depth
}

// WalkDown visits the node and its descendants. Returning false from fn
// stops the whole walk.
func (n *TreeNode[T]) WalkDown(fn func(node *TreeNode[T]) bool, traversal Traversal) {
	if traversal == TraversalBF {
		n.walkBF(fn)
		return
	}
	n.walkDF(fn)
}

func (n *TreeNode[T]) walkDF(fn func(node *TreeNode[T]) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Childs {
		if !child.walkDF(fn) {
			return false
		}
	}
	return true
}

func (n *TreeNode[T]) walkBF(fn func(node *TreeNode[T]) bool) {
	queue := []*TreeNode[T]{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if !fn(node) {
			return
		}
		queue = append(queue, node.Childs...)
	}
}

// WalkUp visits the node and then its ancestors up to the root.
func (n *TreeNode[T]) WalkUp(fn func(node *TreeNode[T]) bool) {
	for curr := n; curr != nil; curr = curr.Parent {
		if !fn(curr) {
			return
		}
	}
}

// CloneTree deep copies the subtree. clone copies the node data; nil copies
// it by assignment.
func (n *TreeNode[T]) CloneTree(clone func(T) T) *TreeNode[T] {
	data := n.Data
	if clone != nil {
		data = clone(n.Data)
	}
	cloned := NewTreeNode(data)
	for _, child := range n.Childs {
		cloned.AddChild(child.CloneTree(clone))
	}
	return cloned
}

// ReplaceTreeWith takes over the data and children of other. The node keeps
// its own parent.
func (n *TreeNode[T]) ReplaceTreeWith(other *TreeNode[T]) {
	n.Data = other.Data
	n.Childs = other.Childs
	for _, child := range n.Childs {
		child.Parent = n
	}
	other.Childs = nil
}
