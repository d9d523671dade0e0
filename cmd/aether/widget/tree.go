package widget

import "maps"

// Walk visits n and its descendants in pre-order. parent is nil for n itself.
// Returning false from fn skips the children of the visited node.
func Walk(n Node, fn func(node Node, parent Container, depth int) bool) {
	walk(n, nil, 0, fn)
}

func walk(n Node, parent Container, depth int, fn func(Node, Container, int) bool) {
	if !fn(n, parent, depth) {
		return
	}
	c, ok := AsContainer(n)
	if !ok {
		return
	}
	for _, child := range c.Children() {
		walk(child, c, depth+1, fn)
	}
}

// IDs returns the identifiers of n's subtree in pre-order.
func IDs(n Node) []ID {
	var out []ID
	Walk(n, func(node Node, _ Container, _ int) bool {
		out = append(out, node.ID())
		return true
	})
	return out
}

// Count returns the number of nodes in n's subtree, n included.
func Count(n Node) int {
	total := 1
	if c, ok := AsContainer(n); ok {
		for _, child := range c.Children() {
			total += Count(child)
		}
	}
	return total
}

// Find returns the node with the given id in n's subtree.
func Find(n Node, id ID) (Node, bool) {
	if n.ID() == id {
		return n, true
	}
	c, ok := AsContainer(n)
	if !ok {
		return nil, false
	}
	for _, child := range c.Children() {
		if found, ok := Find(child, id); ok {
			return found, true
		}
	}
	return nil, false
}

// Contains reports whether id is n itself or one of its descendants.
func Contains(n Node, id ID) bool {
	_, ok := Find(n, id)
	return ok
}

// FindParent returns the container whose child sequence holds id, and the
// index of id in it. The root of the search has no parent.
func FindParent(n Node, id ID) (Container, int, bool) {
	c, ok := AsContainer(n)
	if !ok {
		return nil, 0, false
	}
	for i, child := range c.Children() {
		if child.ID() == id {
			return c, i, true
		}
		if p, idx, ok := FindParent(child, id); ok {
			return p, idx, true
		}
	}
	return nil, 0, false
}

// Depth returns how many containers sit between n and the node id.
func Depth(n Node, id ID) (int, bool) {
	depth, found := 0, false
	Walk(n, func(node Node, _ Container, d int) bool {
		if found {
			return false
		}
		if node.ID() == id {
			depth, found = d, true
			return false
		}
		return true
	})
	return depth, found
}

// Extract detaches the node id from its parent and returns it with its
// subtree. The root of the search cannot be extracted.
func Extract(n Node, id ID) (Node, bool) {
	parent, idx, ok := FindParent(n, id)
	if !ok {
		return nil, false
	}
	children := parent.Children()
	child := children[idx]
	rest := make([]Node, 0, len(children)-1)
	rest = append(rest, children[:idx]...)
	rest = append(rest, children[idx+1:]...)
	parent.SetChildren(rest)
	return child, true
}

// InsertAt inserts child into c at index. Out-of-range indices, End and
// negative values included, append.
func InsertAt(c Container, child Node, index int) {
	children := c.Children()
	if index < 0 || index > len(children) {
		index = len(children)
	}
	out := make([]Node, 0, len(children)+1)
	out = append(out, children[:index]...)
	out = append(out, child)
	out = append(out, children[index:]...)
	c.SetChildren(out)
}

// Swap exchanges the children at positions i and j of c.
func Swap(c Container, i, j int) {
	children := append([]Node(nil), c.Children()...)
	children[i], children[j] = children[j], children[i]
	c.SetChildren(children)
}

// Relayout returns a container of kind k that carries the id and children of
// c. Only the root layouts (vertical, horizontal, grid) are supported.
func Relayout(c Container, k Kind) (Container, bool) {
	id, children := c.ID(), c.Children()
	switch k {
	case KindVertical:
		return &VerticalLayout{NodeID: id, Spacing: DefaultSpacing, Items: children}, true
	case KindHorizontal:
		return &HorizontalLayout{NodeID: id, Spacing: DefaultSpacing, Items: children}, true
	case KindGrid:
		return &GridLayout{NodeID: id, Columns: DefaultColumns, Spacing: DefaultSpacing, Items: children}, true
	}
	return nil, false
}

// Clone returns a deep copy of n's subtree with the same identifiers.
func Clone(n Node) Node {
	switch x := n.(type) {
	case *VerticalLayout:
		c := *x
		c.Items = cloneNodes(x.Items)
		return &c
	case *HorizontalLayout:
		c := *x
		c.Items = cloneNodes(x.Items)
		return &c
	case *GridLayout:
		c := *x
		c.Items = cloneNodes(x.Items)
		return &c
	case *FreeformLayout:
		c := *x
		c.Items = cloneNodes(x.Items)
		c.Offsets = maps.Clone(x.Offsets)
		return &c
	case *ScrollArea:
		c := *x
		c.Items = cloneNodes(x.Items)
		return &c
	case *TabContainer:
		c := *x
		c.Items = cloneNodes(x.Items)
		c.Titles = append([]string(nil), x.Titles...)
		return &c
	case *Window:
		c := *x
		c.Items = cloneNodes(x.Items)
		return &c
	case *Button:
		c := *x
		c.Bindings, c.Events = maps.Clone(x.Bindings), maps.Clone(x.Events)
		return &c
	case *Label:
		c := *x
		c.Bindings = maps.Clone(x.Bindings)
		return &c
	case *TextEdit:
		c := *x
		c.Bindings, c.Events = maps.Clone(x.Bindings), maps.Clone(x.Events)
		return &c
	case *Checkbox:
		c := *x
		c.Bindings, c.Events = maps.Clone(x.Bindings), maps.Clone(x.Events)
		return &c
	case *Slider:
		c := *x
		c.Bindings, c.Events = maps.Clone(x.Bindings), maps.Clone(x.Events)
		return &c
	case *ProgressBar:
		c := *x
		c.Bindings = maps.Clone(x.Bindings)
		return &c
	case *ComboBox:
		c := *x
		c.Options = append([]string(nil), x.Options...)
		c.Bindings, c.Events = maps.Clone(x.Bindings), maps.Clone(x.Events)
		return &c
	case *Image:
		c := *x
		return &c
	case *Separator:
		c := *x
		return &c
	case *Spinner:
		c := *x
		return &c
	case *Hyperlink:
		c := *x
		c.Bindings, c.Events = maps.Clone(x.Bindings), maps.Clone(x.Events)
		return &c
	case *ColorPicker:
		c := *x
		return &c
	case *Table:
		c := *x
		c.Columns = append([]string(nil), x.Columns...)
		c.Rows = make([][]string, len(x.Rows))
		for i, r := range x.Rows {
			c.Rows[i] = append([]string(nil), r...)
		}
		if x.Rows == nil {
			c.Rows = nil
		}
		return &c
	case *Plot:
		c := *x
		c.Series = make([]Series, len(x.Series))
		for i, s := range x.Series {
			c.Series[i] = Series{Name: s.Name, Points: append([][2]float64(nil), s.Points...)}
		}
		if x.Series == nil {
			c.Series = nil
		}
		return &c
	}
	return n
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

// Regenerate assigns a fresh ID to every node of n's subtree in place.
// Freeform offsets follow their children.
func Regenerate(n Node) {
	if c, ok := AsContainer(n); ok {
		var old []ID
		for _, child := range c.Children() {
			old = append(old, child.ID())
			Regenerate(child)
		}
		if ff, ok := c.(*FreeformLayout); ok && len(ff.Offsets) > 0 {
			offsets := make(map[ID]Offset, len(ff.Offsets))
			for i, child := range ff.Items {
				if off, ok := ff.Offsets[old[i]]; ok {
					offsets[child.ID()] = off
				}
			}
			ff.Offsets = offsets
		}
	}
	setID(n, NewID())
}

func setID(n Node, id ID) {
	switch x := n.(type) {
	case *VerticalLayout:
		x.NodeID = id
	case *HorizontalLayout:
		x.NodeID = id
	case *GridLayout:
		x.NodeID = id
	case *FreeformLayout:
		x.NodeID = id
	case *ScrollArea:
		x.NodeID = id
	case *TabContainer:
		x.NodeID = id
	case *Window:
		x.NodeID = id
	case *Button:
		x.NodeID = id
	case *Label:
		x.NodeID = id
	case *TextEdit:
		x.NodeID = id
	case *Checkbox:
		x.NodeID = id
	case *Slider:
		x.NodeID = id
	case *ProgressBar:
		x.NodeID = id
	case *ComboBox:
		x.NodeID = id
	case *Image:
		x.NodeID = id
	case *Separator:
		x.NodeID = id
	case *Spinner:
		x.NodeID = id
	case *Hyperlink:
		x.NodeID = id
	case *ColorPicker:
		x.NodeID = id
	case *Table:
		x.NodeID = id
	case *Plot:
		x.NodeID = id
	}
}

// DropPosition says where a dragged node lands relative to the drop target.
type DropPosition int

const (
	DropBefore DropPosition = iota
	DropAfter
	DropInto
)

func (p DropPosition) String() string {
	switch p {
	case DropBefore:
		return "before"
	case DropAfter:
		return "after"
	case DropInto:
		return "into"
	}
	return "unknown"
}
