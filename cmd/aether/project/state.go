package project

import (
	"fmt"
	"maps"
	"sort"

	"aether/cmd/aether/widget"
)

// DefaultName is the name of a project nobody has named yet.
const DefaultName = "my_app"

// State is the aggregate root of a project: the widget tree plus the
// variables and assets it refers to.
//
// The root is always a container and its ID never changes. Selection is
// view state; it is persisted but carries no meaning for the engine.
type State struct {
	Name      string
	Root      widget.Container
	Selection map[widget.ID]struct{}
	Variables map[string]Variable
	Assets    map[string]Asset
}

// New returns an empty project whose root is a vertical layout.
func New() *State {
	return NewWithRoot(widget.MustNew(widget.KindVertical).(widget.Container))
}

// NewWithRoot returns an empty project around root.
func NewWithRoot(root widget.Container) *State {
	return &State{
		Name:      DefaultName,
		Root:      root,
		Selection: make(map[widget.ID]struct{}),
		Variables: make(map[string]Variable),
		Assets:    make(map[string]Asset),
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	return &State{
		Name:      s.Name,
		Root:      widget.Clone(s.Root).(widget.Container),
		Selection: maps.Clone(s.Selection),
		Variables: maps.Clone(s.Variables),
		Assets:    maps.Clone(s.Assets),
	}
}

// ---- Lookup ----------------------------------------------------------------

// Find returns the node with the given id.
func (s *State) Find(id widget.ID) (widget.Node, bool) {
	return widget.Find(s.Root, id)
}

// MustFind is Find returning ErrNodeNotFound for unknown ids.
func (s *State) MustFind(id widget.ID) (widget.Node, error) {
	n, ok := s.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n, nil
}

// AllIDs returns every node id in pre-order. This is the keyboard focus order.
func (s *State) AllIDs() []widget.ID {
	return widget.IDs(s.Root)
}

// ParentOf returns the id of the container holding id.
func (s *State) ParentOf(id widget.ID) (widget.ID, bool) {
	p, _, ok := widget.FindParent(s.Root, id)
	if !ok {
		return widget.ID{}, false
	}
	return p.ID(), true
}

// IsContainer reports whether id names a node that owns children.
func (s *State) IsContainer(id widget.ID) bool {
	n, ok := s.Find(id)
	if !ok {
		return false
	}
	_, ok = widget.AsContainer(n)
	return ok
}

// Depth returns the nesting depth of id; the root is at depth 0.
func (s *State) Depth(id widget.ID) (int, bool) {
	return widget.Depth(s.Root, id)
}

// ---- Mutation ----------------------------------------------------------------

// Insert places a new node under parent at index. It fails when parent is
// not a container or when any id of node is already in the tree.
func (s *State) Insert(node widget.Node, parent widget.ID, index int) bool {
	p, ok := s.Find(parent)
	if !ok {
		return false
	}
	c, ok := widget.AsContainer(p)
	if !ok {
		return false
	}
	for _, id := range widget.IDs(node) {
		if _, exists := s.Find(id); exists {
			return false
		}
	}
	widget.InsertAt(c, node, index)
	return true
}

// Delete removes id and its subtree. The root cannot be deleted.
func (s *State) Delete(id widget.ID) bool {
	n, ok := widget.Extract(s.Root, id)
	if !ok {
		return false
	}
	for _, gone := range widget.IDs(n) {
		delete(s.Selection, gone)
	}
	return true
}

// MoveUp swaps id with its previous sibling.
func (s *State) MoveUp(id widget.ID) bool {
	return s.shift(id, -1)
}

// MoveDown swaps id with its next sibling.
func (s *State) MoveDown(id widget.ID) bool {
	return s.shift(id, +1)
}

func (s *State) shift(id widget.ID, delta int) bool {
	parent, idx, ok := widget.FindParent(s.Root, id)
	if !ok {
		return false
	}
	target := idx + delta
	if target < 0 || target >= len(parent.Children()) {
		return false
	}
	widget.Swap(parent, idx, target)
	return true
}

// Reparent moves src into dst's child sequence at index. Indices past the
// end append. The index counts positions after src has been removed.
//
// It fails when src is the root, when dst is not a container, or when dst
// is src or lies inside src's subtree.
func (s *State) Reparent(src, dst widget.ID, index int) bool {
	if src == dst || src == s.Root.ID() {
		return false
	}
	node, ok := s.Find(src)
	if !ok {
		return false
	}
	if widget.Contains(node, dst) {
		return false
	}
	target, ok := s.Find(dst)
	if !ok {
		return false
	}
	c, ok := widget.AsContainer(target)
	if !ok {
		return false
	}
	if _, ok := widget.Extract(s.Root, src); !ok {
		return false
	}
	widget.InsertAt(c, node, index)
	return true
}

// MoveBefore moves src right before dst, in whichever container holds dst.
func (s *State) MoveBefore(src, dst widget.ID) bool {
	return s.moveBeside(src, dst, 0)
}

// MoveAfter moves src right after dst, in whichever container holds dst.
func (s *State) MoveAfter(src, dst widget.ID) bool {
	return s.moveBeside(src, dst, 1)
}

func (s *State) moveBeside(src, dst widget.ID, after int) bool {
	if src == dst {
		return false
	}
	node, ok := s.Find(src)
	if !ok || widget.Contains(node, dst) {
		return false
	}
	parent, _, ok := widget.FindParent(s.Root, dst)
	if !ok {
		return false
	}
	if _, ok := widget.Extract(s.Root, src); !ok {
		return false
	}
	// dst's index is resolved after src is gone so same-parent moves land
	// where the caller pointed.
	idx := indexOf(parent, dst)
	widget.InsertAt(parent, node, idx+after)
	return true
}

func indexOf(c widget.Container, id widget.ID) int {
	for i, child := range c.Children() {
		if child.ID() == id {
			return i
		}
	}
	return len(c.Children())
}

// Drop applies a drag-and-drop gesture computed by the caller.
func (s *State) Drop(src, target widget.ID, pos widget.DropPosition) bool {
	switch pos {
	case widget.DropBefore:
		return s.MoveBefore(src, target)
	case widget.DropAfter:
		return s.MoveAfter(src, target)
	case widget.DropInto:
		return s.Reparent(src, target, widget.End)
	}
	return false
}

// RootLayoutType returns the kind label of the root container.
func (s *State) RootLayoutType() string {
	return string(s.Root.Kind())
}

// SetRootLayoutType swaps the root between vertical, horizontal and grid
// layouts, keeping its id and children. Other labels are ignored.
func (s *State) SetRootLayoutType(label string) bool {
	if label == s.RootLayoutType() {
		return true
	}
	root, ok := widget.Relayout(s.Root, widget.Kind(label))
	if !ok {
		return false
	}
	s.Root = root
	return true
}

// SetOffset positions a child of a freeform layout.
func (s *State) SetOffset(id widget.ID, off widget.Offset) error {
	parent, _, ok := widget.FindParent(s.Root, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	ff, ok := parent.(*widget.FreeformLayout)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFreeform, parent.Kind())
	}
	if ff.Offsets == nil {
		ff.Offsets = make(map[widget.ID]widget.Offset)
	}
	ff.Offsets[id] = off
	return nil
}

// SetProperty assigns a textual value to a property of node id.
func (s *State) SetProperty(id widget.ID, name, value string) error {
	n, err := s.MustFind(id)
	if err != nil {
		return err
	}
	return widget.SetProperty(n, name, value)
}

// ---- Bindings and events ---------------------------------------------------

// Bind binds property of node id to variable. The variable does not need to
// exist yet; Validate reports dangling names.
func (s *State) Bind(id widget.ID, property, variable string) error {
	n, err := s.MustFind(id)
	if err != nil {
		return err
	}
	return widget.Bind(n, property, variable)
}

// Unbind makes property of node id literal again.
func (s *State) Unbind(id widget.ID, property string) bool {
	n, ok := s.Find(id)
	if !ok {
		return false
	}
	return widget.Unbind(n, property)
}

// SetEvent attaches an action to an event of node id.
func (s *State) SetEvent(id widget.ID, e widget.Event, a widget.Action) error {
	n, err := s.MustFind(id)
	if err != nil {
		return err
	}
	return widget.AttachAction(n, e, a)
}

// ClearEvent removes the action of an event of node id.
func (s *State) ClearEvent(id widget.ID, e widget.Event) bool {
	n, ok := s.Find(id)
	if !ok {
		return false
	}
	return widget.DetachAction(n, e)
}

// ---- Selection -----------------------------------------------------------------

// Select replaces the selection with ids that exist in the tree.
func (s *State) Select(ids ...widget.ID) {
	s.Selection = make(map[widget.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.Find(id); ok {
			s.Selection[id] = struct{}{}
		}
	}
}

// Selected returns the selected ids in tree order.
func (s *State) Selected() []widget.ID {
	order := make(map[widget.ID]int)
	for i, id := range s.AllIDs() {
		order[id] = i
	}
	out := make([]widget.ID, 0, len(s.Selection))
	for id := range s.Selection {
		if _, ok := order[id]; ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}
