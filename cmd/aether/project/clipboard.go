package project

import "aether/cmd/aether/widget"

// Paste inserts a copy of node under parent at index with every id in the
// copy replaced by a fresh one, so the same subtree can be pasted many
// times. A zero parent means the root. It returns the id of the pasted node.
func (s *State) Paste(node widget.Node, parent widget.ID, index int) (widget.ID, bool) {
	if parent == (widget.ID{}) {
		parent = s.Root.ID()
	}
	cp := widget.Clone(node)
	widget.Regenerate(cp)
	if !s.Insert(cp, parent, index) {
		return widget.ID{}, false
	}
	return cp.ID(), true
}

// Duplicate pastes a copy of id right after it.
func (s *State) Duplicate(id widget.ID) (widget.ID, bool) {
	n, ok := s.Find(id)
	if !ok {
		return widget.ID{}, false
	}
	parent, idx, ok := widget.FindParent(s.Root, id)
	if !ok {
		return widget.ID{}, false
	}
	return s.Paste(n, parent.ID(), idx+1)
}
