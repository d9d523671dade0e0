package project

// DefaultHistoryLimit is the number of undo steps kept when none is configured.
const DefaultHistoryLimit = 50

// History keeps deep snapshots of a project for undo and redo.
type History struct {
	limit int
	undo  []*State
	redo  []*State
}

// NewHistory returns an empty history holding at most limit undo steps.
// A limit below one means DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record snapshots s before it is mutated. Any redo steps are dropped.
func (h *History) Record(s *State) {
	h.undo = append(h.undo, s.Clone())
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

// Undo returns the state before the last recorded mutation. cur is kept for
// Redo.
func (h *History) Undo(cur *State) (*State, error) {
	if len(h.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur.Clone())
	return prev, nil
}

// Redo reverses the last Undo.
func (h *History) Redo(cur *State) (*State, error) {
	if len(h.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cur.Clone())
	return next, nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undo and redo steps held.
func (h *History) Len() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
