package project

import (
	"errors"

	"aether/cmd/aether/widget"
)

var (
	ErrVariableExists   = errors.New("variable already exists")
	ErrVariableNotFound = errors.New("variable not found")
	ErrAssetExists      = errors.New("asset already exists")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrInvalidName      = errors.New("invalid name")
	ErrNodeNotFound     = errors.New("node not found")
	ErrNotFreeform      = errors.New("parent is not a freeform layout")
	ErrUnknownTemplate  = errors.New("unknown template")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")

	// Re-exported so callers of the State API need not import widget to
	// match them.
	ErrNotBindable = widget.ErrNotBindable
	ErrNoEvents    = widget.ErrNoEvents
)
