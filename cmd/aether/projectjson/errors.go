package projectjson

import "errors"

var (
	ErrUnknownType  = errors.New("unknown widget type")
	ErrDuplicateID  = errors.New("duplicate node id")
	ErrInvalidRoot  = errors.New("root must be a container")
	ErrSchema       = errors.New("document does not match schema")
	ErrNameMismatch = errors.New("registry key does not match name")
)
