package widget

import "errors"

var (
	ErrUnknownKind     = errors.New("unknown widget kind")
	ErrUnknownProperty = errors.New("unknown property")
	ErrInvalidValue    = errors.New("invalid property value")
	ErrNotBindable     = errors.New("property is not bindable")
	ErrNoEvents        = errors.New("widget has no events")
	ErrUnknownEvent    = errors.New("unknown event")
	ErrMalformedCode   = errors.New("malformed code")
)
