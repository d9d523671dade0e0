package widget

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// ID identifies a node for the life of a project. IDs are never reused.
type ID = uuid.UUID

// End is the insertion index meaning "append after the last child".
const End = math.MaxInt

// NewID allocates a fresh node identifier.
func NewID() ID {
	return uuid.New()
}

// ParseID parses the canonical textual form of an ID.
func ParseID(s string) (ID, error) {
	return uuid.Parse(s)
}

// ShortID returns the first eight hex digits of id, enough to tell nodes
// apart in listings.
func ShortID(id ID) string {
	return id.String()[:8]
}

// Ident returns id in a form usable inside a Rust identifier.
func Ident(id ID) string {
	return strings.ReplaceAll(id.String(), "-", "_")
}
