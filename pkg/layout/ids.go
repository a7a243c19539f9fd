package layout

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// IDSource hands out container ids. Each layout run owns its source.
type IDSource interface {
	Next() string
}

// Scheme names the kind of ids src hands out, such as "uuid" or
// "sequence:n". Two sources with the same scheme yield interchangeable ids.
func Scheme(src IDSource) string {
	switch s := src.(type) {
	case nil:
		return ""
	case *Sequence:
		return "sequence:" + s.prefix
	case UUIDSource:
		return "uuid"
	default:
		return fmt.Sprintf("%T", src)
	}
}

// Sequence yields prefix1, prefix2, ... and is deterministic across runs.
type Sequence struct {
	prefix string
	n      int
}

// NewSequence creates a Sequence with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next id.
func (s *Sequence) Next() string {
	s.n++
	return s.prefix + strconv.Itoa(s.n)
}

// UUIDSource yields random version 4 UUIDs.
type UUIDSource struct{}

// NewUUIDSource creates a UUIDSource.
func NewUUIDSource() UUIDSource { return UUIDSource{} }

// Next returns a fresh UUID string.
func (UUIDSource) Next() string { return uuid.NewString() }
