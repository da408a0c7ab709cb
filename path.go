package ankimcp

import (
	"strconv"
	"strings"
)

// Segment is one step in a violation path: either an object key or an array
// index. Use Key or Index to construct values; the zero Segment is Key("").
type Segment struct {
	key   string
	index int
	isIdx bool
}

// Key returns a Segment naming an object member.
func Key(name string) Segment { return Segment{key: name} }

// Index returns a Segment addressing an array element.
func Index(i int) Segment { return Segment{index: i, isIdx: true} }

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.isIdx }

// KeyName returns the object key, or "" for an index segment.
func (s Segment) KeyName() string {
	if s.isIdx {
		return ""
	}
	return s.key
}

// ArrayIndex returns the array index, or -1 for a key segment.
func (s Segment) ArrayIndex() int {
	if !s.isIdx {
		return -1
	}
	return s.index
}

func (s Segment) String() string {
	if s.isIdx {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path locates a schema violation within a document, from the root down to
// the offending value. It lives only for the duration of one failed
// validation call.
type Path []Segment

// String joins the segments with "->". An empty path renders as "root" so the
// message always names a location.
func (p Path) String() string {
	if len(p) == 0 {
		return "root"
	}
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, "->")
}

// ContainsKeyBeforeEnd reports whether a Key(name) segment occurs anywhere
// before the final segment. A path that terminates exactly at name does not
// count: a violation on the key itself is structural, not nested content.
func (p Path) ContainsKeyBeforeEnd(name string) bool {
	for i, s := range p {
		if !s.isIdx && s.key == name && i < len(p)-1 {
			return true
		}
	}
	return false
}
