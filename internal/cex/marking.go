package cex

import (
	"fmt"
	"strconv"
	"strings"
)

// Marking is a token vector over a domain. Index by DotID.
type Marking []int64

// NewMarking returns the zero marking for a domain of the given size.
func NewMarking(size int) Marking {
	return make(Marking, size)
}

// Clone copies the marking. Passes never share marking storage.
func (m Marking) Clone() Marking {
	out := make(Marking, len(m))
	copy(out, m)
	return out
}

// Covers reports whether m dominates the threshold componentwise.
func (m Marking) Covers(threshold Marking) bool {
	for d, want := range threshold {
		if m[d] < want {
			return false
		}
	}
	return true
}

// Key is a compact canonical identity, used for reachable-set
// bookkeeping.
func (m Marking) Key() string {
	var b strings.Builder
	for i, n := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(n, 10))
	}
	return b.String()
}

// Format renders the nonzero components in canonical dot order, e.g.
// "{a: 6, b: 4}". The zero marking renders as "{}".
func (m Marking) Format(dom *Domain) string {
	dots := make([]DotID, 0, len(m))
	for d := range m {
		if m[d] != 0 {
			dots = append(dots, DotID(d))
		}
	}
	dom.SortDots(dots)
	parts := make([]string, len(dots))
	for i, d := range dots {
		parts[i] = fmt.Sprintf("%s: %d", dom.Name(d), m[d])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseMarking reads a "a=1,b=2" assignment list against a domain.
// Omitted dots are zero.
func ParseMarking(dom *Domain, s string) (Marking, error) {
	m := NewMarking(dom.Size())
	if strings.TrimSpace(s) == "" {
		return m, nil
	}
	for _, part := range strings.Split(s, ",") {
		name, value, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("malformed marking component %q", part)
		}
		id, ok := dom.Lookup(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown dot %q in marking", strings.TrimSpace(name))
		}
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("malformed token count %q for dot %s", value, dom.Name(id))
		}
		m[id] = n
	}
	return m, nil
}
