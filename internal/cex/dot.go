package cex

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// DotID is an index into a Domain. IDs are assigned in declaration
// order and are only meaningful relative to their Domain.
type DotID int32

// Domain interns dot names. Names are NFC-normalized on entry so that
// canonical ordering and equality are byte-stable regardless of how the
// source file encoded them.
type Domain struct {
	names []string
	index map[string]DotID
}

// NewDomain creates an empty domain.
func NewDomain() *Domain {
	return &Domain{index: make(map[string]DotID)}
}

// Add interns a dot name and returns its ID. Adding an existing name
// returns the previously assigned ID.
func (d *Domain) Add(name string) DotID {
	name = norm.NFC.String(name)
	if id, ok := d.index[name]; ok {
		return id
	}
	id := DotID(len(d.names))
	d.names = append(d.names, name)
	d.index[name] = id
	return id
}

// Lookup resolves a dot name without interning it.
func (d *Domain) Lookup(name string) (DotID, bool) {
	id, ok := d.index[norm.NFC.String(name)]
	return id, ok
}

// Name returns the interned name of a dot.
func (d *Domain) Name(id DotID) string {
	return d.names[id]
}

// Size returns the number of dots in the domain.
func (d *Domain) Size() int {
	return len(d.names)
}

// Less orders dots by name, the canonical order used everywhere
// output determinism matters.
func (d *Domain) Less(a, b DotID) bool {
	return d.names[a] < d.names[b]
}

// SortDots sorts a slice of dots in place into canonical name order.
func (d *Domain) SortDots(dots []DotID) {
	sort.Slice(dots, func(i, j int) bool { return d.Less(dots[i], dots[j]) })
}

// DotNames maps a dot slice to its names, preserving order.
func (d *Domain) DotNames(dots []DotID) []string {
	names := make([]string, len(dots))
	for i, id := range dots {
		names[i] = d.names[id]
	}
	return names
}
