package fuset

import (
	"sort"

	"github.com/k7f/ascetic/internal/cex"
)

// dsu is a disjoint-set index over dot identifiers, used to merge
// overlapping pieces bottom-up instead of chasing a recursive object
// graph.
type dsu struct {
	parent []int
	rank   []int
}

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *dsu) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *dsu) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}

// Florets decomposes the wedge set into its connected components. A
// wedge connects its tip with every arm; each component is returned as
// its own Fuset over the shared domain, ordered canonically by span.
//
// On a singular, thin, coherent fuset the components are exactly its
// florets.
func (f *Fuset) Florets() []*Fuset {
	if len(f.wedges) == 0 {
		return nil
	}
	d := newDSU(f.dom.Size())
	for _, w := range f.wedges {
		for _, arm := range w.Pit {
			d.union(int(w.Tip), int(arm))
		}
	}

	groups := make(map[int][]cex.Wedge)
	for _, w := range f.wedges {
		root := d.find(int(w.Tip))
		groups[root] = append(groups[root], w)
	}

	out := make([]*Fuset, 0, len(groups))
	for _, wedges := range groups {
		out = append(out, New(f.dom, wedges))
	}
	sort.Slice(out, func(i, j int) bool {
		return SpanLess(f.dom, out[i].Span(), out[j].Span())
	})
	return out
}

// SpanLess orders dot sequences lexicographically by dot name, the
// canonical order of firing-component listings.
func SpanLess(dom *cex.Domain, a, b []cex.DotID) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		na, nb := dom.Name(a[i]), dom.Name(b[i])
		if na != nb {
			return na < nb
		}
	}
	return len(a) < len(b)
}
