package sat

import (
	"strings"

	"github.com/k7f/ascetic/internal/cex"
	"github.com/k7f/ascetic/internal/fuset"
)

// FiringComponent is one floret paired with its weighting: a minimal,
// connected, singular, thin fuset, the structural unit that becomes a
// simulated transition. Immutable.
type FiringComponent struct {
	Forks []cex.Wedge // sorted by tip name
	Joins []cex.Wedge // sorted by tip name

	span []cex.DotID
	key  string
}

// newComponent builds a component from the wedges of one connected
// piece of a solver model.
func newComponent(dom *cex.Domain, piece *fuset.Fuset) *FiringComponent {
	c := &FiringComponent{span: piece.Span()}
	for _, w := range piece.Wedges() {
		if w.Polarity == cex.ForkWedge {
			c.Forks = append(c.Forks, w)
		} else {
			c.Joins = append(c.Joins, w)
		}
	}
	sortByTip(dom, c.Forks)
	sortByTip(dom, c.Joins)

	var b strings.Builder
	b.WriteString(strings.Join(dom.DotNames(c.span), ","))
	b.WriteByte('|')
	b.WriteString(c.Format(dom))
	c.key = b.String()
	return c
}

func sortByTip(dom *cex.Domain, wedges []cex.Wedge) {
	for i := 1; i < len(wedges); i++ {
		for j := i; j > 0 && dom.Less(wedges[j].Tip, wedges[j-1].Tip); j-- {
			wedges[j], wedges[j-1] = wedges[j-1], wedges[j]
		}
	}
}

// Span returns the component's dots in canonical order.
func (c *FiringComponent) Span() []cex.DotID { return c.span }

// PreSet returns the fork tips (producers) in canonical order.
func (c *FiringComponent) PreSet() []cex.DotID {
	out := make([]cex.DotID, len(c.Forks))
	for i, w := range c.Forks {
		out[i] = w.Tip
	}
	return out
}

// PostSet returns the join tips (consumers) in canonical order.
func (c *FiringComponent) PostSet() []cex.DotID {
	out := make([]cex.DotID, len(c.Joins))
	for i, w := range c.Joins {
		out[i] = w.Tip
	}
	return out
}

// PreWeight returns the weight of the dot's fork in this component,
// Bottom when the dot is not a producer here.
func (c *FiringComponent) PreWeight(d cex.DotID) cex.Weight {
	return wedgeWeight(c.Forks, d)
}

// PostWeight returns the weight of the dot's join in this component,
// Bottom when the dot is not a consumer here.
func (c *FiringComponent) PostWeight(d cex.DotID) cex.Weight {
	return wedgeWeight(c.Joins, d)
}

func wedgeWeight(wedges []cex.Wedge, d cex.DotID) cex.Weight {
	for _, w := range wedges {
		if w.Tip == d {
			return w.Weight
		}
	}
	return cex.Bottom
}

// Format renders the component as its forks against its joins, e.g.
// "{a:(x y), b:(x)} => {x:(a b), y:(a)}".
func (c *FiringComponent) Format(dom *cex.Domain) string {
	return "{" + formatWedges(dom, c.Forks) + "} => {" + formatWedges(dom, c.Joins) + "}"
}

func formatWedges(dom *cex.Domain, wedges []cex.Wedge) string {
	parts := make([]string, len(wedges))
	for i := range wedges {
		parts[i] = wedges[i].Format(dom)
	}
	return strings.Join(parts, ", ")
}

// Key is the canonical identity of the component, shared across
// encodings.
func (c *FiringComponent) Key() string { return c.key }
