package sat

import (
	"github.com/go-air/gini/z"

	"github.com/k7f/ascetic/internal/cex"
)

// buildForkJoin encodes the fuset with one variable per declared
// wedge.
//
// Constraints, over wedge variables:
//   - some wedge is selected (non-emptiness);
//   - per dot, at most one fork and at most one join (singularity),
//     and never both (thinness);
//   - a selected fork demands, for each arm, a selected join at that
//     arm whose pit carries the tip, and symmetrically for joins
//     (mutual support).
func buildForkJoin(dom *cex.Domain, wedges []cex.Wedge) *problem {
	n := len(wedges)
	p := &problem{nvars: n}
	wedgeLit := func(i int) z.Lit { return z.Var(i + 1).Pos() }

	forksAt := make([][]int, dom.Size())
	joinsAt := make([][]int, dom.Size())
	for i, w := range wedges {
		if w.Polarity == cex.ForkWedge {
			forksAt[w.Tip] = append(forksAt[w.Tip], i)
		} else {
			joinsAt[w.Tip] = append(joinsAt[w.Tip], i)
		}
	}

	// Non-emptiness.
	all := make([]z.Lit, n)
	for i := range wedges {
		all[i] = wedgeLit(i)
	}
	p.addClause(all...)

	// Singularity and thinness, per dot.
	for d := 0; d < dom.Size(); d++ {
		atMostOne(p, wedgeLit, forksAt[d])
		atMostOne(p, wedgeLit, joinsAt[d])
		for _, fi := range forksAt[d] {
			for _, ji := range joinsAt[d] {
				p.addClause(wedgeLit(fi).Not(), wedgeLit(ji).Not())
			}
		}
	}

	// Mutual support.
	for i, w := range wedges {
		for _, arm := range w.Pit {
			var partners []int
			if w.Polarity == cex.ForkWedge {
				for _, ji := range joinsAt[arm] {
					if wedges[ji].HasArm(w.Tip) {
						partners = append(partners, ji)
					}
				}
			} else {
				for _, fi := range forksAt[arm] {
					if wedges[fi].HasArm(w.Tip) {
						partners = append(partners, fi)
					}
				}
			}
			clause := make([]z.Lit, 0, len(partners)+1)
			clause = append(clause, wedgeLit(i).Not())
			for _, pi := range partners {
				clause = append(clause, wedgeLit(pi))
			}
			p.addClause(clause...)
		}
	}

	p.decode = func(value func(z.Lit) bool) []cex.Wedge {
		var selected []cex.Wedge
		for i := range wedges {
			if value(wedgeLit(i)) {
				selected = append(selected, wedges[i])
			}
		}
		return selected
	}
	return p
}

func atMostOne(p *problem, lit func(int) z.Lit, idx []int) {
	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			p.addClause(lit(idx[i]).Not(), lit(idx[j]).Not())
		}
	}
}
