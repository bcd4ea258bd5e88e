package sat

import (
	"github.com/go-air/gini/z"

	"github.com/k7f/ascetic/internal/cex"
)

// buildPortLink encodes the fuset with link variables over compatible
// sender/receiver pairs, plus one port selector per wedge. A pair is
// compatible when some fork of the sender carries the receiver and
// some join of the receiver carries the sender; incompatible contacts
// can never be part of a component and get no variable at all.
//
// Mutual support is not stated directly: it emerges from wedges
// sharing link variables. A fork selector forces exactly its pit's
// links on the sender side and forbids the sender's other links; a
// live link demands a selector on both of its ends.
func buildPortLink(dom *cex.Domain, wedges []cex.Wedge) *problem {
	type pair struct{ from, to cex.DotID }

	forksAt := make([][]int, dom.Size())
	joinsAt := make([][]int, dom.Size())
	for i, w := range wedges {
		if w.Polarity == cex.ForkWedge {
			forksAt[w.Tip] = append(forksAt[w.Tip], i)
		} else {
			joinsAt[w.Tip] = append(joinsAt[w.Tip], i)
		}
	}

	supported := func(from, to cex.DotID) bool {
		ok := false
		for _, fi := range forksAt[from] {
			if wedges[fi].HasArm(to) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
		for _, ji := range joinsAt[to] {
			if wedges[ji].HasArm(from) {
				return true
			}
		}
		return false
	}

	// Enumerate links in deterministic declaration order.
	linkVar := make(map[pair]z.Lit)
	var links []pair
	addLink := func(from, to cex.DotID) {
		pr := pair{from, to}
		if _, seen := linkVar[pr]; seen || !supported(from, to) {
			return
		}
		linkVar[pr] = z.Var(len(links) + 1).Pos()
		links = append(links, pr)
	}
	for _, w := range wedges {
		for _, arm := range w.Pit {
			if w.Polarity == cex.ForkWedge {
				addLink(w.Tip, arm)
			} else {
				addLink(arm, w.Tip)
			}
		}
	}

	nl := len(links)
	p := &problem{nvars: nl + len(wedges)}
	selLit := func(i int) z.Lit { return z.Var(nl + i + 1).Pos() }

	// Non-emptiness over links.
	if nl > 0 {
		all := make([]z.Lit, nl)
		for i, pr := range links {
			all[i] = linkVar[pr]
		}
		p.addClause(all...)
	} else {
		// No compatible contact at all: the instance is trivially
		// unsatisfiable.
		p.addClause()
	}

	// Selector shape: a selected wedge switches exactly its pit's
	// links on and its tip's other same-side links off.
	for i, w := range wedges {
		sel := selLit(i)
		for _, arm := range w.Pit {
			pr := pair{w.Tip, arm}
			if w.Polarity == cex.JoinWedge {
				pr = pair{arm, w.Tip}
			}
			lv, ok := linkVar[pr]
			if !ok {
				// An arm with no compatible link: the wedge can
				// never be selected.
				p.addClause(sel.Not())
				continue
			}
			p.addClause(sel.Not(), lv)
		}
		for _, pr := range links {
			mine := (w.Polarity == cex.ForkWedge && pr.from == w.Tip && !wedges[i].HasArm(pr.to)) ||
				(w.Polarity == cex.JoinWedge && pr.to == w.Tip && !wedges[i].HasArm(pr.from))
			if mine {
				p.addClause(sel.Not(), linkVar[pr].Not())
			}
		}
	}

	// A live link needs both of its ports.
	for _, pr := range links {
		lv := linkVar[pr]
		fromClause := []z.Lit{lv.Not()}
		for _, fi := range forksAt[pr.from] {
			if wedges[fi].HasArm(pr.to) {
				fromClause = append(fromClause, selLit(fi))
			}
		}
		p.addClause(fromClause...)

		toClause := []z.Lit{lv.Not()}
		for _, ji := range joinsAt[pr.to] {
			if wedges[ji].HasArm(pr.from) {
				toClause = append(toClause, selLit(ji))
			}
		}
		p.addClause(toClause...)
	}

	// Singularity and thinness over selectors.
	for d := 0; d < dom.Size(); d++ {
		atMostOne(p, selLit, forksAt[d])
		atMostOne(p, selLit, joinsAt[d])
		for _, fi := range forksAt[d] {
			for _, ji := range joinsAt[d] {
				p.addClause(selLit(fi).Not(), selLit(ji).Not())
			}
		}
	}

	p.decode = func(value func(z.Lit) bool) []cex.Wedge {
		var selected []cex.Wedge
		for i := range wedges {
			if value(selLit(i)) {
				selected = append(selected, wedges[i])
			}
		}
		return selected
	}
	return p
}
