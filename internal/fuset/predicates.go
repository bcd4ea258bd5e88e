package fuset

import (
	"github.com/k7f/ascetic/internal/cex"
)

// IsSingular reports whether every dot tips at most one fork and at
// most one join.
func (f *Fuset) IsSingular() bool {
	for d := 0; d < f.dom.Size(); d++ {
		if len(f.forksAt[d]) > 1 || len(f.joinsAt[d]) > 1 {
			return false
		}
	}
	return true
}

// IsThin reports whether no dot tips both a fork and a join; in a thin
// fuset the producer and consumer sets are disjoint.
func (f *Fuset) IsThin() bool {
	for d := 0; d < f.dom.Size(); d++ {
		if len(f.forksAt[d]) > 0 && len(f.joinsAt[d]) > 0 {
			return false
		}
	}
	return true
}

// IsCoherent reports whether the arming relation is symmetric
// everywhere: every fork contact is met by a join and every join arm
// by a fork. Violations() lists the offenders.
func (f *Fuset) IsCoherent() bool {
	return len(f.Violations()) == 0
}

// Violation is one unreciprocated pair relation. When the fork side
// declared the flow the target is a weak follower; when only the join
// side did, the join carries a misstip.
type Violation struct {
	From, To cex.DotID
	ForkSide bool // true: fork without join; false: join without fork
}

// Violations returns every unreciprocated pair relation, ordered
// canonically.
func (f *Fuset) Violations() []Violation {
	var out []Violation
	for x := 0; x < f.dom.Size(); x++ {
		var arms []cex.DotID
		for y := range f.sends[x] {
			arms = append(arms, y)
		}
		f.dom.SortDots(arms)
		for _, y := range arms {
			if !f.receives[y].has(cex.DotID(x)) {
				out = append(out, Violation{From: cex.DotID(x), To: y, ForkSide: true})
			}
		}
		arms = arms[:0]
		for y := range f.receives[x] {
			arms = append(arms, y)
		}
		f.dom.SortDots(arms)
		for _, y := range arms {
			if !f.sends[y].has(cex.DotID(x)) {
				out = append(out, Violation{From: y, To: cex.DotID(x), ForkSide: false})
			}
		}
	}
	return out
}

// IsTight reports whether every fork tip belongs to every join pit and
// every join tip to every fork pit. Full bicliques are tight; most
// declared structures are not, and tightness is reported, never
// enforced.
func (f *Fuset) IsTight() bool {
	for _, w := range f.wedges {
		for _, v := range f.wedges {
			if w.Polarity == cex.ForkWedge && v.Polarity == cex.JoinWedge {
				if !v.HasArm(w.Tip) || !w.HasArm(v.Tip) {
					return false
				}
			}
		}
	}
	return true
}
