package fuset

import (
	"github.com/k7f/ascetic/internal/cex"
)

// Fuset is a set of wedges over a fixed domain, with the arming
// relation precomputed. Immutable after New.
type Fuset struct {
	dom    *cex.Domain
	wedges []cex.Wedge

	forksAt [][]int // per dot, indexes into wedges
	joinsAt [][]int

	sends    []dotSet // sends[x]: arms of x's forks
	receives []dotSet // receives[y]: arms of y's joins
	sentTo   []dotSet // sentTo[y]: tips forking to y
	takenBy  []dotSet // takenBy[x]: tips joining from x
}

type dotSet map[cex.DotID]struct{}

func (s dotSet) has(d cex.DotID) bool {
	_, ok := s[d]
	return ok
}

func (s dotSet) add(d cex.DotID) {
	s[d] = struct{}{}
}

// New builds a fuset view of the wedges against the domain.
func New(dom *cex.Domain, wedges []cex.Wedge) *Fuset {
	n := dom.Size()
	f := &Fuset{
		dom:      dom,
		wedges:   wedges,
		forksAt:  make([][]int, n),
		joinsAt:  make([][]int, n),
		sends:    make([]dotSet, n),
		receives: make([]dotSet, n),
		sentTo:   make([]dotSet, n),
		takenBy:  make([]dotSet, n),
	}
	for d := 0; d < n; d++ {
		f.sends[d] = dotSet{}
		f.receives[d] = dotSet{}
		f.sentTo[d] = dotSet{}
		f.takenBy[d] = dotSet{}
	}
	for i, w := range wedges {
		switch w.Polarity {
		case cex.ForkWedge:
			f.forksAt[w.Tip] = append(f.forksAt[w.Tip], i)
			for _, arm := range w.Pit {
				f.sends[w.Tip].add(arm)
				f.sentTo[arm].add(w.Tip)
			}
		case cex.JoinWedge:
			f.joinsAt[w.Tip] = append(f.joinsAt[w.Tip], i)
			for _, arm := range w.Pit {
				f.receives[w.Tip].add(arm)
				f.takenBy[arm].add(w.Tip)
			}
		}
	}
	return f
}

// FromStructure views the full declared wedge set of a structure.
func FromStructure(s *cex.Structure) *Fuset {
	return New(s.Domain, s.Wedges)
}

// Domain returns the underlying domain.
func (f *Fuset) Domain() *cex.Domain { return f.dom }

// Wedges returns the wedge set. Callers must not mutate it.
func (f *Fuset) Wedges() []cex.Wedge { return f.wedges }

// reciprocated reports whether the flow x->y is declared from both
// sides: x forks to y and y joins from x.
func (f *Fuset) reciprocated(x, y cex.DotID) bool {
	return f.sends[x].has(y) && f.receives[y].has(x)
}

// PreSet returns the fork tips in canonical order.
func (f *Fuset) PreSet() []cex.DotID {
	return f.tips(f.forksAt)
}

// PostSet returns the join tips in canonical order.
func (f *Fuset) PostSet() []cex.DotID {
	return f.tips(f.joinsAt)
}

func (f *Fuset) tips(at [][]int) []cex.DotID {
	var out []cex.DotID
	for d := range at {
		if len(at[d]) > 0 {
			out = append(out, cex.DotID(d))
		}
	}
	f.dom.SortDots(out)
	return out
}

// UnderSet returns the union of fork pits (fork-armed dots).
func (f *Fuset) UnderSet() []cex.DotID {
	return f.collect(func(d cex.DotID) bool { return len(f.sentTo[d]) > 0 })
}

// OverSet returns the union of join pits (join-armed dots).
func (f *Fuset) OverSet() []cex.DotID {
	return f.collect(func(d cex.DotID) bool { return len(f.takenBy[d]) > 0 })
}

// Span returns every dot occurring in some wedge, as tip or arm.
func (f *Fuset) Span() []cex.DotID {
	return f.collect(f.inSpan)
}

// Interior returns the span dots that both tip a wedge and arm a
// wedge.
func (f *Fuset) Interior() []cex.DotID {
	return f.collect(f.interior)
}

// Frame returns the span dots outside the interior: tips that arm
// nothing and arms that tip nothing.
func (f *Fuset) Frame() []cex.DotID {
	return f.collect(func(d cex.DotID) bool { return f.inSpan(d) && !f.interior(d) })
}

// CoInterior returns the complement of the interior over the whole
// domain.
func (f *Fuset) CoInterior() []cex.DotID {
	return f.collect(func(d cex.DotID) bool { return !f.interior(d) })
}

func (f *Fuset) isTip(d cex.DotID) bool {
	return len(f.forksAt[d]) > 0 || len(f.joinsAt[d]) > 0
}

func (f *Fuset) isArm(d cex.DotID) bool {
	return len(f.sentTo[d]) > 0 || len(f.takenBy[d]) > 0
}

func (f *Fuset) inSpan(d cex.DotID) bool {
	return f.isTip(d) || f.isArm(d)
}

func (f *Fuset) interior(d cex.DotID) bool {
	return f.isTip(d) && f.isArm(d)
}

func (f *Fuset) collect(pred func(cex.DotID) bool) []cex.DotID {
	var out []cex.DotID
	for d := 0; d < f.dom.Size(); d++ {
		if pred(cex.DotID(d)) {
			out = append(out, cex.DotID(d))
		}
	}
	f.dom.SortDots(out)
	return out
}

// Star groups the wedges tipping one dot.
type Star struct {
	Dot    cex.DotID
	Forks  []cex.Wedge
	Joins  []cex.Wedge
}

// StarPartition partitions the wedge set by tip, in canonical dot
// order. Dots tipping nothing are omitted.
func (f *Fuset) StarPartition() []Star {
	var tips []cex.DotID
	for d := 0; d < f.dom.Size(); d++ {
		if f.isTip(cex.DotID(d)) {
			tips = append(tips, cex.DotID(d))
		}
	}
	f.dom.SortDots(tips)
	stars := make([]Star, 0, len(tips))
	for _, d := range tips {
		star := Star{Dot: d}
		for _, i := range f.forksAt[d] {
			star.Forks = append(star.Forks, f.wedges[i])
		}
		for _, i := range f.joinsAt[d] {
			star.Joins = append(star.Joins, f.wedges[i])
		}
		stars = append(stars, star)
	}
	return stars
}
