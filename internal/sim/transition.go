package sim

import (
	"github.com/k7f/ascetic/internal/cex"
	"github.com/k7f/ascetic/internal/sat"
)

// Arm is one weighted end of a transition.
type Arm struct {
	Dot    cex.DotID
	Weight cex.Weight
}

// Transition is a firing component ready to execute: the weighting is
// projected onto pre and post arms once, at construction. Immutable;
// read concurrently by every pass.
type Transition struct {
	Index     int
	Component *sat.FiringComponent

	Pre  []Arm // canonical dot order; Omega weight marks an inhibitor
	Post []Arm // canonical dot order; Omega weight marks an exhibitor

	span map[cex.DotID]struct{}
}

// NewTransitions builds the transition set from searched firing
// components, enforcing the canonical-consistency predicate per
// (transition, dot): the pre- and post-weight product must be Bottom
// or zero and their sum a nonnegative integer, Bottom, or Omega.
func NewTransitions(s *cex.Structure, comps []*sat.FiringComponent) ([]*Transition, error) {
	out := make([]*Transition, 0, len(comps))
	for i, c := range comps {
		t := &Transition{Index: i, Component: c, span: make(map[cex.DotID]struct{})}
		for _, d := range c.Span() {
			t.span[d] = struct{}{}
			pre, post := c.PreWeight(d), c.PostWeight(d)
			product := pre.Mul(post)
			if !(product.IsBottom() || product == 0) {
				return nil, cex.NewStructuralError(cex.CodeNonzeroProduct, s.Name,
					"dot %s is both consumed (%s) and produced (%s) by one firing component",
					s.Domain.Name(d), pre, post)
			}
			if sum := pre.Add(post); sum.IsFinite() && sum < 0 {
				return nil, cex.NewStructuralError(cex.CodeBadWeight, s.Name,
					"weights of dot %s sum to %s", s.Domain.Name(d), sum)
			}
			if !pre.IsBottom() {
				t.Pre = append(t.Pre, Arm{Dot: d, Weight: pre})
			}
			if !post.IsBottom() {
				t.Post = append(t.Post, Arm{Dot: d, Weight: post})
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// Enabled evaluates the enablement test under a marking: inhibitors
// demand an empty dot, every other pre arm at least max(weight, 1)
// tokens; exhibitors demand a nonempty dot, every other post arm
// enough remaining capacity.
func (t *Transition) Enabled(m cex.Marking, capacity []cex.Weight) bool {
	for _, a := range t.Pre {
		if a.Weight.IsOmega() {
			if m[a.Dot] != 0 {
				return false
			}
			continue
		}
		need := int64(a.Weight)
		if need < 1 {
			need = 1
		}
		if m[a.Dot] < need {
			return false
		}
	}
	for _, a := range t.Post {
		if a.Weight.IsOmega() {
			if m[a.Dot] == 0 {
				return false
			}
			continue
		}
		if c := capacity[a.Dot]; c.IsFinite() && int64(c)-m[a.Dot] < int64(a.Weight) {
			return false
		}
	}
	return true
}

// Fire applies the step update in place. Dots whose pre- and
// post-weight sum to Omega (pure inhibit or exhibit) are left
// untouched; everything else moves by post minus pre.
func (t *Transition) Fire(m cex.Marking) {
	for _, a := range t.Pre {
		if !a.Weight.IsOmega() {
			m[a.Dot] -= int64(a.Weight)
		}
	}
	for _, a := range t.Post {
		if !a.Weight.IsOmega() {
			m[a.Dot] += int64(a.Weight)
		}
	}
}

// ConflictsWith reports whether the two transitions share a dot.
func (t *Transition) ConflictsWith(other *Transition) bool {
	a, b := t, other
	if len(b.span) < len(a.span) {
		a, b = b, a
	}
	for d := range a.span {
		if _, ok := b.span[d]; ok {
			return true
		}
	}
	return false
}

// Format renders the transition as its firing component.
func (t *Transition) Format(dom *cex.Domain) string {
	return t.Component.Format(dom)
}
