package fuset

import (
	"strings"

	"github.com/k7f/ascetic/internal/cex"
)

// Validate runs the structural checks over a loaded structure: the
// per-wedge canonical-consistency rules (nonempty pit, declarable
// weight, scope bound), marking bounds, and coherence of the declared
// fuset. It returns every violation found; an empty result means the
// structure is fit for firing-component search.
func Validate(s *cex.Structure) []*cex.StructuralError {
	var errs []*cex.StructuralError

	for i := range s.Wedges {
		w := &s.Wedges[i]
		if len(w.Pit) == 0 {
			errs = append(errs, cex.NewStructuralError(cex.CodeEmptyPit, s.Name,
				"%s of dot %s has an empty pit", w.Polarity, s.Domain.Name(w.Tip)))
			continue
		}
		if !w.Weight.Valid() {
			errs = append(errs, cex.NewStructuralError(cex.CodeBadWeight, s.Name,
				"%s %s carries weight %s", w.Polarity, w.Format(s.Domain), w.Weight))
		}
		cap := s.CapacityOf(w.Tip)
		if w.Weight.IsFinite() && cap.IsFinite() && w.Weight > cap {
			errs = append(errs, cex.NewStructuralError(cex.CodeWeightBound, s.Name,
				"%s %s exceeds the capacity %s of its tip", w.Polarity, w.Format(s.Domain), cap))
		}
	}

	errs = append(errs, validateMarkings(s, s.Starts, "start")...)
	errs = append(errs, validateMarkings(s, s.Goals, "goal")...)

	f := FromStructure(s)
	if violations := f.Violations(); len(violations) > 0 {
		errs = append(errs, cex.NewStructuralError(cex.CodeIncoherent, s.Name,
			"arming relation is not symmetric: %s", formatViolations(s.Domain, violations)))
	}
	return errs
}

func validateMarkings(s *cex.Structure, markings []cex.Marking, what string) []*cex.StructuralError {
	var errs []*cex.StructuralError
	for _, m := range markings {
		for d, n := range m {
			cap := s.CapacityOf(cex.DotID(d))
			if cap.IsFinite() && n > int64(cap) {
				errs = append(errs, cex.NewStructuralError(cex.CodeMarkingBound, s.Name,
					"%s marking holds %d tokens on dot %s, capacity %s",
					what, n, s.Domain.Name(cex.DotID(d)), cap))
			}
		}
	}
	return errs
}

const maxReportedViolations = 5

func formatViolations(dom *cex.Domain, violations []Violation) string {
	var parts []string
	for i, v := range violations {
		if i == maxReportedViolations {
			parts = append(parts, "...")
			break
		}
		if v.ForkSide {
			parts = append(parts, dom.Name(v.From)+" forks to "+dom.Name(v.To)+" without a matching join")
		} else {
			parts = append(parts, dom.Name(v.To)+" joins from "+dom.Name(v.From)+" without a matching fork")
		}
	}
	return strings.Join(parts, "; ")
}
