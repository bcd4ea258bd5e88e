package sim

import (
	"fmt"
	"strings"
)

// Summary aggregates halted passes: halting-reason counts, the size of
// the union of visited markings, and the step-count distribution.
type Summary struct {
	Passes           int
	Reasons          map[HaltReason]int
	DistinctMarkings int
	StepsMin         int
	StepsMax         int
	StepsMean        float64
}

// Summarize folds pass results into a summary.
func Summarize(results []*PassResult) Summary {
	s := Summary{Passes: len(results), Reasons: make(map[HaltReason]int)}
	seen := make(map[string]struct{})
	total := 0
	for i, r := range results {
		s.Reasons[r.Reason]++
		for _, key := range r.visited {
			seen[key] = struct{}{}
		}
		total += r.Steps
		if i == 0 || r.Steps < s.StepsMin {
			s.StepsMin = r.Steps
		}
		if r.Steps > s.StepsMax {
			s.StepsMax = r.Steps
		}
	}
	s.DistinctMarkings = len(seen)
	if s.Passes > 0 {
		s.StepsMean = float64(total) / float64(s.Passes)
	}
	return s
}

// Format renders the summary as a short report.
func (s Summary) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d pass(es): ", s.Passes)
	var parts []string
	for _, reason := range []HaltReason{GoalReached, MaxSteps, NoEnabledTransition} {
		if n := s.Reasons[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, reason))
		}
	}
	b.WriteString(strings.Join(parts, ", "))
	fmt.Fprintf(&b, "; steps min/mean/max %d/%.1f/%d; %d distinct marking(s)",
		s.StepsMin, s.StepsMean, s.StepsMax, s.DistinctMarkings)
	return b.String()
}
