package sat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-air/gini/z"

	"github.com/k7f/ascetic/internal/cex"
)

// Encoding selects how pits and tips are represented to the solver.
type Encoding int

const (
	// PortLink: link variables over sender/receiver pairs plus one
	// selector per wedge.
	PortLink Encoding = iota
	// ForkJoin: one variable per declared wedge.
	ForkJoin
)

func (e Encoding) String() string {
	switch e {
	case PortLink:
		return "port-link"
	case ForkJoin:
		return "fork-join"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// ParseEncoding accepts the flag spellings.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "pl", "port-link":
		return PortLink, nil
	case "fj", "fork-join":
		return ForkJoin, nil
	default:
		return 0, fmt.Errorf("unknown sat encoding %q", s)
	}
}

// Search selects the model-enumeration mode. Both modes yield the same
// canonical floret set.
type Search int

const (
	// MinSolutions visits only subset-minimal models.
	MinSolutions Search = iota
	// AllSolutions visits every model.
	AllSolutions
)

func (s Search) String() string {
	if s == MinSolutions {
		return "min"
	}
	return "all"
}

// ParseSearch accepts the flag spellings.
func ParseSearch(s string) (Search, error) {
	switch strings.ToLower(s) {
	case "min":
		return MinSolutions, nil
	case "all":
		return AllSolutions, nil
	default:
		return 0, fmt.Errorf("unknown sat search mode %q", s)
	}
}

// SolverFailure is fatal: the solver malfunctioned or the requested
// encoding is unsupported. Solver-reported unsatisfiability is never a
// SolverFailure; it surfaces as a DeadlockReport.
type SolverFailure struct {
	Encoding Encoding
	Reason   string
	Err      error
}

func (e *SolverFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("SOLVER_FAILURE: %s (encoding=%s): %v", e.Reason, e.Encoding, e.Err)
	}
	return fmt.Sprintf("SOLVER_FAILURE: %s (encoding=%s)", e.Reason, e.Encoding)
}

func (e *SolverFailure) Unwrap() error { return e.Err }

// IsSolverFailure reports whether err is (or wraps) a SolverFailure.
func IsSolverFailure(err error) bool {
	var sf *SolverFailure
	return errors.As(err, &sf)
}

// DeadlockReport is the normal outcome of a search that found no
// firing component: the structure is deadlocked, and the named dots
// block it.
type DeadlockReport struct {
	Structure string
	Blocking  []string // dot names, canonical order
}

func (r *DeadlockReport) String() string {
	if len(r.Blocking) == 0 {
		return "structural deadlock"
	}
	return "structural deadlock, blocking dots: " + strings.Join(r.Blocking, " ")
}

// Result is the outcome of a firing-component search.
type Result struct {
	// Components in canonical order; empty on deadlock.
	Components []*FiringComponent
	// Deadlock is set when no component exists.
	Deadlock *DeadlockReport
	// Exhausted marks the normal end of a min-mode enumeration after
	// at least one solution.
	Exhausted bool
	// Models counts the satisfying assignments examined; encodings
	// may disagree here even though the component sets are equal.
	Models int
}

// problem is one encoded instance: CNF clauses plus a decoder mapping
// a model back to the selected wedges.
type problem struct {
	nvars   int
	clauses [][]z.Lit
	decode  func(value func(z.Lit) bool) []cex.Wedge
}

func (p *problem) addClause(lits ...z.Lit) {
	p.clauses = append(p.clauses, lits)
}
