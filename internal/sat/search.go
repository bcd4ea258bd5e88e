package sat

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/k7f/ascetic/internal/cex"
	"github.com/k7f/ascetic/internal/fuset"
)

// pollInterval bounds how long a cancellation may go unnoticed while
// the solver is running.
const pollInterval = 25 * time.Millisecond

// Searcher drives the external solver over one structure.
type Searcher struct {
	structure *cex.Structure
	encoding  Encoding
	search    Search
	log       *slog.Logger
}

// NewSearcher prepares a search over a structure that already passed
// fuset validation.
func NewSearcher(s *cex.Structure, encoding Encoding, search Search, log *slog.Logger) *Searcher {
	if log == nil {
		log = slog.Default()
	}
	return &Searcher{structure: s, encoding: encoding, search: search, log: log}
}

// Run enumerates models until exhaustion, decomposing each into
// florets. The call blocks; it is CPU bound and meant to run off the
// driver's control path. Cancelling the context stops the solver
// promptly and surfaces the context error wrapped in a SolverFailure.
func (s *Searcher) Run(ctx context.Context) (*Result, error) {
	dom := s.structure.Domain
	var p *problem
	switch s.encoding {
	case PortLink:
		p = buildPortLink(dom, s.structure.Wedges)
	case ForkJoin:
		p = buildForkJoin(dom, s.structure.Wedges)
	default:
		return nil, &SolverFailure{Encoding: s.encoding, Reason: "unsupported encoding"}
	}

	g := gini.New()
	for _, clause := range p.clauses {
		for _, m := range clause {
			g.Add(m)
		}
		g.Add(z.LitNull)
	}
	s.log.Debug("sat instance built",
		"encoding", s.encoding.String(), "vars", p.nvars, "clauses", len(p.clauses))

	result := &Result{}
	seen := make(map[string]*FiringComponent)

	for {
		r, err := solveCancellable(ctx, g)
		if err != nil {
			return nil, &SolverFailure{Encoding: s.encoding, Reason: "solve interrupted", Err: err}
		}
		switch r {
		case -1: // unsatisfiable: enumeration is over
			if result.Models > 0 && s.search == MinSolutions {
				result.Exhausted = true
			}
			s.finish(result, seen)
			return result, nil
		case 1:
			result.Models++
		default:
			return nil, &SolverFailure{Encoding: s.encoding, Reason: "solver returned unknown"}
		}

		selected := p.decode(g.Value)
		for _, piece := range fuset.New(dom, selected).Florets() {
			c := newComponent(dom, piece)
			if _, dup := seen[c.Key()]; !dup {
				seen[c.Key()] = c
			}
		}
		s.block(g, p)
	}
}

// block forbids revisiting the current model. All mode blocks the
// exact assignment; min mode blocks every superset of its positive
// part, so only subset-minimal models are visited.
func (s *Searcher) block(g *gini.Gini, p *problem) {
	for i := 1; i <= p.nvars; i++ {
		m := z.Var(i).Pos()
		if g.Value(m) {
			g.Add(m.Not())
		} else if s.search == AllSolutions {
			g.Add(m)
		}
	}
	g.Add(z.LitNull)
}

func (s *Searcher) finish(result *Result, seen map[string]*FiringComponent) {
	dom := s.structure.Domain
	for _, c := range seen {
		result.Components = append(result.Components, c)
	}
	sort.Slice(result.Components, func(i, j int) bool {
		a, b := result.Components[i], result.Components[j]
		if fuset.SpanLess(dom, a.Span(), b.Span()) {
			return true
		}
		if fuset.SpanLess(dom, b.Span(), a.Span()) {
			return false
		}
		return a.Key() < b.Key()
	})
	if len(result.Components) == 0 {
		result.Deadlock = s.deadlock()
	}
	s.log.Info("firing-component search done",
		"components", len(result.Components), "models", result.Models,
		"deadlock", result.Deadlock != nil)
}

// deadlock names the blocking dots: tips and arms of wedges that lack
// reciprocal support. When the conflict is not local the whole span is
// reported.
func (s *Searcher) deadlock() *DeadlockReport {
	f := fuset.FromStructure(s.structure)
	blocking := map[cex.DotID]struct{}{}
	for _, v := range f.Violations() {
		blocking[v.From] = struct{}{}
		blocking[v.To] = struct{}{}
	}
	var dots []cex.DotID
	if len(blocking) > 0 {
		for d := range blocking {
			dots = append(dots, d)
		}
	} else {
		dots = f.Span()
	}
	s.structure.Domain.SortDots(dots)
	return &DeadlockReport{
		Structure: s.structure.Name,
		Blocking:  s.structure.Domain.DotNames(dots),
	}
}

// solveCancellable runs one solve on the asynchronous handle, polling
// for cancellation. Stop is called on cancellation so the solver halts
// promptly instead of finishing naturally.
func solveCancellable(ctx context.Context, g *gini.Gini) (int, error) {
	h := g.GoSolve()
	for {
		select {
		case <-ctx.Done():
			h.Stop()
			return 0, ctx.Err()
		default:
		}
		if r := h.Try(pollInterval); r != 0 {
			return r, nil
		}
	}
}
