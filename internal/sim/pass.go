package sim

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/k7f/ascetic/internal/cex"
)

// HaltReason is the typed terminal condition of a pass. Every halt is
// a normal result.
type HaltReason int

const (
	GoalReached HaltReason = iota
	MaxSteps
	NoEnabledTransition
)

func (r HaltReason) String() string {
	switch r {
	case GoalReached:
		return "goal-reached"
	case MaxSteps:
		return "max-steps"
	default:
		return "no-enabled-transition"
	}
}

// DefaultMaxSteps bounds a pass when no explicit budget is set.
const DefaultMaxSteps = 1000

// Config is the immutable run configuration threaded from the driver.
type Config struct {
	Semantics Semantics
	Policy    PolicyKind
	Seed      int64
	MaxSteps  int
	NumPasses int
	// RecordTrace keeps per-step records on the pass results.
	RecordTrace bool
}

func (c Config) maxSteps() int {
	if c.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return c.MaxSteps
}

func (c Config) numPasses() int {
	if c.NumPasses <= 0 {
		return 1
	}
	return c.NumPasses
}

// StepRecord is one fired step of a trace.
type StepRecord struct {
	Step  int
	Fired []int // transition indices, ascending
	After cex.Marking
}

// PassResult summarizes one halted pass. The SimulationState behind it
// is gone; only the summary survives.
type PassResult struct {
	Token  string
	Start  cex.Marking
	Final  cex.Marking
	Steps  int
	Reason HaltReason
	Trace  []StepRecord // nil unless the run recorded traces

	visited []string // marking keys, for aggregation
}

// simulationState is the exclusively owned mutable state of one pass.
type simulationState struct {
	marking cex.Marking
	step    int
}

// pass phases; the loop below walks them explicitly.
type phase int

const (
	phaseIdle phase = iota
	phaseEvaluate
	phaseFire
	phaseApply
	phaseHalted
)

// Engine runs simulation passes over an immutable transition set.
type Engine struct {
	structure   *cex.Structure
	transitions []*Transition
	cfg         Config
	log         *slog.Logger
}

// NewEngine builds an engine. The structure and transitions must not
// be mutated afterward.
func NewEngine(s *cex.Structure, transitions []*Transition, cfg Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{structure: s, transitions: transitions, cfg: cfg, log: log}
}

// RunPass executes one pass from a start marking. passIndex salts the
// random policy's seed so repeated passes differ.
func (e *Engine) RunPass(start cex.Marking, passIndex int) *PassResult {
	var policy Policy = FirstPolicy{}
	if e.cfg.Policy == PolicyRandom {
		policy = NewRandomPolicy(e.cfg.Seed + int64(passIndex))
	}

	res := &PassResult{
		Token: uuid.Must(uuid.NewV7()).String(),
		Start: start.Clone(),
	}
	st := &simulationState{marking: start.Clone()}
	res.visited = append(res.visited, st.marking.Key())

	var fired []int
	for ph := phaseIdle; ph != phaseHalted; {
		switch ph {
		case phaseIdle:
			if e.goalSatisfied(st.marking) {
				res.Reason = GoalReached
				ph = phaseHalted
				break
			}
			ph = phaseEvaluate

		case phaseEvaluate:
			if st.step >= e.cfg.maxSteps() {
				res.Reason = MaxSteps
				ph = phaseHalted
				break
			}
			enabled := e.enabledSet(st.marking)
			if len(enabled) == 0 {
				res.Reason = NoEnabledTransition
				ph = phaseHalted
				break
			}
			fired = e.choose(enabled, st.marking, policy)
			ph = phaseFire

		case phaseFire:
			for _, i := range fired {
				e.transitions[i].Fire(st.marking)
			}
			ph = phaseApply

		case phaseApply:
			st.step++
			res.visited = append(res.visited, st.marking.Key())
			if e.cfg.RecordTrace {
				res.Trace = append(res.Trace, StepRecord{
					Step:  st.step,
					Fired: append([]int(nil), fired...),
					After: st.marking.Clone(),
				})
			}
			if e.goalSatisfied(st.marking) {
				res.Reason = GoalReached
				ph = phaseHalted
				break
			}
			ph = phaseEvaluate
		}
	}

	res.Final = st.marking
	res.Steps = st.step
	e.log.Debug("pass halted", "token", res.Token, "reason", res.Reason.String(), "steps", res.Steps)
	return res
}

// enabledSet returns the enabled transition indices in canonical
// order.
func (e *Engine) enabledSet(m cex.Marking) []int {
	var out []int
	for i, t := range e.transitions {
		if t.Enabled(m, e.structure.Capacity) {
			out = append(out, i)
		}
	}
	return out
}

// choose picks the transitions to fire this step under the configured
// semantics.
func (e *Engine) choose(enabled []int, m cex.Marking, policy Policy) []int {
	ordered := policy.Order(enabled)
	switch e.cfg.Semantics {
	case Sequential:
		return []int{ordered[0]}
	case Parallel:
		return e.conflictFree(ordered)
	default:
		chosen := e.conflictFree(ordered)
		return e.ensureMaximal(chosen, m)
	}
}

// conflictFree grows a conflict-free subset along the preference
// order.
func (e *Engine) conflictFree(ordered []int) []int {
	var chosen []int
	for _, i := range ordered {
		ok := true
		for _, j := range chosen {
			if e.transitions[i].ConflictsWith(e.transitions[j]) {
				ok = false
				break
			}
		}
		if ok {
			chosen = append(chosen, i)
		}
	}
	sortInts(chosen)
	return chosen
}

// ensureMaximal is the explicit maximality check: every enabled
// transition outside the set must conflict with something inside it.
// Greedy selection over a partial order of preferences can stop early;
// this pass cannot.
func (e *Engine) ensureMaximal(chosen []int, m cex.Marking) []int {
	for {
		added := false
		for i, t := range e.transitions {
			if !t.Enabled(m, e.structure.Capacity) || contains(chosen, i) {
				continue
			}
			ok := true
			for _, j := range chosen {
				if t.ConflictsWith(e.transitions[j]) {
					ok = false
					break
				}
			}
			if ok {
				chosen = append(chosen, i)
				added = true
			}
		}
		if !added {
			break
		}
	}
	sortInts(chosen)
	return chosen
}

func (e *Engine) goalSatisfied(m cex.Marking) bool {
	for _, g := range e.structure.Goals {
		if m.Covers(g) {
			return true
		}
	}
	return false
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

// RunAll executes the configured number of passes from every start
// marking on worker goroutines. Passes share only read-only state;
// results come back in deterministic (start, repetition) order.
func (e *Engine) RunAll(starts []cex.Marking) []*PassResult {
	total := len(starts) * e.cfg.numPasses()
	results := make([]*PassResult, total)

	var wg sync.WaitGroup
	for si, start := range starts {
		for p := 0; p < e.cfg.numPasses(); p++ {
			wg.Add(1)
			go func(slot, passIndex int, m cex.Marking) {
				defer wg.Done()
				results[slot] = e.RunPass(m, passIndex)
			}(si*e.cfg.numPasses()+p, si*e.cfg.numPasses()+p, start)
		}
	}
	wg.Wait()
	return results
}
