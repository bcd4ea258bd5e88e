package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/k7f/ascetic/internal/cex"
	"github.com/k7f/ascetic/internal/sim"
	"github.com/k7f/ascetic/internal/trace"
)

type goOptions struct {
	solve *solveOptions

	from      []string
	goal      []string
	semantics string
	policy    string
	seed      int64
	maxSteps  int
	numPasses int
	traceDB   string
}

func newGoCommand(root *RootOptions) *cobra.Command {
	opts := &goOptions{solve: &solveOptions{root: root}}

	cmd := &cobra.Command{
		Use:   "go PATHS...",
		Short: "Run token-game passes over a structure",
		Long: `go searches the given structure for firing components, turns them into
transitions, and runs simulation passes until a goal is reached or the
step budget runs out.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.solve.encoding, "sat-encoding", "port-link", "SAT encoding (port-link or fork-join)")
	cmd.Flags().StringVar(&opts.solve.search, "sat-search", "min", "search mode (min or all)")
	cmd.Flags().DurationVar(&opts.solve.timeout, "timeout", 0, "abort the search after this duration")
	cmd.Flags().StringArrayVar(&opts.from, "from", nil, "start marking, e.g. \"a=6,b=4\" (repeatable; overrides the declared starts)")
	cmd.Flags().StringArrayVar(&opts.goal, "goal", nil, "goal threshold, e.g. \"g=2\" (repeatable; overrides the declared goals)")
	cmd.Flags().StringVar(&opts.semantics, "semantics", "seq", "firing semantics (seq, par or max)")
	cmd.Flags().StringVar(&opts.policy, "policy", "first", "firing policy (first, random or exhaustive)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for the random policy")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", sim.DefaultMaxSteps, "step budget per pass")
	cmd.Flags().IntVar(&opts.numPasses, "num-passes", 1, "passes per start marking")
	cmd.Flags().StringVar(&opts.traceDB, "trace", "", "record pass traces into this sqlite database")

	return cmd
}

func (o *goOptions) run(cmd *cobra.Command, paths []string) error {
	semantics, err := sim.ParseSemantics(o.semantics)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --semantics", err)
	}
	policy, err := sim.ParsePolicy(o.policy)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --policy", err)
	}

	structure, result, err := o.solve.solve(cmd.Context(), paths)
	if err != nil {
		return err
	}
	f := o.solve.root.Formatter()
	if result.Deadlock != nil {
		if f.JSON() {
			return f.Success(solveResponse(structure.Name, result))
		}
		printSolveReport(f, structure, result)
		return NewExitError(ExitFailure, result.Deadlock.String())
	}

	starts, err := o.startMarkings(structure)
	if err != nil {
		return err
	}
	if err := o.applyGoals(structure); err != nil {
		return err
	}

	transitions, err := sim.NewTransitions(structure, result.Components)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot build transitions", err)
	}

	cfg := sim.Config{
		Semantics:   semantics,
		Policy:      policy,
		Seed:        o.seed,
		MaxSteps:    o.maxSteps,
		NumPasses:   o.numPasses,
		RecordTrace: o.traceDB != "" || (!f.JSON() && o.numPasses <= 1 && len(starts) == 1),
	}
	engine := sim.NewEngine(structure, transitions, cfg, o.solve.root.Logger())

	if policy == sim.PolicyExhaustive {
		return o.explore(engine, starts)
	}

	results := engine.RunAll(starts)

	if o.traceDB != "" {
		if err := o.record(structure, cfg, results); err != nil {
			return err
		}
	}

	if f.JSON() {
		return f.Success(goResponse(structure, results))
	}
	o.printPasses(structure, transitions, results)
	return nil
}

// startMarkings resolves the --from overrides, falling back to the
// declared starts.
func (o *goOptions) startMarkings(s *cex.Structure) ([]cex.Marking, error) {
	if len(o.from) == 0 {
		if len(s.Starts) == 0 {
			return nil, NewExitError(ExitCommandError,
				"no start marking: declare one in the structure or pass --from")
		}
		return s.Starts, nil
	}
	starts := make([]cex.Marking, 0, len(o.from))
	for _, spec := range o.from {
		m, err := cex.ParseMarking(s.Domain, spec)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --from", err)
		}
		starts = append(starts, m)
	}
	return starts, nil
}

func (o *goOptions) applyGoals(s *cex.Structure) error {
	if len(o.goal) == 0 {
		return nil
	}
	goals := make([]cex.Marking, 0, len(o.goal))
	for _, spec := range o.goal {
		m, err := cex.ParseMarking(s.Domain, spec)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --goal", err)
		}
		goals = append(goals, m)
	}
	s.Goals = goals
	return nil
}

func (o *goOptions) printPasses(s *cex.Structure, transitions []*sim.Transition, results []*sim.PassResult) {
	f := o.solve.root.Formatter()
	for _, res := range results {
		fmt.Fprintf(f.Writer, "Go from %s\n", res.Start.Format(s.Domain))
		for _, step := range res.Trace {
			for _, ti := range step.Fired {
				f.VerboseLog("step %d fires %s", step.Step, transitions[ti].Format(s.Domain))
			}
			fmt.Fprintf(f.Writer, "=> %s\n", step.After.Format(s.Domain))
		}
		if len(res.Trace) == 0 && res.Steps > 0 {
			fmt.Fprintf(f.Writer, "=> %s\n", res.Final.Format(s.Domain))
		}
		if res.Reason == sim.NoEnabledTransition {
			fmt.Fprintf(f.Writer, "Deadlock after %d steps.\n", res.Steps)
		} else {
			fmt.Fprintf(f.Writer, "Done after %d steps (%s).\n", res.Steps, res.Reason)
		}
	}
	if len(results) > 1 {
		fmt.Fprintln(f.Writer, sim.Summarize(results).Format())
	}
}

func (o *goOptions) explore(engine *sim.Engine, starts []cex.Marking) error {
	f := o.solve.root.Formatter()
	res := engine.Explore(starts[0])
	if f.JSON() {
		halts := make(map[string]int, len(res.Halts))
		for reason, n := range res.Halts {
			halts[reason.String()] = n
		}
		return f.Success(map[string]interface{}{
			"reachable":     res.Reachable,
			"halts":         halts,
			"goal_markings": res.GoalMarkings,
		})
	}
	fmt.Fprintf(f.Writer, "Explored %d reachable markings.\n", res.Reachable)
	for _, reason := range []sim.HaltReason{sim.GoalReached, sim.MaxSteps, sim.NoEnabledTransition} {
		if n := res.Halts[reason]; n > 0 {
			fmt.Fprintf(f.Writer, "  %d terminal branch(es): %s\n", n, reason)
		}
	}
	if len(res.GoalMarkings) > 0 {
		fmt.Fprintf(f.Writer, "Goal markings: %d\n", len(res.GoalMarkings))
	}
	return nil
}

func (o *goOptions) record(s *cex.Structure, cfg sim.Config, results []*sim.PassResult) error {
	store, err := trace.Open(o.traceDB)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot open trace database", err)
	}
	defer store.Close()
	for _, res := range results {
		if err := store.RecordPass(s, cfg, res); err != nil {
			return WrapExitError(ExitFailure, "cannot record trace", err)
		}
	}
	return nil
}

func goResponse(s *cex.Structure, results []*sim.PassResult) map[string]interface{} {
	passes := make([]map[string]interface{}, len(results))
	for i, res := range results {
		passes[i] = map[string]interface{}{
			"token":  res.Token,
			"start":  res.Start.Format(s.Domain),
			"final":  res.Final.Format(s.Domain),
			"steps":  res.Steps,
			"reason": res.Reason.String(),
		}
	}
	summary := sim.Summarize(results)
	return map[string]interface{}{
		"structure": s.Name,
		"passes":    passes,
		"summary": map[string]interface{}{
			"distinct_markings": summary.DistinctMarkings,
			"steps_min":         summary.StepsMin,
			"steps_max":         summary.StepsMax,
			"steps_mean":        summary.StepsMean,
		},
	}
}
