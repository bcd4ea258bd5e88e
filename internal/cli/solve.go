package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/k7f/ascetic/internal/cex"
	"github.com/k7f/ascetic/internal/sat"
)

type solveOptions struct {
	root     *RootOptions
	encoding string
	search   string
	timeout  time.Duration
}

func newSolveCommand(root *RootOptions) *cobra.Command {
	opts := &solveOptions{root: root}

	cmd := &cobra.Command{
		Use:   "solve PATHS...",
		Short: "Search a structure for firing components",
		Long: `solve loads the given structure files, merges them, and enumerates the
firing components of the result. With no component to report, the
structure is declared deadlocked.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&opts.encoding, "sat-encoding", "port-link", "SAT encoding (port-link or fork-join)")
	cmd.Flags().StringVar(&opts.search, "sat-search", "min", "search mode (min or all)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort the search after this duration")

	return cmd
}

func (o *solveOptions) run(ctx context.Context, paths []string) error {
	structure, result, err := o.solve(ctx, paths)
	if err != nil {
		return err
	}

	f := o.root.Formatter()
	if f.JSON() {
		return f.Success(solveResponse(structure.Name, result))
	}
	printSolveReport(f, structure, result)
	return nil
}

// solve runs the load-validate-search pipeline shared with the go
// command.
func (o *solveOptions) solve(ctx context.Context, paths []string) (*cex.Structure, *sat.Result, error) {
	encoding, err := sat.ParseEncoding(o.encoding)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid --sat-encoding", err)
	}
	search, err := sat.ParseSearch(o.search)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid --sat-search", err)
	}

	structure, err := loadStructures(paths)
	if err != nil {
		return nil, nil, err
	}
	if err := checkStructure(structure); err != nil {
		return nil, nil, err
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	o.root.Logger().Info("searching for firing components",
		"structure", structure.Name, "encoding", encoding.String(), "search", search.String())

	searcher := sat.NewSearcher(structure, encoding, search, o.root.Logger())
	result, err := searcher.Run(ctx)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "firing-component search failed", err)
	}
	return structure, result, nil
}

func printSolveReport(f *OutputFormatter, structure *cex.Structure, result *sat.Result) {
	if result.Deadlock != nil {
		fmt.Fprintln(f.Writer, "Structural deadlock.")
		if len(result.Deadlock.Blocking) > 0 {
			fmt.Fprintf(f.Writer, "Blocked by: %s\n", strings.Join(result.Deadlock.Blocking, " "))
		}
		return
	}
	fmt.Fprintln(f.Writer, "Firing components:")
	for i, c := range result.Components {
		fmt.Fprintf(f.Writer, "%4d. %s\n", i+1, c.Format(structure.Domain))
	}
	f.VerboseLog("examined %d models", result.Models)
}

func solveResponse(name string, result *sat.Result) map[string]interface{} {
	data := map[string]interface{}{
		"structure": name,
		"models":    result.Models,
		"exhausted": result.Exhausted,
	}
	if result.Deadlock != nil {
		data["deadlock"] = map[string]interface{}{
			"blocking": result.Deadlock.Blocking,
		}
		return data
	}
	comps := make([]string, len(result.Components))
	for i, c := range result.Components {
		comps[i] = c.Key()
	}
	data["components"] = comps
	return data
}
