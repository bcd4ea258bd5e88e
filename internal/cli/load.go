package cli

import (
	"fmt"
	"strings"

	"github.com/k7f/ascetic/internal/cex"
	"github.com/k7f/ascetic/internal/fuset"
)

// loadStructures reads every path and merges the definitions into one
// structure. Dots are unified by name; wedges, capacities, starts and
// goals accumulate.
func loadStructures(paths []string) (*cex.Structure, error) {
	if len(paths) == 0 {
		return nil, NewExitError(ExitCommandError, "no structure files given")
	}
	var merged *cex.Structure
	for _, path := range paths {
		s, err := cex.LoadFile(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot load %s", path), err)
		}
		if merged == nil {
			merged = s
		} else {
			merged.Merge(s)
		}
	}
	return merged, nil
}

// checkStructure runs structural validation and converts any findings
// into a single failure-level error.
func checkStructure(s *cex.Structure) error {
	errs := fuset.Validate(s)
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return NewExitError(ExitFailure, fmt.Sprintf("invalid structure %q:\n  %s",
		s.Name, strings.Join(lines, "\n  ")))
}
