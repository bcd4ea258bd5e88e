package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/k7f/ascetic/internal/cex"
	"github.com/k7f/ascetic/internal/fuset"
)

type validateOptions struct {
	root      *RootOptions
	abort     bool
	recursive bool
	syntax    bool
}

func newValidateCommand(root *RootOptions) *cobra.Command {
	opts := &validateOptions{root: root}

	cmd := &cobra.Command{
		Use:   "validate GLOB...",
		Short: "Check structure files for errors",
		Long: `validate parses every matching file and, unless --syntax is given,
checks the declared structure for well-formedness: nonempty pits, valid
weights within the tip capacities, coherent arming, and markings inside
the capacity bounds.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(args)
		},
	}

	cmd.Flags().BoolVar(&opts.abort, "abort", false, "stop at the first invalid file")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "descend into matched directories")
	cmd.Flags().BoolVar(&opts.syntax, "syntax", false, "check parsing only, skip structural validation")

	return cmd
}

func (o *validateOptions) run(patterns []string) error {
	files, err := o.expand(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, "no files match")
	}

	f := o.root.Formatter()
	type fileReport struct {
		Path   string   `json:"path"`
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors,omitempty"`
	}
	var reports []fileReport
	failed := 0

	for _, path := range files {
		findings := o.check(path)
		reports = append(reports, fileReport{Path: path, Valid: len(findings) == 0, Errors: findings})
		if len(findings) > 0 {
			failed++
			if !f.JSON() {
				fmt.Fprintf(f.Writer, "FAIL %s\n", path)
				for _, msg := range findings {
					fmt.Fprintf(f.Writer, "     %s\n", msg)
				}
			}
			if o.abort {
				break
			}
			continue
		}
		if !f.JSON() {
			fmt.Fprintf(f.Writer, "OK   %s\n", path)
		}
	}

	if f.JSON() {
		if err := f.Success(map[string]interface{}{
			"checked": len(reports),
			"failed":  failed,
			"files":   reports,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "%d file(s) checked, %d invalid.\n", len(reports), failed)
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid file(s)", failed))
	}
	return nil
}

func (o *validateOptions) check(path string) []string {
	s, err := cex.LoadFile(path)
	if err != nil {
		return []string{err.Error()}
	}
	if o.syntax {
		return nil
	}
	var findings []string
	for _, e := range fuset.Validate(s) {
		findings = append(findings, e.Error())
	}
	return findings
}

// expand resolves glob patterns, descending into matched directories
// when --recursive is set.
func (o *validateOptions) expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("bad pattern %q", pattern), err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				add(match)
				continue
			}
			if !o.recursive {
				continue
			}
			walkErr := filepath.WalkDir(match, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
					add(path)
				}
				return nil
			})
			if walkErr != nil {
				return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot walk %s", match), walkErr)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
