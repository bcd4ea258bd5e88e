// Package sat turns a validated fuset into a boolean satisfiability
// problem, drives an external solver over it, and extracts the firing
// components (florets).
//
// Two interchangeable encodings exist. The fork-join encoding spends
// one variable per declared wedge; the port-link encoding represents
// the flow as link variables over sender/receiver pairs plus one
// selector per wedge, sharing links between wedges. Both express the
// same structural constraints (mutual support of every contact,
// per-dot singularity, thinness, non-emptiness), so the extracted
// floret sets agree; the round-trip tests pin that down.
//
// A satisfying assignment is a union of dot-disjoint florets. Models
// are decomposed into connected components, deduplicated, and the
// final set is sorted canonically (lexicographically by sorted span),
// which keeps output identical across runs and across encodings. The
// search enumerates models by re-solving under blocking clauses: all
// mode blocks each exact model, min mode blocks every superset of a
// model's positive part and therefore visits only subset-minimal
// models, ending in a normal exhaustion.
//
// Satisfiability itself is go-air/gini's job: this package owns CNF
// construction and model decoding only. Solving is CPU bound and runs
// under the caller's context; cancellation stops the solver promptly
// through its asynchronous handle. Unsatisfiability is a reportable
// structural deadlock, never an error; SolverFailure is reserved for
// solver malfunction and unsupported encodings.
package sat
