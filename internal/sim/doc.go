// Package sim executes firing components over markings.
//
// A Transition pairs one firing component with its weighting
// projections (pre-set, post-set, inhibitors, exhibitors). The Engine
// runs passes: each pass owns a private SimulationState (marking plus
// step counter), walks the Idle -> EvaluateEnabled -> Fire -> Apply
// loop and halts with a typed reason (goal reached, step budget spent,
// or no enabled transition). Halting is always a result value, never
// an error; the only error surface is transition construction, which
// rejects weightings violating canonical consistency.
//
// Three concurrency semantics govern one step:
//   - sequential: exactly one enabled transition fires, chosen by the
//     selection policy;
//   - parallel: a conflict-free subset of the enabled transitions
//     fires together (two transitions conflict when their spans share
//     a dot);
//   - maximal: a maximal conflict-free subset fires, with an explicit
//     maximality check after selection rather than trust in the greedy
//     pick.
//
// Passes are independent: they share only the immutable structure and
// transition set, which they read without synchronization, and may run
// on separate worker goroutines. Deterministic behavior comes from the
// default first-enabled policy; the seeded random policy makes
// repeated passes meaningful; the exhaustive explorer branches over
// every sequential choice instead of picking one.
package sim
