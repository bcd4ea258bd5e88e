// Package cex holds the domain model of cause-effect structures.
//
// The model is built once by the structure loader and is logically
// immutable afterward: dots, wedges, capacities, declared start markings
// and goal thresholds never change during analysis or simulation. All
// downstream passes read a Structure concurrently without locking.
//
// Value vocabulary:
//   - Dot: an atomic state variable, interned into a Domain.
//   - Weight: an extended integer over Z with two sentinels, Bottom
//     (absent) and Omega (infinite; inhibiting on the pre side,
//     exhibiting on the post side).
//   - Wedge: a fork (tip sends to its pit) or a join (tip receives from
//     its pit), each carrying one weight.
//   - Marking: a token vector over the domain, componentwise within
//     [0, capacity].
//
// Structural validity beyond plain shape (coherence, tightness,
// canonical weighting consistency) is the fuset package's business;
// cex only defines the value types and the StructuralError taxonomy
// those checks report with.
package cex
