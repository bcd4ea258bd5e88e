// Package fuset implements the structural engine over sets of wedges.
//
// A Fuset is an immutable view of a wedge set against a fixed domain.
// From it the engine derives the classical sets (pre, post, under,
// over, span, interior, frame, co-interior), classifies every dot into
// one cell of the 23-way partition table, evaluates the structural
// predicates (singular, thin, coherent, tight), groups wedges into
// per-tip stars, and decomposes the wedge set into its connected
// components (florets) with a disjoint-set index.
//
// Everything here runs in time polynomial in the number of declared
// wedges. The engine never enumerates the space of all possible fusets
// over the domain; only the declared structure and its florets are
// ever materialized.
//
// The arming relation is the central notion: dot y is fork-armed by x
// when some fork of x carries y in its pit, and join-armed by x when
// some join of y carries x. A pair relation is reciprocated when both
// hold. Coherence is reciprocation everywhere; a fork contact without
// the matching join makes the target a weak follower, a join arm with
// no matching fork is a misstip.
package fuset
