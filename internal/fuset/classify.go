package fuset

import (
	"github.com/k7f/ascetic/internal/cex"
)

// DotKind is one cell of the dot partition table. Every dot of the
// domain falls into exactly one of the 23 cells.
//
// The table combines a role, read off the tip/arm profile, with an
// agreement status, read off reciprocation of the dot's pair
// relations. A dot is strong when fork-arming and join-arming coincide
// for every neighbor, weak when they coincide for none, broken when
// the neighbors disagree among themselves.
//
// Roles with one active side (sources, sinks) carry a single status;
// internal dots carry one status per side; dots with passive contact
// on their tipless side (fed sources, tapped sinks) can never be
// strong, so they carry only the weak and broken cells; tipless dots
// (follower, feeder, relay) have a constant status and collapse to one
// cell each.
type DotKind int

const (
	DotIsolated DotKind = iota

	// Tipless dots under passive contact.
	DotFollower // fed by forks only, consumes nothing
	DotFeeder   // drained by joins only, produces nothing
	DotRelay    // fed and drained, tips nothing

	// Fork tip only, no incoming contact.
	DotSourceStrong
	DotSourceWeak
	DotSourceBroken

	// Fork tip only, fed by someone's fork.
	DotFedSourceWeak
	DotFedSourceBroken

	// Join tip only, no outgoing contact.
	DotSinkStrong
	DotSinkWeak
	DotSinkBroken

	// Join tip only, drained by someone's join.
	DotTappedSinkWeak
	DotTappedSinkBroken

	// Both tips; in-side status crossed with out-side status.
	DotInternalStrongStrong
	DotInternalStrongWeak
	DotInternalStrongBroken
	DotInternalWeakStrong
	DotInternalWeakWeak
	DotInternalWeakBroken
	DotInternalBrokenStrong
	DotInternalBrokenWeak
	DotInternalBrokenBroken
)

// NumDotKinds is the number of cells in the partition table.
const NumDotKinds = int(DotInternalBrokenBroken) + 1

var dotKindNames = [NumDotKinds]string{
	"isolated",
	"follower", "feeder", "relay",
	"source-strong", "source-weak", "source-broken",
	"fed-source-weak", "fed-source-broken",
	"sink-strong", "sink-weak", "sink-broken",
	"tapped-sink-weak", "tapped-sink-broken",
	"internal-strong-strong", "internal-strong-weak", "internal-strong-broken",
	"internal-weak-strong", "internal-weak-weak", "internal-weak-broken",
	"internal-broken-strong", "internal-broken-weak", "internal-broken-broken",
}

func (k DotKind) String() string {
	return dotKindNames[k]
}

// sideStatus is the per-side agreement ladder.
type sideStatus int

const (
	sideStrong sideStatus = iota
	sideWeak
	sideBroken
)

// Classify assigns every dot of the domain its partition cell.
func (f *Fuset) Classify() []DotKind {
	kinds := make([]DotKind, f.dom.Size())
	for d := 0; d < f.dom.Size(); d++ {
		kinds[d] = f.classify(cex.DotID(d))
	}
	return kinds
}

// ClassifyDot returns one dot's partition cell.
func (f *Fuset) ClassifyDot(d cex.DotID) DotKind {
	return f.classify(d)
}

func (f *Fuset) classify(d cex.DotID) DotKind {
	tipsFork := len(f.forksAt[d]) > 0
	tipsJoin := len(f.joinsAt[d]) > 0
	fedIn := len(f.sentTo[d]) > 0   // someone forks to d
	tapped := len(f.takenBy[d]) > 0 // someone joins from d

	switch {
	case !tipsFork && !tipsJoin:
		switch {
		case fedIn && tapped:
			return DotRelay
		case fedIn:
			return DotFollower
		case tapped:
			return DotFeeder
		default:
			return DotIsolated
		}

	case tipsFork && !tipsJoin:
		if fedIn {
			// The incoming contact cannot be reciprocated: any
			// agreement elsewhere makes the dot broken.
			if f.anyAgreement(d) {
				return DotFedSourceBroken
			}
			return DotFedSourceWeak
		}
		switch f.outStatus(d) {
		case sideStrong:
			return DotSourceStrong
		case sideWeak:
			return DotSourceWeak
		default:
			return DotSourceBroken
		}

	case tipsJoin && !tipsFork:
		if tapped {
			if f.anyAgreement(d) {
				return DotTappedSinkBroken
			}
			return DotTappedSinkWeak
		}
		switch f.inStatus(d) {
		case sideStrong:
			return DotSinkStrong
		case sideWeak:
			return DotSinkWeak
		default:
			return DotSinkBroken
		}

	default: // internal
		in, out := f.inStatus(d), f.outStatus(d)
		return DotInternalStrongStrong + DotKind(int(in)*3+int(out))
	}
}

// inNeighbors: dots related to d on the incoming side, from either
// declaration (their fork, or d's join).
func (f *Fuset) inNeighbors(d cex.DotID) dotSet {
	out := dotSet{}
	for y := range f.sentTo[d] {
		out.add(y)
	}
	for y := range f.receives[d] {
		out.add(y)
	}
	return out
}

func (f *Fuset) outNeighbors(d cex.DotID) dotSet {
	out := dotSet{}
	for y := range f.sends[d] {
		out.add(y)
	}
	for y := range f.takenBy[d] {
		out.add(y)
	}
	return out
}

func (f *Fuset) inStatus(d cex.DotID) sideStatus {
	return f.status(d, f.inNeighbors(d), func(y cex.DotID) bool { return f.reciprocated(y, d) })
}

func (f *Fuset) outStatus(d cex.DotID) sideStatus {
	return f.status(d, f.outNeighbors(d), func(y cex.DotID) bool { return f.reciprocated(d, y) })
}

func (f *Fuset) status(_ cex.DotID, neighbors dotSet, agree func(cex.DotID) bool) sideStatus {
	agreed, disagreed := 0, 0
	for y := range neighbors {
		if agree(y) {
			agreed++
		} else {
			disagreed++
		}
	}
	switch {
	case disagreed == 0:
		return sideStrong
	case agreed == 0:
		return sideWeak
	default:
		return sideBroken
	}
}

// anyAgreement reports whether any pair relation at d, in either
// direction, is reciprocated.
func (f *Fuset) anyAgreement(d cex.DotID) bool {
	for y := range f.inNeighbors(d) {
		if f.reciprocated(y, d) {
			return true
		}
	}
	for y := range f.outNeighbors(d) {
		if f.reciprocated(d, y) {
			return true
		}
	}
	return false
}
