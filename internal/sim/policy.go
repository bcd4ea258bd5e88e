package sim

import (
	"fmt"
	"math/rand"
	"strings"
)

// Semantics governs how many enabled transitions fire per step.
type Semantics int

const (
	Sequential Semantics = iota
	Parallel
	Maximal
)

func (s Semantics) String() string {
	switch s {
	case Sequential:
		return "seq"
	case Parallel:
		return "par"
	default:
		return "max"
	}
}

// ParseSemantics accepts the flag spellings.
func ParseSemantics(s string) (Semantics, error) {
	switch strings.ToLower(s) {
	case "seq", "sequential":
		return Sequential, nil
	case "par", "parallel":
		return Parallel, nil
	case "max", "maximal":
		return Maximal, nil
	default:
		return 0, fmt.Errorf("unknown semantics %q", s)
	}
}

// Policy orders the enabled transitions for one step. The sequential
// chooser fires the first transition of the order; the parallel and
// maximal choosers grow their subsets along it. Policies are explicit:
// there is no hidden randomness anywhere else in a pass.
type Policy interface {
	// Order returns the preference order over the enabled transition
	// indices. Implementations may reorder in place.
	Order(enabled []int) []int
}

// FirstPolicy is the deterministic default: canonical transition
// order.
type FirstPolicy struct{}

func (FirstPolicy) Order(enabled []int) []int { return enabled }

// RandomPolicy shuffles with a private seeded source, so repeated
// passes explore different interleavings reproducibly.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy seeds a policy; passes derive distinct seeds from
// the configured base seed.
func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Order(enabled []int) []int {
	p.rng.Shuffle(len(enabled), func(i, j int) {
		enabled[i], enabled[j] = enabled[j], enabled[i]
	})
	return enabled
}

// PolicyKind selects a policy from configuration.
type PolicyKind int

const (
	PolicyFirst PolicyKind = iota
	PolicyRandom
	PolicyExhaustive
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyFirst:
		return "first"
	case PolicyRandom:
		return "random"
	default:
		return "exhaustive"
	}
}

// ParsePolicy accepts the flag spellings.
func ParsePolicy(s string) (PolicyKind, error) {
	switch strings.ToLower(s) {
	case "first", "deterministic":
		return PolicyFirst, nil
	case "random":
		return PolicyRandom, nil
	case "exhaustive":
		return PolicyExhaustive, nil
	default:
		return 0, fmt.Errorf("unknown selection policy %q", s)
	}
}
