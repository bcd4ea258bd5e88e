package cex

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Weight is an extended integer: a finite nonnegative count, Bottom
// (absent) or Omega (infinite). On a fork Omega means inhibition (the
// tip must hold zero tokens), on a join it means exhibition (the tip
// must hold a nonzero count); in both cases firing moves no tokens.
type Weight int64

const (
	// Bottom marks an absent weight. It is the identity of Add and
	// absorbs in Mul.
	Bottom Weight = math.MinInt64

	// Omega is the infinite weight. It saturates Add and saturates
	// Mul except against zero.
	Omega Weight = math.MaxInt64
)

// IsBottom reports whether w is absent.
func (w Weight) IsBottom() bool { return w == Bottom }

// IsOmega reports whether w is infinite.
func (w Weight) IsOmega() bool { return w == Omega }

// IsFinite reports whether w is a plain integer.
func (w Weight) IsFinite() bool { return w != Bottom && w != Omega }

// Valid reports whether w is usable as a declared wedge weight: a
// nonnegative integer or Omega. Bottom is not declarable, it only
// arises as the absence of a projection.
func (w Weight) Valid() bool {
	return w == Omega || (w.IsFinite() && w >= 0)
}

// Add follows the extended-integer sum: Bottom is the identity and
// Omega saturates.
func (w Weight) Add(v Weight) Weight {
	switch {
	case w == Bottom:
		return v
	case v == Bottom:
		return w
	case w == Omega || v == Omega:
		return Omega
	default:
		return w + v
	}
}

// Mul follows the extended-integer product: Bottom absorbs, Omega
// saturates except against zero.
func (w Weight) Mul(v Weight) Weight {
	switch {
	case w == Bottom || v == Bottom:
		return Bottom
	case w == 0 || v == 0:
		return 0
	case w == Omega || v == Omega:
		return Omega
	default:
		return w * v
	}
}

func (w Weight) String() string {
	switch w {
	case Bottom:
		return "_"
	case Omega:
		return "ω"
	default:
		return fmt.Sprintf("%d", int64(w))
	}
}

// ParseWeight reads a declared weight: a nonnegative integer, or one
// of "omega", "ω", "inf" for Omega.
func ParseWeight(s string) (Weight, error) {
	switch s {
	case "omega", "ω", "inf":
		return Omega, nil
	}
	var n int64
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return Bottom, fmt.Errorf("malformed weight %q", s)
	}
	w := Weight(n)
	if !w.Valid() {
		return Bottom, fmt.Errorf("negative weight %d", n)
	}
	return w, nil
}

// UnmarshalYAML accepts either a bare integer or an Omega spelling.
func (w *Weight) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		v := Weight(n)
		if !v.Valid() {
			return fmt.Errorf("negative weight %d", n)
		}
		*w = v
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("malformed weight node")
	}
	v, err := ParseWeight(s)
	if err != nil {
		return err
	}
	*w = v
	return nil
}
