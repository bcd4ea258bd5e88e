package cex

import (
	"fmt"
	"strings"
)

// Polarity distinguishes forks from joins.
type Polarity int

const (
	// ForkWedge: the tip is a producer, its pit receives.
	ForkWedge Polarity = iota
	// JoinWedge: the tip is a consumer, its pit supplies.
	JoinWedge
)

func (p Polarity) String() string {
	if p == ForkWedge {
		return "fork"
	}
	return "join"
}

// Wedge is a fork or a join: a tip dot paired with a nonempty pit of
// arm dots and one weight. Pits are kept sorted in canonical order so
// wedge equality and formatting are deterministic.
type Wedge struct {
	Polarity Polarity
	Tip      DotID
	Pit      []DotID
	Weight   Weight
}

// HasArm reports whether dot is in the wedge's pit. Pits are small;
// linear scan beats keeping a parallel set.
func (w *Wedge) HasArm(dot DotID) bool {
	for _, a := range w.Pit {
		if a == dot {
			return true
		}
	}
	return false
}

// Format renders the wedge against its domain: "a:(x y)" for a fork of
// a over {x, y}, with a "*w" suffix for weights other than 1.
func (w *Wedge) Format(dom *Domain) string {
	var b strings.Builder
	b.WriteString(dom.Name(w.Tip))
	b.WriteString(":(")
	b.WriteString(strings.Join(dom.DotNames(w.Pit), " "))
	b.WriteString(")")
	if w.Weight != 1 {
		fmt.Fprintf(&b, "*%s", w.Weight)
	}
	return b.String()
}

// Key is a canonical identity string, used for deduplication across
// solver models and encodings.
func (w *Wedge) Key(dom *Domain) string {
	return fmt.Sprintf("%s/%s/(%s)/%s",
		w.Polarity, dom.Name(w.Tip), strings.Join(dom.DotNames(w.Pit), ","), w.Weight)
}
