package cex

// Structure is an already-validated in-memory cause-effect structure:
// a domain of dots, the declared weighted wedges, per-dot capacities,
// and the optional start markings and goal thresholds. Built once by
// the loader, read-only afterward.
type Structure struct {
	Name     string
	Domain   *Domain
	Wedges   []Wedge
	Capacity []Weight // per dot; Omega means unbounded
	Starts   []Marking
	Goals    []Marking // disjunction: any satisfied threshold halts a pass
}

// NewStructure creates an empty named structure.
func NewStructure(name string) *Structure {
	return &Structure{Name: name, Domain: NewDomain()}
}

// AddDot interns a dot with unbounded capacity.
func (s *Structure) AddDot(name string) DotID {
	id := s.Domain.Add(name)
	for len(s.Capacity) <= int(id) {
		s.Capacity = append(s.Capacity, Omega)
	}
	return id
}

// AddWedge appends a wedge. The pit is sorted into canonical order.
func (s *Structure) AddWedge(p Polarity, tip DotID, pit []DotID, w Weight) {
	sorted := make([]DotID, len(pit))
	copy(sorted, pit)
	s.Domain.SortDots(sorted)
	s.Wedges = append(s.Wedges, Wedge{Polarity: p, Tip: tip, Pit: sorted, Weight: w})
}

// Forks returns the fork wedges in declaration order.
func (s *Structure) Forks() []Wedge {
	return s.wedgesOf(ForkWedge)
}

// Joins returns the join wedges in declaration order.
func (s *Structure) Joins() []Wedge {
	return s.wedgesOf(JoinWedge)
}

func (s *Structure) wedgesOf(p Polarity) []Wedge {
	var out []Wedge
	for _, w := range s.Wedges {
		if w.Polarity == p {
			out = append(out, w)
		}
	}
	return out
}

// CapacityOf returns the envelope of a dot.
func (s *Structure) CapacityOf(d DotID) Weight {
	return s.Capacity[d]
}

// Merge folds another structure into s: the domains are united and all
// wedges, starts and goals of other are re-interned against the merged
// domain. Mirrors feeding several description files into one analysis.
func (s *Structure) Merge(other *Structure) {
	remap := make([]DotID, other.Domain.Size())
	for i := 0; i < other.Domain.Size(); i++ {
		id := s.AddDot(other.Domain.Name(DotID(i)))
		remap[i] = id
		if other.Capacity[i] != Omega {
			s.Capacity[id] = other.Capacity[i]
		}
	}
	for _, w := range other.Wedges {
		pit := make([]DotID, len(w.Pit))
		for j, a := range w.Pit {
			pit[j] = remap[a]
		}
		s.AddWedge(w.Polarity, remap[w.Tip], pit, w.Weight)
	}
	for _, m := range other.Starts {
		s.Starts = append(s.Starts, remapMarking(m, remap, s.Domain.Size()))
	}
	for _, m := range other.Goals {
		s.Goals = append(s.Goals, remapMarking(m, remap, s.Domain.Size()))
	}
	// Earlier markings may predate dots added by the merge.
	s.widenMarkings()
}

func remapMarking(m Marking, remap []DotID, size int) Marking {
	out := NewMarking(size)
	for d, n := range m {
		out[remap[d]] = n
	}
	return out
}

func (s *Structure) widenMarkings() {
	for i, m := range s.Starts {
		s.Starts[i] = widen(m, s.Domain.Size())
	}
	for i, m := range s.Goals {
		s.Goals[i] = widen(m, s.Domain.Size())
	}
}

func widen(m Marking, size int) Marking {
	if len(m) == size {
		return m
	}
	out := NewMarking(size)
	copy(out, m)
	return out
}
