package cex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// structureDoc is the on-disk YAML shape of a structure description.
type structureDoc struct {
	Name     string            `yaml:"name"`
	Dots     []string          `yaml:"dots"`
	Capacity map[string]Weight `yaml:"capacity"`
	Forks    []wedgeDoc        `yaml:"forks"`
	Joins    []wedgeDoc        `yaml:"joins"`
	Starts   []map[string]int64 `yaml:"starts"`
	Goals    []map[string]int64 `yaml:"goals"`
}

type wedgeDoc struct {
	Tip    string   `yaml:"tip"`
	Pit    []string `yaml:"pit"`
	Weight *Weight  `yaml:"weight"`
}

// LoadFile reads one structure description. The result is
// shape-validated (known dots, declarable weights, in-scope markings);
// the deeper structural checks live in the fuset package.
func LoadFile(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Load(data, name)
}

// Load decodes a YAML structure description.
func Load(data []byte, fallbackName string) (*Structure, error) {
	var doc structureDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed structure description: %w", err)
	}
	if doc.Name == "" {
		doc.Name = fallbackName
	}

	s := NewStructure(doc.Name)
	for _, d := range doc.Dots {
		s.AddDot(d)
	}
	for name, c := range doc.Capacity {
		id, ok := s.Domain.Lookup(name)
		if !ok {
			return nil, NewStructuralError(CodeUnknownDot, s.Name, "capacity of undeclared dot %q", name)
		}
		if !c.Valid() {
			return nil, NewStructuralError(CodeBadWeight, s.Name, "capacity of dot %s is not a nonnegative integer or omega", name)
		}
		s.Capacity[id] = c
	}

	for _, w := range doc.Forks {
		if err := addWedgeDoc(s, ForkWedge, w); err != nil {
			return nil, err
		}
	}
	for _, w := range doc.Joins {
		if err := addWedgeDoc(s, JoinWedge, w); err != nil {
			return nil, err
		}
	}

	for _, raw := range doc.Starts {
		m, err := markingDoc(s, raw)
		if err != nil {
			return nil, err
		}
		s.Starts = append(s.Starts, m)
	}
	for _, raw := range doc.Goals {
		m, err := markingDoc(s, raw)
		if err != nil {
			return nil, err
		}
		s.Goals = append(s.Goals, m)
	}
	return s, nil
}

func addWedgeDoc(s *Structure, p Polarity, doc wedgeDoc) error {
	tip, ok := s.Domain.Lookup(doc.Tip)
	if !ok {
		return NewStructuralError(CodeUnknownDot, s.Name, "%s tip %q is not a declared dot", p, doc.Tip)
	}
	pit := make([]DotID, 0, len(doc.Pit))
	for _, arm := range doc.Pit {
		id, ok := s.Domain.Lookup(arm)
		if !ok {
			return NewStructuralError(CodeUnknownDot, s.Name, "%s arm %q is not a declared dot", p, arm)
		}
		pit = append(pit, id)
	}
	weight := Weight(1)
	if doc.Weight != nil {
		weight = *doc.Weight
	}
	s.AddWedge(p, tip, pit, weight)
	return nil
}

func markingDoc(s *Structure, raw map[string]int64) (Marking, error) {
	m := NewMarking(s.Domain.Size())
	for name, n := range raw {
		id, ok := s.Domain.Lookup(name)
		if !ok {
			return nil, NewStructuralError(CodeUnknownDot, s.Name, "marking of undeclared dot %q", name)
		}
		if n < 0 {
			return nil, NewStructuralError(CodeMarkingBound, s.Name, "negative token count %d for dot %s", n, name)
		}
		m[id] = n
	}
	return m, nil
}
