package chem

import "fmt"

// AggregateState classifies the physical aggregation of a species.
type AggregateState uint8

const (
	Undefined AggregateState = iota
	Aqueous
	Gas
	Liquid
	Solid
	Mineral
	Adsorbed
)

var aggregateStateNames = map[AggregateState]string{
	Undefined: "undefined",
	Aqueous:   "aqueous",
	Gas:       "gas",
	Liquid:    "liquid",
	Solid:     "solid",
	Mineral:   "mineral",
	Adsorbed:  "adsorbed",
}

func (s AggregateState) String() string {
	if name, ok := aggregateStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AggregateState(%d)", uint8(s))
}

// ParseAggregateState converts a state name (as used in database files)
// into an AggregateState value.
func ParseAggregateState(name string) (AggregateState, error) {
	for s, n := range aggregateStateNames {
		if n == name {
			return s, nil
		}
	}
	return Undefined, fmt.Errorf("unknown aggregate state %q", name)
}

// Species is a chemical species with a resolved elemental composition.
type Species struct {
	Name           string // e.g. "H2O(aq)", "Halite"
	Formula        Formula
	AggregateState AggregateState
	Tags           []string
}

// Charge returns the electrical charge of the species.
func (s Species) Charge() float64 { return s.Formula.Charge }

// Coefficient returns the stoichiometric coefficient of the element with
// the given symbol in this species, or zero if the element is absent.
func (s Species) Coefficient(symbol string) float64 {
	return s.Formula.Coefficients[symbol]
}

// HasTag reports whether the species carries the given tag.
func (s Species) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SpeciesList is an ordered collection of species.
type SpeciesList []Species

// IndexWithName returns the index of the species with the given name,
// or -1 if no such species exists.
func (l SpeciesList) IndexWithName(name string) int {
	for i, s := range l {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// WithName returns the species with the given name.
func (l SpeciesList) WithName(name string) (Species, error) {
	i := l.IndexWithName(name)
	if i < 0 {
		return Species{}, fmt.Errorf("no species with name %q", name)
	}
	return l[i], nil
}

// WithNames returns the species with the given names, in the given order.
// Every name must resolve.
func (l SpeciesList) WithNames(names ...string) (SpeciesList, error) {
	out := make(SpeciesList, 0, len(names))
	for _, name := range names {
		s, err := l.WithName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// WithAggregateState returns the species in the given aggregate state,
// preserving list order.
func (l SpeciesList) WithAggregateState(state AggregateState) SpeciesList {
	var out SpeciesList
	for _, s := range l {
		if s.AggregateState == state {
			out = append(out, s)
		}
	}
	return out
}

// WithElements returns the species whose compositions use only the given
// element symbols, preserving list order.
func (l SpeciesList) WithElements(symbols ...string) SpeciesList {
	allowed := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		allowed[sym] = true
	}
	var out SpeciesList
	for _, s := range l {
		ok := true
		for sym := range s.Formula.Coefficients {
			if !allowed[sym] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, s)
		}
	}
	return out
}

// WithoutTags returns the species carrying none of the given tags.
func (l SpeciesList) WithoutTags(tags ...string) SpeciesList {
	var out SpeciesList
	for _, s := range l {
		tagged := false
		for _, tag := range tags {
			if s.HasTag(tag) {
				tagged = true
				break
			}
		}
		if !tagged {
			out = append(out, s)
		}
	}
	return out
}

// Names returns the names of all species, in list order.
func (l SpeciesList) Names() []string {
	names := make([]string, len(l))
	for i, s := range l {
		names[i] = s.Name
	}
	return names
}

// ElementSymbols returns the set of element symbols used by the species
// in this list, in first-appearance order.
func (l SpeciesList) ElementSymbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, s := range l {
		for _, sym := range s.Formula.Symbols() {
			if !seen[sym] {
				seen[sym] = true
				symbols = append(symbols, sym)
			}
		}
	}
	return symbols
}
