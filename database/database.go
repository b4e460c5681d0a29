// Package database provides the read-only thermodynamic catalog of
// elements and species that chemical systems are assembled against.
package database

import (
	"fmt"
	"sort"

	"github.com/hydrochem/chemsys/chem"
	"github.com/hydrochem/chemsys/reaction"
)

// Database is a read-only catalog of known elements and species. Elements
// enumerate in ascending molar mass (symbol tie-break); species enumerate
// in declaration order.
type Database struct {
	elements chem.ElementList
	species  chem.SpeciesList

	elementIndex map[string]int
	speciesIndex map[string]int
}

// New builds a Database from the given elements and species. Every element
// symbol referenced by a species formula must be present in elements, and
// element symbols and species names must be unique.
func New(elements []chem.Element, species []chem.Species) (*Database, error) {
	db := &Database{
		elements:     append(chem.ElementList(nil), elements...),
		species:      append(chem.SpeciesList(nil), species...),
		elementIndex: make(map[string]int, len(elements)),
		speciesIndex: make(map[string]int, len(species)),
	}

	sort.SliceStable(db.elements, func(i, j int) bool {
		if db.elements[i].MolarMass != db.elements[j].MolarMass {
			return db.elements[i].MolarMass < db.elements[j].MolarMass
		}
		return db.elements[i].Symbol < db.elements[j].Symbol
	})

	for i, e := range db.elements {
		if _, ok := db.elementIndex[e.Symbol]; ok {
			return nil, fmt.Errorf("duplicate element symbol %q", e.Symbol)
		}
		db.elementIndex[e.Symbol] = i
	}
	for i, s := range db.species {
		if _, ok := db.speciesIndex[s.Name]; ok {
			return nil, fmt.Errorf("duplicate species name %q", s.Name)
		}
		db.speciesIndex[s.Name] = i
		for _, sym := range s.Formula.Symbols() {
			if _, ok := db.elementIndex[sym]; !ok {
				return nil, fmt.Errorf("species %q references unknown element %q", s.Name, sym)
			}
		}
	}
	return db, nil
}

// Elements returns the element catalog in ascending molar mass order.
func (db *Database) Elements() chem.ElementList { return db.elements }

// Species returns the species catalog in declaration order.
func (db *Database) Species() chem.SpeciesList { return db.species }

// ElementWithSymbol returns the element with the given symbol.
func (db *Database) ElementWithSymbol(symbol string) (chem.Element, error) {
	i, ok := db.elementIndex[symbol]
	if !ok {
		return chem.Element{}, fmt.Errorf("no element with symbol %q in database", symbol)
	}
	return db.elements[i], nil
}

// SpeciesWithName returns the species with the given name.
func (db *Database) SpeciesWithName(name string) (chem.Species, error) {
	i, ok := db.speciesIndex[name]
	if !ok {
		return chem.Species{}, fmt.Errorf("no species with name %q in database", name)
	}
	return db.species[i], nil
}

// SpeciesWithAggregateState returns the species in the given aggregate
// state, in catalog order.
func (db *Database) SpeciesWithAggregateState(state chem.AggregateState) chem.SpeciesList {
	return db.species.WithAggregateState(state)
}

// ElementsInSpecies returns the element symbols used by the named species,
// in first-appearance order. Every name must resolve.
func (db *Database) ElementsInSpecies(names ...string) ([]string, error) {
	list, err := db.species.WithNames(names...)
	if err != nil {
		return nil, err
	}
	return list.ElementSymbols(), nil
}

// Reaction resolves a reaction equation against the catalog and returns a
// Reaction with no rate model attached. Every species name in the equation
// must exist in the database.
func (db *Database) Reaction(equation string) (reaction.Reaction, error) {
	eq, err := reaction.ParseEquation(equation)
	if err != nil {
		return reaction.Reaction{}, err
	}
	for name := range eq.Coefficients {
		if _, ok := db.speciesIndex[name]; !ok {
			return reaction.Reaction{}, fmt.Errorf("reaction %q references species %q not in database", equation, name)
		}
	}
	return reaction.New(equation, eq), nil
}
