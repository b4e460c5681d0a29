// Package chem provides the core value types of the chemical model:
// elements, species, parsed formulas and the property snapshots handed to
// rate and area model callbacks.
package chem

import "fmt"

// Element is a chemical element as catalogued by a thermodynamic database.
type Element struct {
	Symbol    string  // e.g. "H", "Ca"
	Name      string  // e.g. "Hydrogen"
	MolarMass float64 // kg/mol
}

// ElementList is an ordered collection of elements.
type ElementList []Element

// IndexWithSymbol returns the index of the element with the given symbol,
// or -1 if no such element exists.
func (l ElementList) IndexWithSymbol(symbol string) int {
	for i, e := range l {
		if e.Symbol == symbol {
			return i
		}
	}
	return -1
}

// WithSymbol returns the element with the given symbol.
func (l ElementList) WithSymbol(symbol string) (Element, error) {
	i := l.IndexWithSymbol(symbol)
	if i < 0 {
		return Element{}, fmt.Errorf("no element with symbol %q", symbol)
	}
	return l[i], nil
}

// Symbols returns the symbols of all elements, in list order.
func (l ElementList) Symbols() []string {
	symbols := make([]string, len(l))
	for i, e := range l {
		symbols[i] = e.Symbol
	}
	return symbols
}
