// Package reaction defines stoichiometric reactions between species and
// the rate models attached to them.
package reaction

import (
	"fmt"
	"strconv"
	"strings"
)

// Equation is a parsed reaction equation. Coefficients are negative for
// reactants and positive for products.
type Equation struct {
	Str          string
	Coefficients map[string]float64
}

// ParseEquation parses a reaction equation such as "Halite = Na+ + Cl-" or
// "HCO3- + H+ = CO2(aq) + H2O(aq)". Terms are separated by " + " (species
// names may themselves end in '+', so the separator requires surrounding
// spaces). Coefficients may be written "2*H2O" or "2 H2O". A bare species
// name is a valid single-reactant equation.
func ParseEquation(s string) (Equation, error) {
	eq := Equation{Str: s, Coefficients: make(map[string]float64)}
	if strings.TrimSpace(s) == "" {
		return eq, fmt.Errorf("empty reaction equation")
	}

	sides := strings.Split(s, "=")
	if len(sides) > 2 {
		return eq, fmt.Errorf("invalid reaction equation %q: more than one '='", s)
	}

	if err := parseSide(&eq, sides[0], -1); err != nil {
		return eq, fmt.Errorf("invalid reaction equation %q: %w", s, err)
	}
	if len(sides) == 2 {
		if err := parseSide(&eq, sides[1], +1); err != nil {
			return eq, fmt.Errorf("invalid reaction equation %q: %w", s, err)
		}
	}
	return eq, nil
}

func parseSide(eq *Equation, side string, sign float64) error {
	for _, term := range strings.Split(side, " + ") {
		term = strings.TrimSpace(term)
		if term == "" {
			return fmt.Errorf("empty term")
		}
		coeff, name, err := parseTerm(term)
		if err != nil {
			return err
		}
		if _, ok := eq.Coefficients[name]; ok {
			return fmt.Errorf("species %q appears twice", name)
		}
		eq.Coefficients[name] = sign * coeff
	}
	return nil
}

// parseTerm splits an equation term into its stoichiometric coefficient
// and species name. Species names never start with a digit, so a leading
// number is always a coefficient.
func parseTerm(term string) (float64, string, error) {
	i := 0
	for i < len(term) && (term[i] >= '0' && term[i] <= '9' || term[i] == '.') {
		i++
	}
	if i == 0 {
		return 1, term, nil
	}
	coeff, err := strconv.ParseFloat(term[:i], 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid coefficient in term %q", term)
	}
	name := strings.TrimSpace(strings.TrimPrefix(term[i:], "*"))
	if name == "" {
		return 0, "", fmt.Errorf("missing species name in term %q", term)
	}
	return coeff, name, nil
}
