package chem

import (
	"fmt"
	"strconv"
	"strings"
)

// Formula is a parsed chemical formula: the stoichiometric coefficient of
// each element plus the electrical charge encoded by the trailing suffix.
type Formula struct {
	Str          string
	Coefficients map[string]float64
	Charge       float64

	symbols []string // element symbols in order of first appearance
}

// Symbols returns the element symbols of the formula in order of first
// appearance.
func (f Formula) Symbols() []string { return f.symbols }

// ParseFormula parses a chemical formula such as "H2O", "CO3-2",
// "CaMg(CO3)2", "OH-" or "Ca++". Charge suffixes are accepted in both the
// signed-count notation ("+2", "-2") and the repeated-sign notation
// ("++", "--"). The special formula "e-" denotes the electron, with no
// elemental composition and charge -1.
func ParseFormula(s string) (Formula, error) {
	f := Formula{Str: s, Coefficients: make(map[string]float64)}
	if s == "" {
		return f, fmt.Errorf("empty chemical formula")
	}
	if s == "e-" {
		f.Charge = -1
		return f, nil
	}

	body, charge, err := splitCharge(s)
	if err != nil {
		return f, err
	}
	f.Charge = charge

	p := &formulaParser{src: body}
	if err := p.parseGroup(&f, 1); err != nil {
		return f, fmt.Errorf("invalid formula %q: %w", s, err)
	}
	if p.pos != len(p.src) {
		return f, fmt.Errorf("invalid formula %q: unexpected %q", s, p.src[p.pos:])
	}
	if len(f.Coefficients) == 0 {
		return f, fmt.Errorf("invalid formula %q: no elements", s)
	}
	return f, nil
}

// MustParseFormula is like ParseFormula but panics on error. Intended for
// statically known formulas.
func MustParseFormula(s string) Formula {
	f, err := ParseFormula(s)
	if err != nil {
		panic(err)
	}
	return f
}

// splitCharge strips a trailing charge suffix and returns the remaining
// formula body and the charge value.
func splitCharge(s string) (string, float64, error) {
	i := strings.IndexAny(s, "+-")
	if i < 0 {
		return s, 0, nil
	}
	body, suffix := s[:i], s[i:]
	sign := 1.0
	if suffix[0] == '-' {
		sign = -1
	}

	// Repeated-sign notation: "+", "++", "---".
	if strings.Count(suffix, string(suffix[0])) == len(suffix) {
		return body, sign * float64(len(suffix)), nil
	}

	// Signed-count notation: "+2", "-3".
	n, err := strconv.ParseFloat(suffix[1:], 64)
	if err != nil || n <= 0 {
		return s, 0, fmt.Errorf("invalid charge suffix %q in formula %q", suffix, s)
	}
	return body, sign * n, nil
}

type formulaParser struct {
	src string
	pos int
}

// parseGroup consumes element terms and parenthesized subgroups until the
// end of input or a closing parenthesis, scaling coefficients by mult.
func (p *formulaParser) parseGroup(f *Formula, mult float64) error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == ')':
			return nil
		case c == '(':
			p.pos++
			sub := Formula{Coefficients: make(map[string]float64)}
			if err := p.parseGroup(&sub, 1); err != nil {
				return err
			}
			if p.pos >= len(p.src) || p.src[p.pos] != ')' {
				return fmt.Errorf("unmatched parenthesis")
			}
			p.pos++
			n, err := p.parseCount()
			if err != nil {
				return err
			}
			for _, sym := range sub.symbols {
				f.add(sym, sub.Coefficients[sym]*n*mult)
			}
		case c >= 'A' && c <= 'Z':
			sym := p.parseSymbol()
			n, err := p.parseCount()
			if err != nil {
				return err
			}
			f.add(sym, n*mult)
		default:
			return fmt.Errorf("unexpected character %q", string(c))
		}
	}
	return nil
}

// parseSymbol consumes an element symbol: one uppercase letter followed by
// any lowercase letters.
func (p *formulaParser) parseSymbol() string {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) && p.src[p.pos] >= 'a' && p.src[p.pos] <= 'z' {
		p.pos++
	}
	return p.src[start:p.pos]
}

// parseCount consumes an optional numeric multiplier, defaulting to 1.
func (p *formulaParser) parseCount() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 1, nil
	}
	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid multiplier %q", p.src[start:p.pos])
	}
	return n, nil
}

func (f *Formula) add(symbol string, n float64) {
	if _, ok := f.Coefficients[symbol]; !ok {
		f.symbols = append(f.symbols, symbol)
	}
	f.Coefficients[symbol] += n
}
