// Package models compiles user-supplied expressions into rate and surface
// area models. Expressions see the variables T (temperature, K) and P
// (pressure, Pa), any property published under ChemicalProps.Extra, and
// species amounts via amount('name') with a single-quoted species name
// (species whose names are plain identifiers, minerals typically, are
// also reachable as bare variables). The functions exp, ln, log10 and
// sqrt are available.
package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/hydrochem/chemsys/chem"
	"github.com/hydrochem/chemsys/reaction"
	"github.com/hydrochem/chemsys/surface"
)

// GasConstant is the universal gas constant in J/(mol*K).
const GasConstant = 8.31446261815324

var exprFunctions = map[string]govaluate.ExpressionFunction{
	"exp":   unary("exp", math.Exp),
	"ln":    unary("ln", math.Log),
	"log10": unary("log10", math.Log10),
	"sqrt":  unary("sqrt", math.Sqrt),
}

func unary(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("function %q takes 1 argument, got %d", name, len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("function %q takes a numeric argument", name)
		}
		return f(x), nil
	}
}

// amountPattern matches amount('species name') terms. The argument must
// be a quoted literal: species names such as "H2O(aq)" or "HCO3-" are not
// valid expression identifiers, so they are bound before compilation
// rather than evaluated as govaluate variables.
var amountPattern = regexp.MustCompile(`\bamount\(\s*'([^']+)'\s*\)`)

// amountVarPrefix prefixes the synthesized variables that amount('...')
// terms are rewritten to before compilation.
const amountVarPrefix = "amountarg"

// propsParameters exposes a ChemicalProps snapshot as expression
// variables. Synthesized amount variables resolve through the recorded
// species names; a species missing from the snapshot evaluates to zero.
type propsParameters struct {
	props   chem.ChemicalProps
	amounts []string // species name per synthesized amount variable
}

func (p propsParameters) Get(name string) (interface{}, error) {
	switch name {
	case "T":
		return p.props.Temperature, nil
	case "P":
		return p.props.Pressure, nil
	}
	if idx, ok := strings.CutPrefix(name, amountVarPrefix); ok {
		i, err := strconv.Atoi(idx)
		if err == nil && i < len(p.amounts) {
			return p.props.Amount(p.amounts[i]), nil
		}
	}
	if v, ok := p.props.Extra[name]; ok {
		return v, nil
	}
	if v, ok := p.props.Amounts[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("unknown variable %q", name)
}

// compile parses an expression into an evaluator over ChemicalProps.
// Evaluation failures (unknown variable, non-numeric result) yield zero:
// models run inside the solver and must never panic there.
func compile(expr string) (func(chem.ChemicalProps) float64, error) {
	var amounts []string
	rewritten := amountPattern.ReplaceAllStringFunc(expr, func(m string) string {
		name := amountPattern.FindStringSubmatch(m)[1]
		amounts = append(amounts, name)
		return fmt.Sprintf("%s%d", amountVarPrefix, len(amounts)-1)
	})

	compiled, err := govaluate.NewEvaluableExpressionWithFunctions(rewritten, exprFunctions)
	if err != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", expr, err)
	}
	return func(props chem.ChemicalProps) float64 {
		out, err := compiled.Eval(propsParameters{props: props, amounts: amounts})
		if err != nil {
			return 0
		}
		v, ok := out.(float64)
		if !ok {
			return 0
		}
		return v
	}, nil
}

// Rate compiles an expression into a reaction rate model (mol/s).
func Rate(expr string) (reaction.RateModel, error) {
	f, err := compile(expr)
	if err != nil {
		return nil, err
	}
	return reaction.RateModel(f), nil
}

// Area compiles an expression into a surface area model (m2).
func Area(expr string) (surface.AreaModel, error) {
	f, err := compile(expr)
	if err != nil {
		return nil, err
	}
	return surface.AreaModel(f), nil
}

// ConstantRate returns a rate model with a fixed value in mol/s.
func ConstantRate(v float64) reaction.RateModel {
	return func(chem.ChemicalProps) float64 { return v }
}

// ConstantArea returns an area model with a fixed value in m2.
func ConstantArea(v float64) surface.AreaModel {
	return func(chem.ChemicalProps) float64 { return v }
}

// Arrhenius returns a rate model a*exp(-ea/(R*T)) with pre-exponential
// factor a in mol/s and activation energy ea in J/mol.
func Arrhenius(a, ea float64) reaction.RateModel {
	return func(props chem.ChemicalProps) float64 {
		return a * math.Exp(-ea/(GasConstant*props.Temperature))
	}
}
