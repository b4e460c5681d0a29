package reaction

import "github.com/hydrochem/chemsys/chem"

// RateModel computes a reaction rate (mol/s) from system properties. Rate
// models are supplied at declaration time and invoked later by the
// property evaluation engine, possibly from multiple goroutines; they must
// not retain or mutate the snapshot.
type RateModel func(chem.ChemicalProps) float64

// Reaction is a named stoichiometric transformation between species with
// an attached rate model. Reactions are value types; the With* methods
// return modified copies.
type Reaction struct {
	name     string
	equation Equation
	rate     RateModel
}

// New builds a Reaction from a parsed equation. The reaction name is the
// equation string.
func New(name string, equation Equation) Reaction {
	return Reaction{name: name, equation: equation}
}

// WithName returns a copy of the reaction with the given name.
func (r Reaction) WithName(name string) Reaction {
	r.name = name
	return r
}

// WithRateModel returns a copy of the reaction with the given rate model.
func (r Reaction) WithRateModel(model RateModel) Reaction {
	r.rate = model
	return r
}

// Name returns the name of the reaction.
func (r Reaction) Name() string { return r.name }

// Equation returns the stoichiometric equation of the reaction.
func (r Reaction) Equation() Equation { return r.equation }

// RateModel returns the attached rate model, or nil if none was set.
func (r Reaction) RateModel() RateModel { return r.rate }

// Rate evaluates the rate model for the given properties. It returns zero
// if no rate model is attached.
func (r Reaction) Rate(props chem.ChemicalProps) float64 {
	if r.rate == nil {
		return 0
	}
	return r.rate(props)
}

// GeneralReaction is an unresolved reaction declaration: an equation
// string plus a rate model, resolved against a database during system
// assembly.
type GeneralReaction struct {
	equation string
	name     string
	rate     RateModel
}

// NewGeneral builds a GeneralReaction from an equation string. The
// equation is parsed at system assembly, not here.
func NewGeneral(equation string) *GeneralReaction {
	return &GeneralReaction{equation: equation, name: equation}
}

// SetName sets the reaction name and returns the receiver.
func (g *GeneralReaction) SetName(name string) *GeneralReaction {
	g.name = name
	return g
}

// SetRateModel sets the rate model and returns the receiver.
func (g *GeneralReaction) SetRateModel(model RateModel) *GeneralReaction {
	g.rate = model
	return g
}

// EquationString returns the declared equation string.
func (g *GeneralReaction) EquationString() string { return g.equation }

// Name returns the declared name.
func (g *GeneralReaction) Name() string { return g.name }

// RateModel returns the declared rate model, or nil.
func (g *GeneralReaction) RateModel() RateModel { return g.rate }

// Convert parses the declared equation and returns the resolved Reaction.
func (g *GeneralReaction) Convert() (Reaction, error) {
	eq, err := ParseEquation(g.equation)
	if err != nil {
		return Reaction{}, err
	}
	return Reaction{name: g.name, equation: eq, rate: g.rate}, nil
}
