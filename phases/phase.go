// Package phases defines phase declarations and their resolution against a
// thermodynamic database into ordered, immutable Phase values.
package phases

import (
	"fmt"

	"github.com/hydrochem/chemsys/chem"
)

// StateOfMatter is the physical state of a resolved phase.
type StateOfMatter uint8

const (
	Solid StateOfMatter = iota
	Liquid
	Gaseous
)

func (s StateOfMatter) String() string {
	switch s {
	case Solid:
		return "solid"
	case Liquid:
		return "liquid"
	case Gaseous:
		return "gas"
	}
	return fmt.Sprintf("StateOfMatter(%d)", uint8(s))
}

// ActivityModel is a named reference to the activity model attached to a
// phase. The numerics behind the reference live in the property evaluation
// engine, outside this package.
type ActivityModel string

const (
	IdealAqueous        ActivityModel = "ideal-aqueous"
	IdealGas            ActivityModel = "ideal-gas"
	IdealSolution       ActivityModel = "ideal-solution"
	DebyeHuckel         ActivityModel = "debye-huckel"
	Pitzer              ActivityModel = "pitzer"
	PengRobinson        ActivityModel = "peng-robinson"
	SurfaceComplexation ActivityModel = "surface-complexation"
)

// Phase is a resolved phase: a named, ordered collection of species
// sharing an aggregate state and an activity model. Phases are immutable
// once resolved.
type Phase struct {
	name      string
	state     StateOfMatter
	aggregate chem.AggregateState
	species   chem.SpeciesList
	activity  ActivityModel
}

// Name returns the name of the phase.
func (p Phase) Name() string { return p.name }

// StateOfMatter returns the physical state of the phase.
func (p Phase) StateOfMatter() StateOfMatter { return p.state }

// AggregateState returns the aggregate state shared by the phase species.
func (p Phase) AggregateState() chem.AggregateState { return p.aggregate }

// Species returns the ordered species of the phase.
func (p Phase) Species() chem.SpeciesList { return p.species }

// ActivityModel returns the activity model reference of the phase.
func (p Phase) ActivityModel() ActivityModel { return p.activity }
