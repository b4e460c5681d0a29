package phases

import (
	"fmt"
	"strings"

	"github.com/hydrochem/chemsys/chem"
	"github.com/hydrochem/chemsys/database"
)

// GenericPhase is an unresolved phase declaration. Species membership may
// be given as an explicit name list, as an element speciation query, or
// left empty to default to every database species in the declared
// aggregate state (restricted to the elements present elsewhere in the
// same Phases collection).
type GenericPhase struct {
	name        string
	state       StateOfMatter
	aggregate   chem.AggregateState
	extraStates []chem.AggregateState
	names       []string
	symbols     []string
	exclude     []string
	activity    ActivityModel
}

// AqueousPhase declares an aqueous solution phase. Each argument may list
// several space-separated species names; with no arguments the phase
// speciates over the elements present in the collection.
func AqueousPhase(species ...string) *GenericPhase {
	return &GenericPhase{
		name:      "AqueousPhase",
		state:     Liquid,
		aggregate: chem.Aqueous,
		names:     splitNames(species),
		activity:  IdealAqueous,
	}
}

// GaseousPhase declares a gaseous phase.
func GaseousPhase(species ...string) *GenericPhase {
	return &GenericPhase{
		name:      "GaseousPhase",
		state:     Gaseous,
		aggregate: chem.Gas,
		names:     splitNames(species),
		activity:  IdealGas,
	}
}

// MineralPhase declares a pure mineral phase named after its mineral.
func MineralPhase(mineral string) *GenericPhase {
	return &GenericPhase{
		name:      mineral,
		state:     Solid,
		aggregate: chem.Mineral,
		names:     []string{mineral},
		activity:  IdealSolution,
	}
}

// SurfaceComplexationPhase declares a phase of adsorbed surface species.
func SurfaceComplexationPhase(species ...string) *GenericPhase {
	return &GenericPhase{
		name:      "SurfaceComplexationPhase",
		state:     Solid,
		aggregate: chem.Adsorbed,
		names:     splitNames(species),
		activity:  SurfaceComplexation,
	}
}

// Named sets the phase name and returns the receiver.
func (p *GenericPhase) Named(name string) *GenericPhase {
	p.name = name
	return p
}

// Speciate restricts the phase to species composed of the given elements.
// It is ignored when an explicit species list was declared.
func (p *GenericPhase) Speciate(symbols ...string) *GenericPhase {
	p.symbols = append(p.symbols, symbols...)
	return p
}

// Exclude removes species carrying any of the given tags and returns the
// receiver.
func (p *GenericPhase) Exclude(tags ...string) *GenericPhase {
	p.exclude = append(p.exclude, tags...)
	return p
}

// SetActivityModel sets the activity model reference and returns the
// receiver.
func (p *GenericPhase) SetActivityModel(model ActivityModel) *GenericPhase {
	p.activity = model
	return p
}

// SetStateOfMatter sets the physical state and returns the receiver.
func (p *GenericPhase) SetStateOfMatter(state StateOfMatter) *GenericPhase {
	p.state = state
	return p
}

// AddAggregateStates widens species resolution to additional aggregate
// states and returns the receiver.
func (p *GenericPhase) AddAggregateStates(states ...chem.AggregateState) *GenericPhase {
	p.extraStates = append(p.extraStates, states...)
	return p
}

// Name returns the declared phase name.
func (p *GenericPhase) Name() string { return p.name }

// SpeciesNames returns the explicitly declared species names.
func (p *GenericPhase) SpeciesNames() []string { return p.names }

// ElementSymbols returns the declared speciation element symbols.
func (p *GenericPhase) ElementSymbols() []string { return p.symbols }

// Convert resolves the declaration against db. The symbols argument is
// the collection-wide element set used when the phase declares neither
// species names nor its own speciation query.
func (p *GenericPhase) Convert(db *database.Database, symbols []string) (Phase, error) {
	pool := db.SpeciesWithAggregateState(p.aggregate)
	for _, extra := range p.extraStates {
		pool = append(pool, db.SpeciesWithAggregateState(extra)...)
	}

	var species chem.SpeciesList
	var err error
	switch {
	case len(p.names) > 0:
		species, err = pool.WithNames(p.names...)
		if err != nil {
			return Phase{}, fmt.Errorf("phase %q: %w", p.name, err)
		}
	case len(p.symbols) > 0:
		species = pool.WithElements(p.symbols...)
	default:
		species = pool.WithElements(symbols...)
	}

	if len(p.exclude) > 0 {
		species = species.WithoutTags(p.exclude...)
	}
	if len(species) == 0 {
		return Phase{}, fmt.Errorf("phase %q resolved to zero species; list species names or speciate over the intended elements", p.name)
	}

	return Phase{
		name:      p.name,
		state:     p.state,
		aggregate: p.aggregate,
		species:   species,
		activity:  p.activity,
	}, nil
}

// Generator is a multi-phase declaration expanding into one single-species
// phase per matching database species, each named after its species.
type Generator struct {
	state     StateOfMatter
	aggregate chem.AggregateState
	names     []string
	symbols   []string
	exclude   []string
	activity  ActivityModel
}

// MineralPhases declares one pure MineralPhase per named mineral. With no
// arguments the generator expands to every mineral in the database made of
// the elements present in the collection.
func MineralPhases(minerals ...string) *Generator {
	return &Generator{
		state:     Solid,
		aggregate: chem.Mineral,
		names:     splitNames(minerals),
		activity:  IdealSolution,
	}
}

// Speciate restricts expansion to species composed of the given elements
// and returns the receiver.
func (g *Generator) Speciate(symbols ...string) *Generator {
	g.symbols = append(g.symbols, symbols...)
	return g
}

// Exclude removes species carrying any of the given tags and returns the
// receiver.
func (g *Generator) Exclude(tags ...string) *Generator {
	g.exclude = append(g.exclude, tags...)
	return g
}

// SpeciesNames returns the explicitly declared species names.
func (g *Generator) SpeciesNames() []string { return g.names }

// ElementSymbols returns the declared speciation element symbols.
func (g *Generator) ElementSymbols() []string { return g.symbols }

// Convert expands the generator against db into single-species phase
// declarations, in species order.
func (g *Generator) Convert(db *database.Database, symbols []string) ([]*GenericPhase, error) {
	pool := db.SpeciesWithAggregateState(g.aggregate)

	var species chem.SpeciesList
	var err error
	switch {
	case len(g.names) > 0:
		species, err = pool.WithNames(g.names...)
		if err != nil {
			return nil, fmt.Errorf("phase generator: %w", err)
		}
	case len(g.symbols) > 0:
		species = pool.WithElements(g.symbols...)
	default:
		species = pool.WithElements(symbols...)
	}

	if len(g.exclude) > 0 {
		species = species.WithoutTags(g.exclude...)
	}
	if len(species) == 0 {
		return nil, fmt.Errorf("phase generator resolved to zero species")
	}

	out := make([]*GenericPhase, 0, len(species))
	for _, s := range species {
		out = append(out, &GenericPhase{
			name:      s.Name,
			state:     g.state,
			aggregate: g.aggregate,
			names:     []string{s.Name},
			exclude:   g.exclude,
			activity:  g.activity,
		})
	}
	return out, nil
}

// splitNames flattens space-separated name lists into one slice.
func splitNames(args []string) []string {
	var names []string
	for _, arg := range args {
		names = append(names, strings.Fields(arg)...)
	}
	return names
}
