// Package system assembles phase, reaction and surface declarations into
// an immutable, indexed ChemicalSystem with a derived formula matrix.
package system

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hydrochem/chemsys/chem"
	"github.com/hydrochem/chemsys/database"
	"github.com/hydrochem/chemsys/phases"
	"github.com/hydrochem/chemsys/reaction"
	"github.com/hydrochem/chemsys/surface"
)

// Range is a contiguous half-open index range [Begin, End) into the global
// species list.
type Range struct {
	Begin, End int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int { return r.End - r.Begin }

// ChemicalSystem is the assembled aggregate: global element, species and
// phase lists, attached reactions and surfaces, and the formula matrix.
// Construction either fully succeeds or fails; a constructed system is
// immutable and safe for concurrent reads.
type ChemicalSystem struct {
	id       uint64
	db       *database.Database
	elements chem.ElementList
	species  chem.SpeciesList
	phases   []phases.Phase
	ranges   []Range

	reactions []reaction.Reaction
	surfaces  []surface.Surface

	formula *mat.Dense
}

// New assembles a system from a database and a tagged list of phase,
// reaction and surface items. Phases keep their relative order, which
// fixes the global species ordering; reactions and surfaces are collected
// in encounter order.
func New(db *database.Database, items ...Item) (*ChemicalSystem, error) {
	return NewWithCounter(&defaultCounter, db, items...)
}

// NewWithCounter is New with an explicit id counter, for callers that need
// an isolated id sequence.
func NewWithCounter(counter *Counter, db *database.Database, items ...Item) (*ChemicalSystem, error) {
	ps := phases.New(db)
	var reactions []reaction.Reaction
	var surfaces []surface.Surface

	for _, it := range items {
		switch it.kind {
		case KindPhase:
			ps.Add(it.phase)
		case KindPhaseGenerator:
			ps.AddGenerator(it.gen)
		case KindReaction:
			reactions = append(reactions, it.rxn)
		case KindGeneralReaction:
			r, err := it.genRxn.Convert()
			if err != nil {
				return nil, err
			}
			reactions = append(reactions, r)
		case KindSurface:
			surfaces = append(surfaces, it.surf)
		case KindGeneralSurface:
			surfaces = append(surfaces, it.genSurf.Convert())
		}
	}
	return assemble(counter, ps, reactions, surfaces)
}

// NewFromPhases assembles a system from an already-bound Phases
// collection.
func NewFromPhases(ps *phases.Phases) (*ChemicalSystem, error) {
	return assemble(&defaultCounter, ps, nil, nil)
}

// NewFromPhasesWithCounter is NewFromPhases with an explicit id counter.
func NewFromPhasesWithCounter(counter *Counter, ps *phases.Phases) (*ChemicalSystem, error) {
	return assemble(counter, ps, nil, nil)
}

func assemble(counter *Counter, ps *phases.Phases, reactions []reaction.Reaction, surfaces []surface.Surface) (*ChemicalSystem, error) {
	resolved, err := ps.Convert()
	if err != nil {
		return nil, err
	}

	s := &ChemicalSystem{
		db:        ps.Database(),
		phases:    resolved,
		reactions: reactions,
		surfaces:  surfaces,
	}

	for _, p := range resolved {
		begin := len(s.species)
		s.species = append(s.species, p.Species()...)
		s.ranges = append(s.ranges, Range{Begin: begin, End: len(s.species)})
	}
	if len(s.species) == 0 {
		return nil, &ConsistencyError{Msg: "no species after assembly"}
	}

	// Global element list: the database's element ordering restricted to
	// the elements actually used by the assembled species.
	used := make(map[string]bool)
	for _, sp := range s.species {
		for _, sym := range sp.Formula.Symbols() {
			used[sym] = true
		}
	}
	for _, e := range s.db.Elements() {
		if used[e.Symbol] {
			s.elements = append(s.elements, e)
		}
	}
	if len(s.elements) == 0 {
		return nil, &ConsistencyError{Msg: "no elements after assembly"}
	}

	// Reactions must reference species present in the system. This is a
	// construction-time check so that kinetics consumers never see a
	// dangling species name.
	for _, r := range s.reactions {
		for name := range r.Equation().Coefficients {
			if s.species.IndexWithName(name) < 0 {
				return nil, &ResolutionError{Kind: "species", Name: name}
			}
		}
	}

	rows, cols := len(s.elements)+1, len(s.species)
	m := mat.NewDense(rows, cols, nil)
	for j, sp := range s.species {
		for i, e := range s.elements {
			m.Set(i, j, sp.Coefficient(e.Symbol))
		}
		m.Set(rows-1, j, sp.Charge())
	}
	s.formula = m

	s.id = counter.Next()
	return s, nil
}

// ID returns the globally unique identifier assigned at construction.
func (s *ChemicalSystem) ID() uint64 { return s.id }

// Database returns the database the system was assembled against.
func (s *ChemicalSystem) Database() *database.Database { return s.db }

// Elements returns the global element list.
func (s *ChemicalSystem) Elements() chem.ElementList { return s.elements }

// Element returns the element at the given index.
func (s *ChemicalSystem) Element(i int) chem.Element { return s.elements[i] }

// ElementWithSymbol returns the element with the given symbol.
func (s *ChemicalSystem) ElementWithSymbol(symbol string) (chem.Element, error) {
	i := s.elements.IndexWithSymbol(symbol)
	if i < 0 {
		return chem.Element{}, &ResolutionError{Kind: "element", Name: symbol}
	}
	return s.elements[i], nil
}

// Species returns the global species list: the concatenation of all phase
// species in phase order.
func (s *ChemicalSystem) Species() chem.SpeciesList { return s.species }

// SpeciesAt returns the species at the given global index.
func (s *ChemicalSystem) SpeciesAt(i int) chem.Species { return s.species[i] }

// SpeciesIndexWithName returns the global index of the species with the
// given name. A name declared in more than one phase yields an
// AmbiguityError.
func (s *ChemicalSystem) SpeciesIndexWithName(name string) (int, error) {
	var matches []int
	for i, sp := range s.species {
		if sp.Name == name {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return 0, &ResolutionError{Kind: "species", Name: name}
	case 1:
		return matches[0], nil
	default:
		return 0, &AmbiguityError{Kind: "species", Name: name, Indices: matches}
	}
}

// SpeciesWithName returns the species with the given name.
func (s *ChemicalSystem) SpeciesWithName(name string) (chem.Species, error) {
	i, err := s.SpeciesIndexWithName(name)
	if err != nil {
		return chem.Species{}, err
	}
	return s.species[i], nil
}

// Phases returns the global phase list.
func (s *ChemicalSystem) Phases() []phases.Phase { return s.phases }

// Phase returns the phase at the given index.
func (s *ChemicalSystem) Phase(i int) phases.Phase { return s.phases[i] }

// PhaseWithName returns the phase with the given name.
func (s *ChemicalSystem) PhaseWithName(name string) (phases.Phase, error) {
	for _, p := range s.phases {
		if p.Name() == name {
			return p, nil
		}
	}
	return phases.Phase{}, &ResolutionError{Kind: "phase", Name: name}
}

// PhaseRange returns the global species index range of the phase at the
// given index.
func (s *ChemicalSystem) PhaseRange(i int) Range { return s.ranges[i] }

// NumElements returns the number of elements in the system.
func (s *ChemicalSystem) NumElements() int { return len(s.elements) }

// NumSpecies returns the number of species in the system.
func (s *ChemicalSystem) NumSpecies() int { return len(s.species) }

// NumPhases returns the number of phases in the system.
func (s *ChemicalSystem) NumPhases() int { return len(s.phases) }

// Reactions returns the reactions attached at construction, in encounter
// order.
func (s *ChemicalSystem) Reactions() []reaction.Reaction { return s.reactions }

// Surfaces returns the reactive surfaces attached at construction, in
// encounter order.
func (s *ChemicalSystem) Surfaces() []surface.Surface { return s.surfaces }

// FormulaMatrix returns the (NumElements+1) x NumSpecies matrix whose
// entry (i, j) is the coefficient of element i in species j; the last row
// holds species charges. The returned matrix is shared and must not be
// mutated.
func (s *ChemicalSystem) FormulaMatrix() mat.Matrix { return s.formula }

// FormulaMatrixElements returns the element rows of the formula matrix.
func (s *ChemicalSystem) FormulaMatrixElements() mat.Matrix {
	return s.formula.Slice(0, len(s.elements), 0, len(s.species))
}

// FormulaMatrixCharge returns the charge row of the formula matrix.
func (s *ChemicalSystem) FormulaMatrixCharge() mat.Vector {
	return s.formula.RowView(len(s.elements))
}

// ElementAmounts returns b = A_elements * n: the molar element amounts
// implied by the given species amounts (mol).
func (s *ChemicalSystem) ElementAmounts(speciesAmounts []float64) ([]float64, error) {
	if len(speciesAmounts) != len(s.species) {
		return nil, &ConsistencyError{Msg: "species amounts length does not match species count"}
	}
	n := mat.NewVecDense(len(speciesAmounts), speciesAmounts)
	b := mat.NewVecDense(len(s.elements), nil)
	b.MulVec(s.FormulaMatrixElements(), n)
	return b.RawVector().Data, nil
}

// IndicesFluidPhases returns the indices of the non-solid phases.
func (s *ChemicalSystem) IndicesFluidPhases() []int {
	var out []int
	for i, p := range s.phases {
		if p.StateOfMatter() != phases.Solid {
			out = append(out, i)
		}
	}
	return out
}

// IndicesSolidPhases returns the indices of the solid phases.
func (s *ChemicalSystem) IndicesSolidPhases() []int {
	var out []int
	for i, p := range s.phases {
		if p.StateOfMatter() == phases.Solid {
			out = append(out, i)
		}
	}
	return out
}
