package system

import (
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hydrochem/chemsys/chem"
	"github.com/hydrochem/chemsys/database"
	"github.com/hydrochem/chemsys/phases"
	"github.com/hydrochem/chemsys/reaction"
	"github.com/hydrochem/chemsys/surface"
)

// brineSystem builds the reference brine + gas + carbonate/silica mineral
// assemblage used throughout the package tests.
func brineSystem(t *testing.T) *ChemicalSystem {
	t.Helper()
	db := database.Builtin()

	ps := phases.New(db)
	ps.Add(phases.AqueousPhase("H2O(aq) H+ OH- Na+ Cl- Ca+2 Mg+2 HCO3- CO3-2 CO2(aq) SiO2(aq)"))
	ps.Add(phases.GaseousPhase("H2O(g) CO2(g)"))
	ps.Add(phases.MineralPhase("Halite"))
	ps.Add(phases.MineralPhase("Calcite"))
	ps.Add(phases.MineralPhase("Magnesite"))
	ps.Add(phases.MineralPhase("Dolomite"))
	ps.Add(phases.MineralPhase("Quartz"))

	sys, err := NewFromPhases(ps)
	if err != nil {
		t.Fatalf("failed to assemble system: %v", err)
	}
	return sys
}

func TestAssembleFromPhasesCollection(t *testing.T) {
	sys := brineSystem(t)

	assert.Equal(t, 8, sys.NumElements())
	assert.Equal(t, 18, sys.NumSpecies())
	assert.Equal(t, 7, sys.NumPhases())

	// Elements follow the database ordering (ascending molar mass).
	assert.Equal(t, "H", sys.Element(0).Symbol)
	assert.Equal(t, "C", sys.Element(1).Symbol)
	assert.Equal(t, []string{"H", "C", "O", "Na", "Mg", "Si", "Cl", "Ca"}, sys.Elements().Symbols())

	// Species keep phase order and within-phase order.
	assert.Equal(t, "H2O(aq)", sys.SpeciesAt(0).Name)
	assert.Equal(t, "H+", sys.SpeciesAt(1).Name)
	assert.Equal(t, "H2O(g)", sys.SpeciesAt(11).Name)
	assert.Equal(t, "Quartz", sys.SpeciesAt(17).Name)

	assert.Equal(t, "AqueousPhase", sys.Phase(0).Name())
	assert.Equal(t, "GaseousPhase", sys.Phase(1).Name())
	assert.Equal(t, "Halite", sys.Phase(2).Name())

	// Species count equals the sum of phase species counts.
	total := 0
	for i := 0; i < sys.NumPhases(); i++ {
		total += len(sys.Phase(i).Species())
	}
	assert.Equal(t, sys.NumSpecies(), total)

	assert.Same(t, database.Builtin(), sys.Database())
}

func TestPhaseRanges(t *testing.T) {
	sys := brineSystem(t)

	assert.Equal(t, Range{Begin: 0, End: 11}, sys.PhaseRange(0))
	assert.Equal(t, Range{Begin: 11, End: 13}, sys.PhaseRange(1))
	assert.Equal(t, Range{Begin: 13, End: 14}, sys.PhaseRange(2))
	assert.Equal(t, Range{Begin: 17, End: 18}, sys.PhaseRange(6))
	assert.Equal(t, 2, sys.PhaseRange(1).Len())
}

func TestFormulaMatrix(t *testing.T) {
	sys := brineSystem(t)

	rows, cols := sys.FormulaMatrix().Dims()
	assert.Equal(t, sys.NumElements()+1, rows)
	assert.Equal(t, sys.NumSpecies(), cols)

	// Species:  H2O  H+  OH- Na+ Cl- Ca  Mg  HCO3 CO3 CO2 SiO2 H2Og CO2g Hal Cal Mag Dol Qtz
	want := mat.NewDense(9, 18, []float64{
		2, 1, 1, 0, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, // H
		0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 1, 0, 1, 1, 2, 0, // C
		1, 0, 1, 0, 0, 0, 0, 3, 3, 2, 2, 1, 2, 0, 3, 3, 6, 2, // O
		0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, // Na
		0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, // Mg
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1, // Si
		0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, // Cl
		0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, // Ca
		0, 1, -1, 1, -1, 2, 2, -1, -2, 0, 0, 0, 0, 0, 0, 0, 0, 0, // charge
	})
	assert.True(t, mat.Equal(want, sys.FormulaMatrix()),
		"formula matrix mismatch:\ngot:\n%v\nwant:\n%v",
		mat.Formatted(sys.FormulaMatrix()), mat.Formatted(want))

	er, ec := sys.FormulaMatrixElements().Dims()
	assert.Equal(t, 8, er)
	assert.Equal(t, 18, ec)

	charge := sys.FormulaMatrixCharge()
	assert.Equal(t, 18, charge.Len())
	assert.Equal(t, 1.0, charge.AtVec(1))
	assert.Equal(t, -2.0, charge.AtVec(8))
}

func TestAssembleVariadic(t *testing.T) {
	db := database.Builtin()

	sys, err := New(db,
		WithPhase(phases.AqueousPhase("H2O(aq) H+ OH- Na+ Cl- Ca+2 Mg+2 HCO3- CO3-2 CO2(aq) SiO2(aq)")),
		WithPhase(phases.GaseousPhase("H2O(g) CO2(g)")),
		WithPhase(phases.MineralPhase("Halite")),
		WithPhases(phases.MineralPhases("Calcite Magnesite Dolomite Quartz")),
	)
	require.NoError(t, err)

	assert.Equal(t, 8, sys.NumElements())
	assert.Equal(t, 18, sys.NumSpecies())
	assert.Equal(t, 7, sys.NumPhases())
	assert.Empty(t, sys.Reactions())
	assert.Empty(t, sys.Surfaces())
}

func TestAssembleWithReactionsAndSurfaces(t *testing.T) {
	db := database.Builtin()
	zeroRate := func(chem.ChemicalProps) float64 { return 0 }
	zeroArea := func(chem.ChemicalProps) float64 { return 0 }

	reaction1, err := db.Reaction("Halite = Na+ + Cl-")
	require.NoError(t, err)
	reaction1 = reaction1.WithRateModel(zeroRate)

	reaction2, err := db.Reaction("Calcite")
	require.NoError(t, err)
	reaction2 = reaction2.WithRateModel(zeroRate)

	general1 := reaction.NewGeneral("CO2(g) = CO2(aq)").SetRateModel(zeroRate)
	general2 := reaction.NewGeneral("HCO3- + H+ = CO2(aq) + H2O(aq)").SetRateModel(zeroRate)

	surface1 := surface.New("Surface1").WithAreaModel(zeroArea)
	surface2 := surface.NewGeneral("Surface2").SetAreaModel(zeroArea)

	// Items of different kinds interleave freely; phases keep their
	// relative order, reactions and surfaces their encounter order.
	sys, err := New(db,
		WithPhase(phases.AqueousPhase("H2O(aq) H+ OH- Na+ Cl- Ca+2 Mg+2 HCO3- CO3-2 CO2(aq) SiO2(aq)")),
		WithReaction(reaction1),
		WithPhase(phases.GaseousPhase("H2O(g) CO2(g)")),
		WithReaction(reaction2),
		WithPhase(phases.MineralPhase("Halite")),
		WithGeneralReaction(general1),
		WithSurface(surface1),
		WithPhases(phases.MineralPhases("Calcite Magnesite Dolomite Quartz")),
		WithGeneralReaction(general2),
		WithGeneralSurface(surface2),
	)
	require.NoError(t, err)

	assert.Equal(t, 8, sys.NumElements())
	assert.Equal(t, 18, sys.NumSpecies())
	assert.Equal(t, 7, sys.NumPhases())

	require.Len(t, sys.Reactions(), 4)
	assert.Equal(t, "Halite = Na+ + Cl-", sys.Reactions()[0].Name())
	assert.Equal(t, "Calcite", sys.Reactions()[1].Name())
	assert.Equal(t, "CO2(g) = CO2(aq)", sys.Reactions()[2].Name())
	assert.Equal(t, "HCO3- + H+ = CO2(aq) + H2O(aq)", sys.Reactions()[3].Name())

	require.Len(t, sys.Surfaces(), 2)
	assert.Equal(t, "Surface1", sys.Surfaces()[0].Name())
	assert.Equal(t, "Surface2", sys.Surfaces()[1].Name())
}

func TestReactionMustReferenceSystemSpecies(t *testing.T) {
	db := database.Builtin()

	r, err := db.Reaction("Halite = Na+ + Cl-")
	require.NoError(t, err)

	// The reaction references aqueous species absent from a mineral-only
	// system.
	_, err = New(db,
		WithPhase(phases.MineralPhase("Halite")),
		WithReaction(r),
	)
	require.Error(t, err)
	var resErr *ResolutionError
	assert.True(t, errors.As(err, &resErr))
	assert.Equal(t, "species", resErr.Kind)
}

func TestIDsAreStrictlyIncreasing(t *testing.T) {
	db := database.Builtin()
	var counter Counter

	var prev uint64
	for i := 0; i < 5; i++ {
		ps := phases.New(db)
		ps.Add(phases.MineralPhase("Quartz"))
		sys, err := NewFromPhasesWithCounter(&counter, ps)
		require.NoError(t, err)
		assert.Equal(t, prev+1, sys.ID(), "ids are gapless under sequential construction")
		prev = sys.ID()
	}
}

func TestIDsUnderConcurrentConstruction(t *testing.T) {
	const n = 64
	db := database.Builtin()
	var counter Counter

	ids := make([]uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			sys, err := NewWithCounter(&counter, db,
				WithPhase(phases.MineralPhase("Calcite")))
			if err != nil {
				t.Errorf("assembly failed: %v", err)
				return
			}
			ids[slot] = sys.ID()
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		assert.Equal(t, uint64(i+1), id, "ids must be distinct and gapless")
	}
}

func TestDefaultCounterIsProcessWide(t *testing.T) {
	sys1 := brineSystem(t)
	sys2 := brineSystem(t)
	assert.Greater(t, sys2.ID(), sys1.ID())
}

func TestLookups(t *testing.T) {
	sys := brineSystem(t)

	ca, err := sys.ElementWithSymbol("Ca")
	require.NoError(t, err)
	assert.Equal(t, "Calcium", ca.Name)

	_, err = sys.ElementWithSymbol("Fe")
	require.Error(t, err)
	var resErr *ResolutionError
	assert.True(t, errors.As(err, &resErr))

	i, err := sys.SpeciesIndexWithName("CO2(g)")
	require.NoError(t, err)
	assert.Equal(t, 12, i)

	sp, err := sys.SpeciesWithName("Dolomite")
	require.NoError(t, err)
	assert.Equal(t, 2.0, sp.Coefficient("C"))

	_, err = sys.SpeciesWithName("Sylvite")
	assert.Error(t, err)

	p, err := sys.PhaseWithName("Magnesite")
	require.NoError(t, err)
	assert.Equal(t, phases.Solid, p.StateOfMatter())

	_, err = sys.PhaseWithName("NoSuchPhase")
	assert.Error(t, err)
}

func TestReadsAreIdempotent(t *testing.T) {
	sys := brineSystem(t)
	name := sys.Phase(0).Name()
	for i := 0; i < 3; i++ {
		assert.Equal(t, name, sys.Phase(0).Name())
	}
	assert.Equal(t, sys.NumSpecies(), len(sys.Species()))
}

func TestAmbiguousSpeciesLookup(t *testing.T) {
	db := database.Builtin()

	// Declaring the same species in two phases is permitted, but name
	// lookups for it must report the ambiguity instead of picking one.
	sys, err := New(db,
		WithPhase(phases.MineralPhase("Calcite")),
		WithPhase(phases.MineralPhase("Calcite")),
	)
	require.NoError(t, err)
	assert.Equal(t, "Calcite", sys.Phase(0).Name())
	assert.Equal(t, "Calcite!", sys.Phase(1).Name())

	_, err = sys.SpeciesWithName("Calcite")
	require.Error(t, err)
	var ambErr *AmbiguityError
	require.True(t, errors.As(err, &ambErr))
	assert.Equal(t, []int{0, 1}, ambErr.Indices)

	// Index-based access stays exact.
	assert.Equal(t, "Calcite", sys.SpeciesAt(0).Name)
	assert.Equal(t, "Calcite", sys.SpeciesAt(1).Name)
}

func TestEmptySystemIsRejected(t *testing.T) {
	db := database.Builtin()

	_, err := NewFromPhases(phases.New(db))
	require.Error(t, err)
	var conErr *ConsistencyError
	assert.True(t, errors.As(err, &conErr))
}

func TestElementAmounts(t *testing.T) {
	db := database.Builtin()

	sys, err := New(db, WithPhase(phases.MineralPhase("Calcite")))
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "O", "Ca"}, sys.Elements().Symbols())

	b, err := sys.ElementAmounts([]float64{2})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 6, 2}, b)

	_, err = sys.ElementAmounts([]float64{1, 2})
	assert.Error(t, err)
}

func TestFluidAndSolidPhaseIndices(t *testing.T) {
	sys := brineSystem(t)
	assert.Equal(t, []int{0, 1}, sys.IndicesFluidPhases())
	assert.Equal(t, []int{2, 3, 4, 5, 6}, sys.IndicesSolidPhases())
}
