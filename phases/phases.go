package phases

import (
	"fmt"
	"strings"

	"github.com/hydrochem/chemsys/chem"
	"github.com/hydrochem/chemsys/database"
)

// Phases is an ordered collection of phase declarations bound to a single
// database. Declaration order determines phase order in the assembled
// system, and with it the global species ordering.
type Phases struct {
	db      *database.Database
	entries []entry
}

// entry is a tagged union of the two declaration kinds; exactly one field
// is non-nil.
type entry struct {
	phase *GenericPhase
	gen   *Generator
}

// New creates an empty collection bound to db.
func New(db *database.Database) *Phases {
	return &Phases{db: db}
}

// Add appends a phase declaration.
func (ps *Phases) Add(p *GenericPhase) {
	ps.entries = append(ps.entries, entry{phase: p})
}

// AddGenerator appends a multi-phase generator; the phases it expands to
// keep this position in phase order.
func (ps *Phases) AddGenerator(g *Generator) {
	ps.entries = append(ps.entries, entry{gen: g})
}

// Database returns the database the collection is bound to.
func (ps *Phases) Database() *database.Database { return ps.db }

// Len returns the number of declarations (generators count as one).
func (ps *Phases) Len() int { return len(ps.entries) }

// Convert resolves every declaration in order and returns the resolved
// phases. Duplicate phase names are made unique with "!" suffixes.
func (ps *Phases) Convert() ([]Phase, error) {
	symbols, err := ps.collectElementSymbols()
	if err != nil {
		return nil, err
	}

	var declarations []*GenericPhase
	for _, e := range ps.entries {
		if e.phase != nil {
			declarations = append(declarations, e.phase)
			continue
		}
		expanded, err := e.gen.Convert(ps.db, symbols)
		if err != nil {
			return nil, err
		}
		declarations = append(declarations, expanded...)
	}

	phases := make([]Phase, 0, len(declarations))
	for _, d := range declarations {
		phase, err := d.Convert(ps.db, symbols)
		if err != nil {
			return nil, err
		}
		phases = append(phases, phase)
	}
	uniquePhaseNames(phases)
	return phases, nil
}

// collectElementSymbols gathers the element symbols referenced anywhere in
// the collection: speciation queries, the compositions of explicitly named
// species, and H and O whenever an aqueous phase is present.
func (ps *Phases) collectElementSymbols() ([]string, error) {
	seen := make(map[string]bool)
	var symbols []string
	add := func(syms ...string) {
		for _, sym := range syms {
			if !seen[sym] {
				seen[sym] = true
				symbols = append(symbols, sym)
			}
		}
	}

	for _, e := range ps.entries {
		var names, declared []string
		aqueous := false
		if e.phase != nil {
			names, declared = e.phase.names, e.phase.symbols
			aqueous = e.phase.aggregate == chem.Aqueous
		} else {
			names, declared = e.gen.names, e.gen.symbols
		}

		add(declared...)
		if len(names) > 0 {
			syms, err := ps.db.ElementsInSpecies(names...)
			if err != nil {
				return nil, err
			}
			add(syms...)
		}
		if aqueous {
			add("H", "O")
		}
	}
	return symbols, nil
}

// uniquePhaseNames rewrites duplicate names among the resolved phases,
// suffixing the second occurrence with "!", the third with "!!", and so
// on. Renaming happens on the resolved values only; the declarations the
// caller holds are never modified and stay reusable across collections.
func uniquePhaseNames(phases []Phase) {
	count := make(map[string]int)
	for i := range phases {
		n := count[phases[i].name]
		count[phases[i].name] = n + 1
		if n > 0 {
			phases[i].name = fmt.Sprintf("%s%s", phases[i].name, strings.Repeat("!", n))
		}
	}
}
