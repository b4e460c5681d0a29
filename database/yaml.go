package database

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hydrochem/chemsys/chem"
)

// databaseFile is the YAML shape of a database file.
type databaseFile struct {
	Elements []elementRecord `yaml:"elements"`
	Species  []speciesRecord `yaml:"species"`
}

type elementRecord struct {
	Symbol    string  `yaml:"symbol"`
	Name      string  `yaml:"name"`
	MolarMass float64 `yaml:"molar_mass"` // kg/mol
}

type speciesRecord struct {
	Name    string   `yaml:"name"`
	Formula string   `yaml:"formula"`
	State   string   `yaml:"state"`
	Tags    []string `yaml:"tags"`
}

// Parse builds a Database from YAML data. Species formulas are parsed and
// validated against the element records; any unknown element symbol or
// malformed formula fails the whole load.
func Parse(data []byte) (*Database, error) {
	var file databaseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing database: %w", err)
	}
	if len(file.Elements) == 0 {
		return nil, fmt.Errorf("parsing database: no elements declared")
	}

	elements := make([]chem.Element, 0, len(file.Elements))
	for _, rec := range file.Elements {
		if rec.Symbol == "" {
			return nil, fmt.Errorf("parsing database: element with empty symbol")
		}
		elements = append(elements, chem.Element{
			Symbol:    rec.Symbol,
			Name:      rec.Name,
			MolarMass: rec.MolarMass,
		})
	}

	species := make([]chem.Species, 0, len(file.Species))
	for _, rec := range file.Species {
		formula, err := chem.ParseFormula(rec.Formula)
		if err != nil {
			return nil, fmt.Errorf("parsing database species %q: %w", rec.Name, err)
		}
		state, err := chem.ParseAggregateState(rec.State)
		if err != nil {
			return nil, fmt.Errorf("parsing database species %q: %w", rec.Name, err)
		}
		species = append(species, chem.Species{
			Name:           rec.Name,
			Formula:        formula,
			AggregateState: state,
			Tags:           rec.Tags,
		})
	}
	return New(elements, species)
}

// Load builds a Database from a YAML stream.
func Load(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading database: %w", err)
	}
	return Parse(data)
}

// LoadFile builds a Database from a YAML file.
func LoadFile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading database file: %w", err)
	}
	return Parse(data)
}

//go:embed builtin.yaml
var builtinYAML []byte

var (
	builtinOnce sync.Once
	builtinDB   *Database
)

// Builtin returns the embedded catalog of common aqueous, gaseous, mineral
// and adsorbed species. The returned Database is shared; it is read-only
// and safe for concurrent use.
func Builtin() *Database {
	builtinOnce.Do(func() {
		db, err := Parse(builtinYAML)
		if err != nil {
			panic(fmt.Sprintf("built-in database is corrupt: %v", err))
		}
		builtinDB = db
	})
	return builtinDB
}
