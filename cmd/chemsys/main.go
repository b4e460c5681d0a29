// Package main provides the chemsys binary: a small inspector that
// assembles a chemical system from a database and phase declarations and
// prints its structure.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hydrochem/chemsys/database"
	"github.com/hydrochem/chemsys/phases"
	"github.com/hydrochem/chemsys/system"
)

var log = logrus.New()

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chemsys",
		Short: "Assemble and inspect chemical system models",
	}
	cmd.AddCommand(inspectCmd())
	return cmd
}

func inspectCmd() *cobra.Command {
	var (
		dbFile   string
		aqueous  string
		gaseous  string
		minerals string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Assemble a system from phase declarations and print its structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			db, err := loadDatabase(dbFile)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"elements": len(db.Elements()),
				"species":  len(db.Species()),
			}).Debug("database loaded")

			var items []system.Item
			if aqueous != "" {
				items = append(items, system.WithPhase(phases.AqueousPhase(aqueous)))
			}
			if gaseous != "" {
				items = append(items, system.WithPhase(phases.GaseousPhase(gaseous)))
			}
			if minerals != "" {
				items = append(items, system.WithPhases(phases.MineralPhases(minerals)))
			}
			if len(items) == 0 {
				return fmt.Errorf("no phases declared; use --aqueous, --gaseous or --minerals")
			}

			sys, err := system.New(db, items...)
			if err != nil {
				return err
			}
			printSystem(cmd, sys)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbFile, "database", "", "database YAML file (default: built-in catalog)")
	cmd.Flags().StringVar(&aqueous, "aqueous", "", "space-separated aqueous species names")
	cmd.Flags().StringVar(&gaseous, "gaseous", "", "space-separated gaseous species names")
	cmd.Flags().StringVar(&minerals, "minerals", "", "space-separated mineral names, one phase each")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func loadDatabase(path string) (*database.Database, error) {
	if path == "" {
		return database.Builtin(), nil
	}
	return database.LoadFile(path)
}

func printSystem(cmd *cobra.Command, sys *system.ChemicalSystem) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "system id: %d\n", sys.ID())
	fmt.Fprintf(out, "elements:  %d  (%s)\n", sys.NumElements(), strings.Join(sys.Elements().Symbols(), " "))
	fmt.Fprintf(out, "species:   %d\n", sys.NumSpecies())
	fmt.Fprintf(out, "phases:    %d\n", sys.NumPhases())

	for i, p := range sys.Phases() {
		r := sys.PhaseRange(i)
		fmt.Fprintf(out, "  [%d] %-24s %-7s species %d..%d: %s\n",
			i, p.Name(), p.StateOfMatter(), r.Begin, r.End-1,
			strings.Join(p.Species().Names(), " "))
	}

	rows, cols := sys.FormulaMatrix().Dims()
	fmt.Fprintf(out, "formula matrix: %d x %d (last row: charge)\n", rows, cols)
}
