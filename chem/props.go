package chem

// ChemicalProps is a snapshot of system properties handed to rate and
// surface area model callbacks. Callbacks treat it as read-only; the
// evaluation engine that produces it may invoke them from any goroutine.
type ChemicalProps struct {
	Temperature float64 // K
	Pressure    float64 // Pa

	// Amounts holds species amounts in mol, keyed by species name.
	Amounts map[string]float64

	// Extra holds additional named scalars (pH, ionic strength, ...)
	// published by the property evaluator.
	Extra map[string]float64
}

// Amount returns the amount of the named species in mol, or zero if the
// snapshot does not carry it.
func (p ChemicalProps) Amount(name string) float64 {
	return p.Amounts[name]
}
