package system

import "fmt"

// ResolutionError reports a declared name that does not resolve against
// the database or the assembled system.
type ResolutionError struct {
	Kind string // "species", "element" or "phase"
	Name string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no %s with name %q in system", e.Kind, e.Name)
}

// AmbiguityError reports a name lookup matching more than one entry, which
// happens when the same species was declared in two phases.
type AmbiguityError struct {
	Kind    string
	Name    string
	Indices []int
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("%s name %q is ambiguous: matches indices %v", e.Kind, e.Name, e.Indices)
}

// ConsistencyError reports an assembly producing a structurally unusable
// system, such as zero species or zero elements.
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent chemical system: %s", e.Msg)
}
