package system

import (
	"github.com/hydrochem/chemsys/phases"
	"github.com/hydrochem/chemsys/reaction"
	"github.com/hydrochem/chemsys/surface"
)

// ItemKind tags the variant held by an Item.
type ItemKind uint8

const (
	KindPhase ItemKind = iota
	KindPhaseGenerator
	KindReaction
	KindGeneralReaction
	KindSurface
	KindGeneralSurface
)

// Item is one argument of the variadic constructor: a closed tagged
// variant over phase, reaction and surface declarations. The assembler
// partitions items by kind, preserving the relative order of phases (which
// fixes species indexing) and the encounter order of reactions and
// surfaces.
type Item struct {
	kind ItemKind

	phase   *phases.GenericPhase
	gen     *phases.Generator
	rxn     reaction.Reaction
	genRxn  *reaction.GeneralReaction
	surf    surface.Surface
	genSurf *surface.GeneralSurface
}

// Kind returns the variant tag of the item.
func (it Item) Kind() ItemKind { return it.kind }

// WithPhase wraps a phase declaration.
func WithPhase(p *phases.GenericPhase) Item {
	return Item{kind: KindPhase, phase: p}
}

// WithPhases wraps a multi-phase generator such as phases.MineralPhases;
// the phases it expands to keep its position in phase order.
func WithPhases(g *phases.Generator) Item {
	return Item{kind: KindPhaseGenerator, gen: g}
}

// WithReaction wraps a database-resolved reaction.
func WithReaction(r reaction.Reaction) Item {
	return Item{kind: KindReaction, rxn: r}
}

// WithGeneralReaction wraps an unresolved reaction declaration.
func WithGeneralReaction(g *reaction.GeneralReaction) Item {
	return Item{kind: KindGeneralReaction, genRxn: g}
}

// WithSurface wraps a reactive surface.
func WithSurface(s surface.Surface) Item {
	return Item{kind: KindSurface, surf: s}
}

// WithGeneralSurface wraps an unresolved surface declaration.
func WithGeneralSurface(g *surface.GeneralSurface) Item {
	return Item{kind: KindGeneralSurface, genSurf: g}
}
