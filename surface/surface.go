// Package surface defines reactive surface declarations used for surface
// complexation chemistry.
package surface

import "github.com/hydrochem/chemsys/chem"

// AreaModel computes a surface area (m2) from system properties. Area
// models are invoked later by the property evaluation engine, possibly
// from multiple goroutines; they must not retain or mutate the snapshot.
type AreaModel func(chem.ChemicalProps) float64

// Site is a named sorption site on a reactive surface.
type Site struct {
	Name   string
	Amount float64 // mol
}

// Surface is a reactive surface with an attached area model and optional
// sorption sites. Surfaces are value types; the With* methods return
// modified copies.
type Surface struct {
	name  string
	area  AreaModel
	sites []Site
}

// New builds a Surface with the given name.
func New(name string) Surface {
	return Surface{name: name}
}

// WithName returns a copy of the surface with the given name.
func (s Surface) WithName(name string) Surface {
	s.name = name
	return s
}

// WithAreaModel returns a copy of the surface with the given area model.
func (s Surface) WithAreaModel(model AreaModel) Surface {
	s.area = model
	return s
}

// WithSite returns a copy of the surface with the given site appended.
func (s Surface) WithSite(site Site) Surface {
	s.sites = append(append([]Site(nil), s.sites...), site)
	return s
}

// Name returns the name of the surface.
func (s Surface) Name() string { return s.name }

// Sites returns the sorption sites of the surface.
func (s Surface) Sites() []Site { return s.sites }

// AreaModel returns the attached area model, or nil if none was set.
func (s Surface) AreaModel() AreaModel { return s.area }

// Area evaluates the area model for the given properties. It returns zero
// if no area model is attached.
func (s Surface) Area(props chem.ChemicalProps) float64 {
	if s.area == nil {
		return 0
	}
	return s.area(props)
}

// GeneralSurface is a fluent surface declaration, resolved into a Surface
// during system assembly.
type GeneralSurface struct {
	name  string
	area  AreaModel
	sites []Site
}

// NewGeneral builds a GeneralSurface with the given name.
func NewGeneral(name string) *GeneralSurface {
	return &GeneralSurface{name: name}
}

// SetName sets the surface name and returns the receiver.
func (g *GeneralSurface) SetName(name string) *GeneralSurface {
	g.name = name
	return g
}

// SetAreaModel sets the area model and returns the receiver.
func (g *GeneralSurface) SetAreaModel(model AreaModel) *GeneralSurface {
	g.area = model
	return g
}

// AddSite appends a sorption site and returns the receiver.
func (g *GeneralSurface) AddSite(name string, amount float64) *GeneralSurface {
	g.sites = append(g.sites, Site{Name: name, Amount: amount})
	return g
}

// Name returns the declared name.
func (g *GeneralSurface) Name() string { return g.name }

// Convert returns the resolved Surface.
func (g *GeneralSurface) Convert() Surface {
	return Surface{name: g.name, area: g.area, sites: append([]Site(nil), g.sites...)}
}
