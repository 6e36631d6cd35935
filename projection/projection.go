package projection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Projection transforms lon/lat points into a map coordinate system.
type Projection interface {
	Name() string
	Project(pt orb.Point) orb.Point
}

var ErrUnknownProjection = errors.New("unknown projection")

type plateCarree struct{}

func (plateCarree) Name() string                   { return "PlateCarree" }
func (plateCarree) Project(pt orb.Point) orb.Point { return pt }

type mercator struct{}

func (mercator) Name() string { return "Mercator" }

// Project returns spherical (web) Mercator meters.
func (mercator) Project(pt orb.Point) orb.Point {
	return project.Point(pt, project.WGS84.ToMercator)
}

var (
	PlateCarree Projection = plateCarree{}
	Mercator    Projection = mercator{}
)

var registry = map[string]Projection{
	"platecarree": PlateCarree,
	"mercator":    Mercator,
}

// Lookup returns the projection with the given name, case-insensitively.
func Lookup(name string) (Projection, error) {
	p, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjection, name)
	}
	return p, nil
}
