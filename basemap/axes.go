package basemap

import (
	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/hemisphere"
	"github.com/rotblauer/geomap/projection"
	"gonum.org/v1/gonum/mat"
)

// Artist is whatever handle an Axes returns for something it drew.
type Artist any

// Field is a scalar field over mesh-expanded lon/lat grids.
type Field struct {
	Lon, Lat *mat.Dense
	Data     *mat.Dense
}

// VectorField is a vector field over mesh-expanded lon/lat grids.
type VectorField struct {
	Lon, Lat *mat.Dense
	U, V     *mat.Dense

	// Flip mirrors barb glyphs.
	Flip bool
}

// Axes draws on a map canvas.
// Implementations own all rendering; Map only translates parameters.
type Axes interface {
	AddFeature(spec feature.Spec, style feature.Style) (Artist, error)
	Contour(field Field, levels []float64, filled bool, transform projection.Projection) (Artist, error)
	Barbs(field VectorField, transform projection.Projection) (Artist, error)
	Quiver(field VectorField, transform projection.Projection) (Artist, error)
	Colorbar(mappable Artist, cb Colorbar) (Artist, error)
}

func halfField(s *hemisphere.Split, h hemisphere.Half) VectorField {
	return VectorField{Lon: s.Lon, Lat: s.Lat, U: h.U, V: h.V, Flip: h.Flip}
}
