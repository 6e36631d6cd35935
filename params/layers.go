package params

import "github.com/rotblauer/geomap/s2"

type LayerConfig struct {
	// CoordinatePrecision is the number of decimal places kept for lon/lat output.
	CoordinatePrecision int32

	// ThinLevel keeps at most one vector glyph per S2 cell at this level.
	// Zero disables thinning.
	ThinLevel s2.CellLevel

	// ContourLevels is the number of levels derived from data
	// when a contour call does not give any.
	ContourLevels int
}

func DefaultLayerConfig() *LayerConfig {
	return &LayerConfig{
		CoordinatePrecision: 5,
		ThinLevel:           0,
		ContourLevels:       10,
	}
}
