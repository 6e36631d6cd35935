package basemap

import (
	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/projection"
)

type drawOptions struct {
	ax         Axes
	resolution string
	style      feature.Style
	transform  projection.Projection
	levels     []float64
}

// Option overrides a Map default for a single call.
type Option func(*drawOptions)

// WithAxes draws on ax instead of the Map's axes.
func WithAxes(ax Axes) Option {
	return func(o *drawOptions) { o.ax = ax }
}

// WithResolution overrides the Map's default boundary resolution.
func WithResolution(res string) Option {
	return func(o *drawOptions) { o.resolution = res }
}

// WithStyle overrides the non-zero fields of the default feature style.
func WithStyle(s feature.Style) Option {
	return func(o *drawOptions) {
		if s.LineWidth != 0 {
			o.style.LineWidth = s.LineWidth
		}
		if s.LineStyle != "" {
			o.style.LineStyle = s.LineStyle
		}
		if s.EdgeColor != "" {
			o.style.EdgeColor = s.EdgeColor
		}
		if s.FaceColor != "" {
			o.style.FaceColor = s.FaceColor
		}
	}
}

// WithTransform sets the projection data coordinates are given in.
func WithTransform(p projection.Projection) Option {
	return func(o *drawOptions) { o.transform = p }
}

// WithLevels sets explicit contour levels.
func WithLevels(levels ...float64) Option {
	return func(o *drawOptions) { o.levels = levels }
}
