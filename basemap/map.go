package basemap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/hemisphere"
	"github.com/rotblauer/geomap/metrics"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/projection"
	"github.com/rotblauer/geomap/resolution"
	"gonum.org/v1/gonum/mat"
)

var ErrNoAxes = errors.New("no axes to draw on")

// Map is a Basemap-like wrapper around an Axes.
// It resolves boundary resolutions, applies default styles,
// and splits vector fields by hemisphere before handing them on.
type Map struct {
	config     *params.MapConfig
	projection projection.Projection
	transform  projection.Projection
	ax         Axes
	logger     *slog.Logger
}

// New returns a Map drawing on ax, which may be nil if every call passes WithAxes.
func New(config *params.MapConfig, ax Axes) (*Map, error) {
	if config == nil {
		config = params.DefaultMapConfig()
	}
	proj, err := projection.Lookup(config.Projection)
	if err != nil {
		return nil, err
	}
	transform, err := projection.Lookup(config.DataTransform)
	if err != nil {
		return nil, fmt.Errorf("data transform: %w", err)
	}
	return &Map{
		config:     config,
		projection: proj,
		transform:  transform,
		ax:         ax,
		logger:     slog.With("map", proj.Name()),
	}, nil
}

func (m *Map) Projection() projection.Projection {
	return m.projection
}

func (m *Map) options(kind feature.Kind, opts []Option) *drawOptions {
	o := &drawOptions{
		ax:         m.ax,
		resolution: m.config.Resolution,
		style:      feature.DefaultStyle(kind),
		transform:  m.transform,
	}
	if kind.IsCounties() {
		o.resolution = m.config.CountiesResolution
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Resolve converts a resolution token to a concrete scale,
// honoring the map's strict setting.
func (m *Map) Resolve(token string, forCounties bool) (string, error) {
	metrics.ResolutionsResolved.Inc(1)
	if m.config.StrictResolution {
		return resolution.ResolveStrict(token, forCounties)
	}
	return resolution.Resolve(token, forCounties), nil
}

func (m *Map) drawFeature(kind feature.Kind, opts []Option) (Artist, error) {
	o := m.options(kind, opts)
	if o.ax == nil {
		return nil, ErrNoAxes
	}
	scale, err := m.Resolve(o.resolution, kind.IsCounties())
	if err != nil {
		return nil, err
	}
	spec, err := feature.WithScale(kind, scale)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("Add feature", "feature", spec, "token", o.resolution)
	return o.ax.AddFeature(spec, o.style)
}

// Draw adds any boundary or fill feature by kind.
func (m *Map) Draw(kind feature.Kind, opts ...Option) (Artist, error) {
	return m.drawFeature(kind, opts)
}

func (m *Map) DrawCoastlines(opts ...Option) (Artist, error) {
	return m.drawFeature(feature.Coastline, opts)
}

func (m *Map) DrawCountries(opts ...Option) (Artist, error) {
	return m.drawFeature(feature.Borders, opts)
}

func (m *Map) DrawStates(opts ...Option) (Artist, error) {
	return m.drawFeature(feature.States, opts)
}

func (m *Map) FillOceans(opts ...Option) (Artist, error) {
	return m.drawFeature(feature.Ocean, opts)
}

func (m *Map) FillLakes(opts ...Option) (Artist, error) {
	return m.drawFeature(feature.Lakes, opts)
}

func (m *Map) FillContinents(opts ...Option) (Artist, error) {
	return m.drawFeature(feature.Land, opts)
}

// DrawCounties draws US county borders, at low resolution unless told otherwise.
func (m *Map) DrawCounties(opts ...Option) (Artist, error) {
	return m.drawFeature(feature.Counties, opts)
}

// Colorbar attaches a colorbar for mappable at location.
func (m *Map) Colorbar(mappable Artist, location, size, pad string, opts ...Option) (Artist, error) {
	o := m.options("", opts)
	if o.ax == nil {
		return nil, ErrNoAxes
	}
	cb, err := NewColorbar(location, size, pad)
	if err != nil {
		return nil, err
	}
	return o.ax.Colorbar(mappable, cb)
}

func shaped(lon, lat hemisphere.Axis, grids ...*mat.Dense) (x, y *mat.Dense, err error) {
	x, y, err = hemisphere.Mesh(lon, lat)
	if err != nil {
		return nil, nil, err
	}
	r, c := y.Dims()
	for _, g := range grids {
		if g == nil {
			return nil, nil, fmt.Errorf("%w: missing grid", hemisphere.ErrShapeMismatch)
		}
		if gr, gc := g.Dims(); gr != r || gc != c {
			return nil, nil, fmt.Errorf("%w: got (%d,%d), lat is (%d,%d)",
				hemisphere.ErrShapeMismatch, gr, gc, r, c)
		}
	}
	return x, y, nil
}

func (m *Map) contour(lon, lat hemisphere.Axis, data *mat.Dense, filled bool, opts []Option) (Artist, error) {
	o := m.options("", opts)
	if o.ax == nil {
		return nil, ErrNoAxes
	}
	x, y, err := shaped(lon, lat, data)
	if err != nil {
		return nil, err
	}
	return o.ax.Contour(Field{Lon: x, Lat: y, Data: data}, o.levels, filled, o.transform)
}

// Contour draws contour lines of data over lon/lat.
func (m *Map) Contour(lon, lat hemisphere.Axis, data *mat.Dense, opts ...Option) (Artist, error) {
	return m.contour(lon, lat, data, false, opts)
}

// Contourf draws filled contours of data over lon/lat.
func (m *Map) Contourf(lon, lat hemisphere.Axis, data *mat.Dense, opts ...Option) (Artist, error) {
	return m.contour(lon, lat, data, true, opts)
}

// Quiver draws arrows for u/v over lon/lat.
func (m *Map) Quiver(lon, lat hemisphere.Axis, u, v *mat.Dense, opts ...Option) (Artist, error) {
	o := m.options("", opts)
	if o.ax == nil {
		return nil, ErrNoAxes
	}
	x, y, err := shaped(lon, lat, u, v)
	if err != nil {
		return nil, err
	}
	return o.ax.Quiver(VectorField{Lon: x, Lat: y, U: u, V: v}, o.transform)
}

// Barbs draws wind barbs for u/v over lon/lat,
// once per hemisphere, with southern barbs flipped.
func (m *Map) Barbs(lon, lat hemisphere.Axis, u, v *mat.Dense, opts ...Option) (north, south Artist, err error) {
	o := m.options("", opts)
	if o.ax == nil {
		return nil, nil, ErrNoAxes
	}
	split, err := hemisphere.SplitVectors(lon, lat, u, v)
	if err != nil {
		return nil, nil, err
	}
	metrics.VectorSplits.Inc(1)
	r, c := split.Lat.Dims()
	metrics.MaskedCells.Inc(int64(2*r*c - hemisphere.Count(split.North.U) - hemisphere.Count(split.South.U)))

	north, err = o.ax.Barbs(halfField(split, split.North), o.transform)
	if err != nil {
		return nil, nil, err
	}
	south, err = o.ax.Barbs(halfField(split, split.South), o.transform)
	if err != nil {
		return north, nil, err
	}
	return north, south, nil
}
