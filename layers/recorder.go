package layers

import (
	"log/slog"
	"math"
	"sync"

	"github.com/montanaflynn/stats"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/geomap/basemap"
	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/metrics"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/projection"
	"github.com/rotblauer/geomap/s2"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"
)

// Layer is the Artist handle the Recorder returns.
type Layer struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

const (
	KindFeature  = "feature"
	KindContour  = "contour"
	KindContourf = "contourf"
	KindBarbs    = "barbs"
	KindQuiver   = "quiver"
	KindColorbar = "colorbar"
)

type featureEntry struct {
	Layer int `json:"layer"`
	feature.Spec
	Source feature.Source `json:"source"`
	Filled bool           `json:"filled"`
	Style  feature.Style  `json:"style"`
}

type contourEntry struct {
	Layer  int       `json:"layer"`
	Filled bool      `json:"filled"`
	Levels []float64 `json:"levels"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
}

type colorbarEntry struct {
	Layer    int `json:"layer"`
	Mappable int `json:"mappable"`
	basemap.Colorbar
}

// Recorder is an Axes that records what it is asked to draw as GeoJSON.
// Glyph and contour samples become Point features in the map projection;
// everything else is kept as foreign members of the collection.
type Recorder struct {
	config     *params.LayerConfig
	projection projection.Projection
	logger     *slog.Logger

	mu        sync.Mutex
	layers    []Layer
	collected []*geojson.Feature
	features  []featureEntry
	contours  []contourEntry
	colorbars []colorbarEntry
}

var _ basemap.Axes = (*Recorder)(nil)

// NewRecorder records in the given map projection.
func NewRecorder(proj projection.Projection, config *params.LayerConfig) *Recorder {
	if proj == nil {
		proj = projection.PlateCarree
	}
	if config == nil {
		config = params.DefaultLayerConfig()
	}
	return &Recorder{
		config:     config,
		projection: proj,
		logger:     slog.With("d", "layers"),
	}
}

func (r *Recorder) nextLayer(kind string, count int) Layer {
	l := Layer{Index: len(r.layers), Kind: kind, Count: count}
	r.layers = append(r.layers, l)
	return l
}

func (r *Recorder) round(x float64) float64 {
	out, _ := decimal.NewFromFloat(x).Round(r.config.CoordinatePrecision).Float64()
	return out
}

// place takes a data point given in transform to the map projection.
// Data given in anything but lon/lat is assumed to already be in map coordinates.
// Points that are not finite after projection cannot be placed.
func (r *Recorder) place(pt orb.Point, transform projection.Projection) (orb.Point, bool) {
	if transform != nil && transform != projection.PlateCarree {
		return pt, finitePoint(pt)
	}
	out := r.projection.Project(pt)
	if !finitePoint(out) {
		return orb.Point{}, false
	}
	return orb.Point{r.round(out[0]), r.round(out[1])}, true
}

func finitePoint(pt orb.Point) bool {
	for _, x := range pt {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (r *Recorder) AddFeature(spec feature.Spec, style feature.Style) (basemap.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := r.nextLayer(KindFeature, 1)
	r.features = append(r.features, featureEntry{
		Layer:  l.Index,
		Spec:   spec,
		Source: spec.Kind.Source(),
		Filled: spec.Kind.Filled(),
		Style:  style,
	})
	metrics.FeaturesRecorded.Inc(1)
	return l, nil
}

func finite(m *mat.Dense) []float64 {
	var out []float64
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if x := m.At(i, j); !math.IsNaN(x) && !math.IsInf(x, 0) {
				out = append(out, x)
			}
		}
	}
	return out
}

// Levels returns n levels at evenly spaced percentiles of the finite values in data.
// Duplicate levels are dropped.
func Levels(data *mat.Dense, n int) []float64 {
	values := stats.Float64Data(finite(data))
	if len(values) == 0 || n <= 0 {
		return nil
	}
	var levels []float64
	for k := 1; k <= n; k++ {
		p, err := stats.Percentile(values, 100*float64(k)/float64(n+1))
		if err != nil {
			continue
		}
		if len(levels) > 0 && levels[len(levels)-1] == p {
			continue
		}
		levels = append(levels, p)
	}
	return levels
}

func (r *Recorder) Contour(field basemap.Field, levels []float64, filled bool, transform projection.Projection) (basemap.Artist, error) {
	if len(levels) == 0 {
		levels = Levels(field.Data, r.config.ContourLevels)
	}
	values := stats.Float64Data(finite(field.Data))
	lo, _ := values.Min()
	hi, _ := values.Max()

	kind := KindContour
	if filled {
		kind = KindContourf
	}

	var samples []*geojson.Feature
	rows, cols := field.Data.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x := field.Data.At(i, j)
			if math.IsNaN(x) {
				continue
			}
			pt, ok := r.place(orb.Point{field.Lon.At(i, j), field.Lat.At(i, j)}, transform)
			if !ok {
				continue
			}
			f := geojson.NewFeature(pt)
			f.Properties["value"] = x
			samples = append(samples, f)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	l := r.nextLayer(kind, len(samples))
	for _, f := range samples {
		f.Properties["layer"] = l.Index
		f.Properties["kind"] = kind
	}
	r.collected = append(r.collected, samples...)
	r.contours = append(r.contours, contourEntry{
		Layer:  l.Index,
		Filled: filled,
		Levels: levels,
		Min:    lo,
		Max:    hi,
	})
	return l, nil
}

func (r *Recorder) glyphs(kind string, field basemap.VectorField, transform projection.Projection) (basemap.Artist, error) {
	var thinner *s2.Thinner
	if r.config.ThinLevel > 0 && r.config.ThinLevel.Valid() {
		thinner = s2.NewThinner(r.config.ThinLevel)
	}

	var glyphs []*geojson.Feature
	rows, cols := field.U.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			u, v := field.U.At(i, j), field.V.At(i, j)
			if math.IsNaN(u) || math.IsNaN(v) {
				continue
			}
			pt := orb.Point{field.Lon.At(i, j), field.Lat.At(i, j)}
			placed, ok := r.place(pt, transform)
			if !ok {
				continue
			}
			f := geojson.NewFeature(placed)
			if thinner != nil {
				token, ok := thinner.Admit(pt)
				if !ok {
					continue
				}
				f.Properties["s2_cell"] = token
			}
			f.Properties["u"] = u
			f.Properties["v"] = v
			f.Properties["speed"] = math.Hypot(u, v)
			if kind == KindBarbs {
				f.Properties["flip"] = field.Flip
			}
			glyphs = append(glyphs, f)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	l := r.nextLayer(kind, len(glyphs))
	for _, f := range glyphs {
		f.Properties["layer"] = l.Index
		f.Properties["kind"] = kind
	}
	r.collected = append(r.collected, glyphs...)
	metrics.GlyphsRecorded.Inc(int64(len(glyphs)))
	r.logger.Debug("Recorded glyphs", "kind", kind, "n", len(glyphs), "flip", field.Flip)
	return l, nil
}

func (r *Recorder) Barbs(field basemap.VectorField, transform projection.Projection) (basemap.Artist, error) {
	return r.glyphs(KindBarbs, field, transform)
}

func (r *Recorder) Quiver(field basemap.VectorField, transform projection.Projection) (basemap.Artist, error) {
	return r.glyphs(KindQuiver, field, transform)
}

// Colorbar records a colorbar for mappable, which should be a Layer from this Recorder.
// Anything else attaches to the most recent layer, the way a "current image" would.
func (r *Recorder) Colorbar(mappable basemap.Artist, cb basemap.Colorbar) (basemap.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	target := len(r.layers) - 1
	if l, ok := mappable.(Layer); ok {
		target = l.Index
	}
	l := r.nextLayer(KindColorbar, 1)
	r.colorbars = append(r.colorbars, colorbarEntry{Layer: l.Index, Mappable: target, Colorbar: cb})
	return l, nil
}

// Layers returns the recorded layer handles in draw order.
func (r *Recorder) Layers() []Layer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Layer(nil), r.layers...)
}

// Collection returns everything recorded so far as a FeatureCollection.
func (r *Recorder) Collection() *geojson.FeatureCollection {
	r.mu.Lock()
	defer r.mu.Unlock()
	fc := geojson.NewFeatureCollection()
	fc.Features = append(fc.Features, r.collected...)
	fc.ExtraMembers = geojson.Properties{
		"projection": r.projection.Name(),
		"layers":     append([]Layer(nil), r.layers...),
		"boundaries": append([]featureEntry(nil), r.features...),
		"contours":   append([]contourEntry(nil), r.contours...),
		"colorbars":  append([]colorbarEntry(nil), r.colorbars...),
	}
	return fc
}
