package basemap

import (
	"errors"
	"math"
	"testing"

	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/hemisphere"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/projection"
	"github.com/rotblauer/geomap/resolution"
	"gonum.org/v1/gonum/mat"
)

type call struct {
	name      string
	spec      feature.Spec
	style     feature.Style
	field     VectorField
	levels    []float64
	filled    bool
	colorbar  Colorbar
	transform projection.Projection
}

type fakeAxes struct {
	calls []call
}

func (f *fakeAxes) AddFeature(spec feature.Spec, style feature.Style) (Artist, error) {
	f.calls = append(f.calls, call{name: "feature", spec: spec, style: style})
	return len(f.calls), nil
}

func (f *fakeAxes) Contour(field Field, levels []float64, filled bool, transform projection.Projection) (Artist, error) {
	f.calls = append(f.calls, call{name: "contour", levels: levels, filled: filled, transform: transform})
	return len(f.calls), nil
}

func (f *fakeAxes) Barbs(field VectorField, transform projection.Projection) (Artist, error) {
	f.calls = append(f.calls, call{name: "barbs", field: field, transform: transform})
	return len(f.calls), nil
}

func (f *fakeAxes) Quiver(field VectorField, transform projection.Projection) (Artist, error) {
	f.calls = append(f.calls, call{name: "quiver", field: field, transform: transform})
	return len(f.calls), nil
}

func (f *fakeAxes) Colorbar(mappable Artist, cb Colorbar) (Artist, error) {
	f.calls = append(f.calls, call{name: "colorbar", colorbar: cb})
	return len(f.calls), nil
}

func newTestMap(t *testing.T, config *params.MapConfig) (*Map, *fakeAxes) {
	t.Helper()
	ax := &fakeAxes{}
	m, err := New(config, ax)
	if err != nil {
		t.Fatal(err)
	}
	return m, ax
}

func TestDrawFeatureScales(t *testing.T) {
	m, ax := newTestMap(t, nil)

	draws := []struct {
		draw func(...Option) (Artist, error)
		opts []Option
		want feature.Spec
	}{
		{m.DrawCoastlines, nil, feature.Spec{Kind: feature.Coastline, Scale: "50m"}},
		{m.DrawCountries, []Option{WithResolution("l")}, feature.Spec{Kind: feature.Borders, Scale: "110m"}},
		{m.DrawStates, []Option{WithResolution("h")}, feature.Spec{Kind: feature.States, Scale: "10m"}},
		{m.FillOceans, []Option{WithResolution("110m")}, feature.Spec{Kind: feature.Ocean, Scale: "110m"}},
		{m.FillLakes, nil, feature.Spec{Kind: feature.Lakes, Scale: "50m"}},
		{m.FillContinents, []Option{WithResolution("bogus")}, feature.Spec{Kind: feature.Land, Scale: "50m"}},
		{m.DrawCounties, nil, feature.Spec{Kind: feature.Counties, Scale: "20m"}},
		{m.DrawCounties, []Option{WithResolution("h")}, feature.Spec{Kind: feature.Counties, Scale: "500k"}},
	}
	for i, d := range draws {
		if _, err := d.draw(d.opts...); err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		if got := ax.calls[i].spec; got != d.want {
			t.Errorf("%d: got %v, want %v", i, got, d.want)
		}
	}
}

func TestDrawFeatureStyle(t *testing.T) {
	m, ax := newTestMap(t, nil)
	if _, err := m.DrawStates(WithStyle(feature.Style{EdgeColor: "r"})); err != nil {
		t.Fatal(err)
	}
	got := ax.calls[0].style
	if got.EdgeColor != "r" || got.LineWidth != 0.7 || got.LineStyle != "solid" {
		t.Errorf("got %+v", got)
	}
}

func TestDrawFeatureUnavailableScale(t *testing.T) {
	m, _ := newTestMap(t, nil)
	if _, err := m.DrawCounties(WithResolution("10m")); !errors.Is(err, feature.ErrUnavailableScale) {
		t.Errorf("got %v, want ErrUnavailableScale", err)
	}
}

func TestStrictResolution(t *testing.T) {
	config := params.DefaultMapConfig()
	config.StrictResolution = true
	m, _ := newTestMap(t, config)
	if _, err := m.DrawCoastlines(WithResolution("xyz")); !errors.Is(err, resolution.ErrUnknownToken) {
		t.Errorf("got %v, want ErrUnknownToken", err)
	}
	if _, err := m.DrawCoastlines(WithResolution("h")); err != nil {
		t.Errorf("got %v", err)
	}
}

func TestNoAxes(t *testing.T) {
	m, err := New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.DrawCoastlines(); !errors.Is(err, ErrNoAxes) {
		t.Errorf("got %v, want ErrNoAxes", err)
	}
	ax := &fakeAxes{}
	if _, err := m.DrawCoastlines(WithAxes(ax)); err != nil {
		t.Fatal(err)
	}
	if len(ax.calls) != 1 {
		t.Errorf("got %d calls, want 1", len(ax.calls))
	}
}

func TestNewUnknownProjection(t *testing.T) {
	config := params.DefaultMapConfig()
	config.Projection = "Nope"
	if _, err := New(config, nil); !errors.Is(err, projection.ErrUnknownProjection) {
		t.Errorf("got %v, want ErrUnknownProjection", err)
	}
}

func TestColorbar(t *testing.T) {
	m, ax := newTestMap(t, nil)
	if _, err := m.Colorbar(nil, "bottom", "", ""); err != nil {
		t.Fatal(err)
	}
	cb := ax.calls[0].colorbar
	if cb.Orientation != Horizontal || !cb.PackStart || cb.Size != "3%" || cb.Pad != "1%" {
		t.Errorf("got %+v", cb)
	}
	if _, err := m.Colorbar(nil, "middle", "", ""); !errors.Is(err, ErrImproperLocation) {
		t.Errorf("got %v, want ErrImproperLocation", err)
	}
	if _, err := m.Colorbar(nil, "", "", ""); err != nil {
		t.Fatal(err)
	}
	cb = ax.calls[1].colorbar
	if cb.Location != "right" || cb.Orientation != Vertical || cb.PackStart {
		t.Errorf("empty location: got %+v, want right", cb)
	}
}

func TestBarbs(t *testing.T) {
	m, ax := newTestMap(t, nil)
	lon := hemisphere.Vector([]float64{0, 10})
	lat := hemisphere.Vector([]float64{-45, 45})
	u := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	v := mat.NewDense(2, 2, []float64{5, 6, 7, 8})
	if _, _, err := m.Barbs(lon, lat, u, v); err != nil {
		t.Fatal(err)
	}
	if len(ax.calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(ax.calls))
	}
	north, south := ax.calls[0].field, ax.calls[1].field
	if north.Flip || !south.Flip {
		t.Errorf("got flips %v/%v, want false/true", north.Flip, south.Flip)
	}
	if !math.IsNaN(north.U.At(0, 0)) || north.U.At(1, 0) != 3 {
		t.Errorf("north u: got %v", mat.Formatted(north.U))
	}
	if south.V.At(0, 1) != 6 || !math.IsNaN(south.V.At(1, 1)) {
		t.Errorf("south v: got %v", mat.Formatted(south.V))
	}
	if ax.calls[0].transform != projection.PlateCarree {
		t.Errorf("got transform %v, want PlateCarree", ax.calls[0].transform)
	}
}

func TestBarbsInvalidGridShape(t *testing.T) {
	m, ax := newTestMap(t, nil)
	_, lat := hemisphere.MeshGrid([]float64{0, 1, 2}, []float64{0, 1, 2, 3})
	u := mat.NewDense(4, 3, nil)
	_, _, err := m.Barbs(hemisphere.Vector([]float64{0, 1, 2}), hemisphere.Grid(lat), u, u)
	if !errors.Is(err, hemisphere.ErrInvalidGridShape) {
		t.Errorf("got %v, want ErrInvalidGridShape", err)
	}
	lon2, lat2 := mat.NewDense(2, 2, nil), mat.NewDense(2, 3, nil)
	u2 := mat.NewDense(2, 3, nil)
	_, _, err = m.Barbs(hemisphere.Grid(lon2), hemisphere.Grid(lat2), u2, u2)
	if !errors.Is(err, hemisphere.ErrInvalidGridShape) {
		t.Errorf("lon (2,2) lat (2,3): got %v, want ErrInvalidGridShape", err)
	}
	if _, err := m.Contour(hemisphere.Grid(lon2), hemisphere.Grid(lat2), u2); !errors.Is(err, hemisphere.ErrInvalidGridShape) {
		t.Errorf("contour: got %v, want ErrInvalidGridShape", err)
	}
	if _, err := m.Quiver(hemisphere.Grid(lon2), hemisphere.Grid(lat2), u2, u2); !errors.Is(err, hemisphere.ErrInvalidGridShape) {
		t.Errorf("quiver: got %v, want ErrInvalidGridShape", err)
	}
	if len(ax.calls) != 0 {
		t.Error("nothing should be drawn")
	}
}

func TestContourAndQuiver(t *testing.T) {
	m, ax := newTestMap(t, nil)
	lon := hemisphere.Vector([]float64{0, 1, 2})
	lat := hemisphere.Vector([]float64{10, 20})
	data := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if _, err := m.Contourf(lon, lat, data, WithLevels(2, 4), WithTransform(projection.Mercator)); err != nil {
		t.Fatal(err)
	}
	c := ax.calls[0]
	if !c.filled || len(c.levels) != 2 || c.transform != projection.Mercator {
		t.Errorf("got %+v", c)
	}
	if _, err := m.Contour(lon, lat, mat.NewDense(3, 2, nil)); !errors.Is(err, hemisphere.ErrShapeMismatch) {
		t.Errorf("got %v, want ErrShapeMismatch", err)
	}
	if _, err := m.Quiver(lon, lat, data, data); err != nil {
		t.Fatal(err)
	}
	if ax.calls[1].name != "quiver" || ax.calls[1].field.Flip {
		t.Errorf("got %+v", ax.calls[1])
	}
}
