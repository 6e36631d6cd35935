package layers

import (
	"github.com/rotblauer/geomap/basemap"
	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/projection"
	"github.com/rotblauer/geomap/types"
)

// BarbsRequest is what to draw under a barbs layer.
type BarbsRequest struct {
	// Resolution overrides the map default for Boundaries.
	Resolution string
	Boundaries []feature.Kind
}

// RenderBarbs records boundaries and then the hemisphere-split barbs for vf.
func RenderBarbs(mc *params.MapConfig, lc *params.LayerConfig, vf *types.VectorField, req BarbsRequest) (*Recorder, error) {
	if mc == nil {
		mc = params.DefaultMapConfig()
	}
	proj, err := projection.Lookup(mc.Projection)
	if err != nil {
		return nil, err
	}
	rec := NewRecorder(proj, lc)
	m, err := basemap.New(mc, rec)
	if err != nil {
		return nil, err
	}
	var opts []basemap.Option
	if req.Resolution != "" {
		opts = append(opts, basemap.WithResolution(req.Resolution))
	}
	for _, k := range req.Boundaries {
		if _, err := m.Draw(k, opts...); err != nil {
			return nil, err
		}
	}
	if _, _, err := m.Barbs(vf.Lon, vf.Lat, vf.U, vf.V); err != nil {
		return nil, err
	}
	return rec, nil
}
