package webd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/jellydator/ttlcache/v3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/layerdb"
	"github.com/rotblauer/geomap/layers"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/resolution"
	"github.com/rotblauer/geomap/rgeo"
	"github.com/rotblauer/geomap/types"
)

func pingPong(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

func (s *WebDaemon) writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

type webDaemonStatus struct {
	StartedAt time.Time               `json:"started_at"`
	Uptime    string                  `json:"uptime"`
	Config    *params.WebDaemonConfig `json:"config"`
	WSConns   int                     `json:"ws_conns"`
}

func (s *WebDaemon) statusReport(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, webDaemonStatus{
		StartedAt: s.started,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Config:    s.Config,
		WSConns:   s.melodyInstance.Len(),
	})
}

type resolutionResponse struct {
	Token    string `json:"token"`
	Counties bool   `json:"counties"`
	Bucket   string `json:"bucket"`
	Scale    string `json:"scale"`
}

// handleResolution resolves ?res= to a concrete scale, for ?counties=true if asked.
// A missing res resolves like any other unrecognized token.
func (s *WebDaemon) handleResolution(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	token := q.Get("res")
	counties := false
	if c := q.Get("counties"); c != "" {
		var err error
		counties, err = strconv.ParseBool(c)
		if err != nil {
			http.Error(w, "Invalid counties param", http.StatusBadRequest)
			return
		}
	}
	var scale string
	if s.Config.Map.StrictResolution {
		var err error
		scale, err = resolution.ResolveStrict(token, counties)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		scale = resolution.Resolve(token, counties)
	}
	res := resolutionResponse{Token: token, Counties: counties, Scale: scale}
	if !resolution.ContainsDigit(token) {
		res.Bucket = resolution.Classify(token).String()
	}
	s.writeJSON(w, res)
}

func parseKinds(param string) ([]feature.Kind, error) {
	if param == "" {
		return nil, nil
	}
	var kinds []feature.Kind
	for _, name := range strings.Split(param, ",") {
		k, err := feature.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// handleBarbs renders a posted vector field as hemisphere-split barbs,
// optionally over ?boundaries=coastline,states at ?res=.
// The stored layer is returned, and announced to websocket clients.
func (s *WebDaemon) handleBarbs(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error("Failed to read request body", "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	q := r.URL.Query()
	boundaries, err := parseKinds(q.Get("boundaries"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	vf, err := types.DecodeVectorField(body)
	if err != nil {
		s.logger.Warn("Failed to decode vector field", "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	req := layers.BarbsRequest{Resolution: q.Get("res"), Boundaries: boundaries}
	rec, err := layers.RenderBarbs(s.Config.Map, s.Config.Layers, vf, req)
	if err != nil {
		s.logger.Warn("Failed to render barbs", "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id, err := layerdb.Key(struct {
		Body string
		Req  layers.BarbsRequest
		Map  params.MapConfig
	}{string(body), req, *s.Config.Map})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fc := rec.Collection()
	fc.ExtraMembers["id"] = id

	b, err := s.store(r.Context(), id, fc)
	if err != nil {
		s.logger.Error("Failed to store layer", "error", err)
		http.Error(w, "Failed to store layer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", "/layers/"+id)
	w.WriteHeader(http.StatusCreated)
	if _, err := w.Write(b); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}

	stored := storedLayer{ID: id, Layers: rec.Layers(), Features: len(fc.Features), Time: time.Now()}
	s.lastStored.Set(id, stored, ttlcache.DefaultTTL)
	s.feedStored.Send(stored)
}

// store puts the layer in the db and exports it gzipped to the data dir,
// and to S3 if configured.
func (s *WebDaemon) store(ctx context.Context, id string, fc *geojson.FeatureCollection) ([]byte, error) {
	b, err := s.db.Put(id, fc)
	if err != nil {
		return nil, err
	}
	path := layerdb.LayerPath(s.Config.DataDir, id)
	if err := layerdb.WriteGZ(path, b, nil); err != nil {
		return nil, err
	}
	if s.Config.UploadS3 && params.AWS_BUCKETNAME != "" {
		gz, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		go func() {
			// The upload outlives the request.
			ctx := context.WithoutCancel(ctx)
			if err := layerdb.UploadS3(ctx, params.AWS_BUCKETNAME, layerdb.S3Key(id), gz); err != nil {
				s.logger.Error("Failed to upload layer", "id", id, "error", err)
			}
		}()
	}
	return b, nil
}

func (s *WebDaemon) handleGetLayer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	fc, err := s.db.Get(id)
	if errors.Is(err, layerdb.ErrNotFound) {
		// Layers exported by other processes exist only as flat files.
		b, err := layerdb.ReadGZ(layerdb.LayerPath(s.Config.DataDir, id))
		if err != nil {
			http.Error(w, "No such layer", http.StatusNotFound)
			return
		}
		_, _ = w.Write(b)
		return
	}
	if err != nil {
		s.logger.Error("Failed to get layer", "id", id, "error", err)
		http.Error(w, "Failed to get layer", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, fc)
}

func (s *WebDaemon) handleListLayers(w http.ResponseWriter, r *http.Request) {
	ids, err := s.db.IDs()
	if err != nil {
		s.logger.Error("Failed to list layers", "error", err)
		http.Error(w, "Failed to list layers", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, ids)
}

func (s *WebDaemon) getLocator() (rgeo.ReverseGeocoder, error) {
	s.locateMu.Lock()
	defer s.locateMu.Unlock()
	if s.locator != nil {
		return s.locator, nil
	}
	rg, err := s.Locator()
	if err != nil {
		return nil, err
	}
	s.locator = rg
	return rg, nil
}

func parsePoint(r *http.Request) (orb.Point, error) {
	q := r.URL.Query()
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("lon: %w", err)
	}
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("lat: %w", err)
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return orb.Point{}, fmt.Errorf("point out of range: %v", orb.Point{lon, lat})
	}
	return orb.Point{lon, lat}, nil
}

// handleLocate reverse geocodes ?lon=&lat=.
// With ?feature=<kind> the response is a GeoJSON Feature
// holding that kind's boundary around the point, at ?res=.
func (s *WebDaemon) handleLocate(w http.ResponseWriter, r *http.Request) {
	pt, err := parsePoint(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	q := r.URL.Query()
	key := fmt.Sprintf("%v|%s|%s", pt, q.Get("feature"), q.Get("res"))
	if item := s.locateCache.Get(key); item != nil {
		_, _ = w.Write(item.Value())
		return
	}

	rg, err := s.getLocator()
	if err != nil {
		s.logger.Warn("No reverse geocoder", "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	loc, err := rg.GetLocation(pt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var out any = loc
	if name := q.Get("feature"); name != "" {
		kind, err := feature.ParseKind(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		token := q.Get("res")
		if token == "" {
			token = s.Config.Map.Resolution
		}
		spec, err := feature.WithScale(kind, resolution.Resolve(token, kind.IsCounties()))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		dataset, err := rgeo.DatasetFor(spec)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		g, err := rg.GetGeometry(pt, dataset)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		f := geojson.NewFeature(g)
		f.Properties["feature"] = spec.String()
		f.Properties["dataset"] = dataset
		f.Properties["location"] = loc
		out = f
	}

	b, err := json.Marshal(out)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.locateCache.Set(key, b, ttlcache.DefaultTTL)
	_, _ = w.Write(b)
}
