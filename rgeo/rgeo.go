package rgeo

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/paulmach/orb"
	"github.com/rotblauer/geomap/common"
	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/resolution"
	srgeo "github.com/sams96/rgeo"
)

// ReverseGeocoder finds the boundaries a point lies in.
type ReverseGeocoder interface {
	GetLocation(pt orb.Point) (srgeo.Location, error)
	GetGeometry(pt orb.Point, dataset string) (orb.Geometry, error)
}

// rR is the type of our wrapped rgeo.Rgeo instance, which implements the ReverseGeocoder interface.
type rR srgeo.Rgeo

var (
	r   *rR
	rMu sync.Mutex
)

func (rr *rR) GetLocation(pt orb.Point) (srgeo.Location, error) {
	return (*srgeo.Rgeo)(rr).ReverseGeocode(pt)
}

func (rr *rR) GetGeometry(pt orb.Point, dataset string) (orb.Geometry, error) {
	return (*srgeo.Rgeo)(rr).GetGeometry(pt, dataset)
}

// rRPCConf configures a remote rgeod instance.
// If this value exists, and r is nil, then R will attempt
// to connect to the remote rgeod instance rather than use the inproc value.
var rRPCConf = params.InProcRgeoDaemonConfig

var ErrUnavailable = errors.New("rgeo not initialized or available")

// R gets a ReverseGeocoder instance.
// This can be an inproc instance or an RPC instance;
// an inproc instance will be preferred if it exists (has been Init-ed, see below),
// otherwise an attempt will be made to establish any configured RPC conn.
func R() (ReverseGeocoder, error) {
	rMu.Lock()
	defer rMu.Unlock()
	if r != nil {
		return r, nil
	}
	if rRPCConf != nil {
		rgc, err := NewRPCReverseGeocoderClient(rRPCConf)
		if err == nil {
			return rgc, nil
		}
		slog.Warn("Failed to connect to remote rgeo daemon", "error", err)
	}
	return nil, ErrUnavailable
}

var (
	Countries110  = srgeo.Countries110
	Countries10   = srgeo.Countries10
	Provinces10   = srgeo.Provinces10
	US_Counties10 = srgeo.US_Counties10
)

// datasets are the datasets that the reverse geocoder will use.
var datasets = []func() []byte{
	Countries110,
	Countries10,
	Provinces10,
	US_Counties10,
}

var DatasetNamesStable = []string{}

func init() {
	for _, d := range datasets {
		DatasetNamesStable = append(DatasetNamesStable, common.ReflectFunctionName(d))
	}
	sort.Strings(DatasetNamesStable)
}

// DatasetName returns the stable name of a dataset function,
// eg. "github.com/sams96/rgeo.Provinces10".
func DatasetName(d func() []byte) string {
	return common.ReflectFunctionName(d)
}

var ErrNoDataset = errors.New("no boundary dataset for feature")

// DatasetFor returns the name of the loaded dataset closest to a feature spec.
// Only boundary kinds have datasets; water has none.
func DatasetFor(spec feature.Spec) (string, error) {
	switch spec.Kind {
	case feature.Borders, feature.Land, feature.Coastline:
		if spec.Scale == resolution.Scale110m {
			return DatasetName(Countries110), nil
		}
		return DatasetName(Countries10), nil
	case feature.States:
		return DatasetName(Provinces10), nil
	case feature.Counties:
		return DatasetName(US_Counties10), nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoDataset, spec)
}

var ErrAlreadyInitialized = errors.New("rgeo already initialized")

// Init loads all datasets into the inproc instance.
// This takes a while.
func Init() error {
	rMu.Lock()
	defer rMu.Unlock()
	if r != nil {
		return ErrAlreadyInitialized
	}

	r1, err := srgeo.New(datasets...)
	if err != nil {
		return err
	}

	// Assert that exported DatasetNamesStable matches actual loaded.
	names := r1.DatasetNames()
	if !slices.Equal(DatasetNamesStable, names) {
		return fmt.Errorf("DatasetNamesStable does not match actual")
	}
	r = (*rR)(r1)
	return nil
}
