package rgeo

import (
	"errors"
	"net"
	"net/rpc"
	"path/filepath"
	"slices"
	"testing"

	"github.com/paulmach/orb"
	"github.com/rotblauer/geomap/feature"
	"github.com/rotblauer/geomap/params"
	srgeo "github.com/sams96/rgeo"
)

func TestDatasetNamesStable(t *testing.T) {
	names := DatasetNamesStable
	if len(names) != len(datasets) {
		t.Errorf("Expected %d names, got %d", len(datasets), len(names))
	}
	if !slices.IsSorted(names) {
		t.Errorf("Expected sorted names, got %v", names)
	}
	if want := "github.com/sams96/rgeo.Provinces10"; !slices.Contains(names, want) {
		t.Errorf("Expected %s in %v", want, names)
	}
}

func TestDatasetFor(t *testing.T) {
	cases := []struct {
		spec feature.Spec
		want string
	}{
		{feature.Spec{Kind: feature.Borders, Scale: "110m"}, "github.com/sams96/rgeo.Countries110"},
		{feature.Spec{Kind: feature.Coastline, Scale: "50m"}, "github.com/sams96/rgeo.Countries10"},
		{feature.Spec{Kind: feature.States, Scale: "10m"}, "github.com/sams96/rgeo.Provinces10"},
		{feature.Spec{Kind: feature.Counties, Scale: "500k"}, "github.com/sams96/rgeo.US_Counties10"},
	}
	for _, c := range cases {
		got, err := DatasetFor(c.spec)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("%s: got %s, want %s", c.spec, got, c.want)
		}
	}
	if _, err := DatasetFor(feature.Spec{Kind: feature.Ocean, Scale: "50m"}); !errors.Is(err, ErrNoDataset) {
		t.Errorf("got %v, want ErrNoDataset", err)
	}
}

type fakeGeocoder struct {
	calls int
}

func (f *fakeGeocoder) GetLocation(pt orb.Point) (srgeo.Location, error) {
	f.calls++
	if pt.Lat() > 90 {
		return srgeo.Location{}, errors.New("off the map")
	}
	return srgeo.Location{CountryCode3: "JPN", Province: "Hokkaido"}, nil
}

func (f *fakeGeocoder) GetGeometry(pt orb.Point, dataset string) (orb.Geometry, error) {
	return orb.Polygon{orb.Ring{{42, 42}, {43, 42}, {43, 43}, {42, 42}}}, nil
}

func TestCachedLocator(t *testing.T) {
	f := &fakeGeocoder{}
	c, err := NewCachedLocator(f, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		loc, err := c.GetLocation(orb.Point{141.3, 43.06})
		if err != nil {
			t.Fatal(err)
		}
		if loc.Province != "Hokkaido" {
			t.Errorf("got %q", loc.Province)
		}
	}
	if f.calls != 1 {
		t.Errorf("got %d backing calls, want 1", f.calls)
	}
	if _, err := c.GetLocation(orb.Point{0, 100}); err == nil {
		t.Error("expected error")
	}
	if _, err := c.GetLocation(orb.Point{0, 100}); err == nil {
		t.Error("errors should not be cached")
	}
}

// MockRPCServer serves a ReverseGeocoder under the name "MockRPCServer".
type MockRPCServer struct {
	r ReverseGeocoder
}

func (m *MockRPCServer) GetLocation(req *GetLocationRequest, res *GetLocationResponse) error {
	loc, err := m.r.GetLocation(orb.Point(*req))
	if err != nil {
		res.Error = err.Error()
		return nil
	}
	res.Location = loc
	return nil
}

func (m *MockRPCServer) GetGeometry(req *GetGeometryRequest, res *GetGeometryResponse) error {
	g, err := m.r.GetGeometry(orb.Point(req.Pt), req.Dataset)
	if err != nil {
		res.Error = err.Error()
		return nil
	}
	res.Geometry, err = EncodeGeometry(g)
	return err
}

func TestRPCReverseGeocoderClient(t *testing.T) {
	server := rpc.NewServer()
	if err := server.Register(&MockRPCServer{r: &fakeGeocoder{}}); err != nil {
		t.Fatal(err)
	}
	sock := filepath.Join(t.TempDir(), "rgeo.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	go server.Accept(l)

	old := rRPCConf
	defer func() { rRPCConf = old }()
	rRPCConf = &params.RgeoDaemonConfig{
		ListenerConfig: params.ListenerConfig{Network: "unix", Address: sock},
		ServiceName:    "MockRPCServer",
	}

	our, err := R()
	if err != nil {
		t.Fatal(err)
	}
	client, ok := our.(*RPCReverseGeocoderClient)
	if !ok {
		t.Fatalf("Expected *RPCReverseGeocoderClient, got %T", our)
	}
	defer client.Close()

	loc, err := client.GetLocation(orb.Point{141.3, 43.06})
	if err != nil {
		t.Fatal(err)
	}
	if loc.CountryCode3 != "JPN" {
		t.Errorf("got %q, want JPN", loc.CountryCode3)
	}
	if _, err := client.GetLocation(orb.Point{0, 100}); err == nil || err.Error() != "off the map" {
		t.Errorf("got %v, want remote error", err)
	}

	g, err := client.GetGeometry(orb.Point{42.5, 42.5}, "whatever")
	if err != nil {
		t.Fatal(err)
	}
	poly, ok := g.(orb.Polygon)
	if !ok {
		t.Fatalf("got %T, want orb.Polygon", g)
	}
	if poly[0][1] != (orb.Point{43, 42}) {
		t.Errorf("got %v", poly[0][1])
	}
}

func TestRUnavailable(t *testing.T) {
	old := rRPCConf
	defer func() { rRPCConf = old }()
	rRPCConf = &params.RgeoDaemonConfig{
		ListenerConfig: params.ListenerConfig{Network: "unix", Address: filepath.Join(t.TempDir(), "nope.sock")},
		ServiceName:    "ReverseGeocode",
	}
	if r != nil {
		t.Skip("inproc instance already initialized")
	}
	if _, err := R(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}

func TestLibraryProvinces(t *testing.T) {
	if testing.Short() {
		t.Skip("loads a dataset")
	}
	r1, err := srgeo.New(Provinces10)
	if err != nil {
		t.Fatal(err)
	}
	// 47°24'20.2"N 105°35'24.9"W
	loc, err := (*rR)(r1).GetLocation(orb.Point{-105.590250, 47.405611})
	if err != nil {
		t.Fatal(err)
	}
	if loc.CountryCode3 != "USA" || loc.Province != "Montana" {
		t.Fatalf("Want country=%q province=%q, got: country=%q province=%q",
			"USA", "Montana", loc.CountryCode3, loc.Province)
	}
}
