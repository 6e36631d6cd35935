package rgeod

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/rotblauer/geomap/common"
	"github.com/rotblauer/geomap/params"
	"github.com/rotblauer/geomap/rgeo"
	srgeo "github.com/sams96/rgeo"
)

type fakeGeocoder struct{}

func (fakeGeocoder) GetLocation(pt orb.Point) (srgeo.Location, error) {
	if pt.Lat() > 90 {
		return srgeo.Location{}, errors.New("bad point")
	}
	return srgeo.Location{Country: "Nowhere", Province: fmt.Sprintf("%.0f", pt.Lon())}, nil
}

func (fakeGeocoder) GetGeometry(pt orb.Point, dataset string) (orb.Geometry, error) {
	return orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, nil
}

func startTestDaemon(t *testing.T) (*params.RgeoDaemonConfig, context.CancelFunc) {
	t.Helper()
	config := &params.RgeoDaemonConfig{
		ListenerConfig: params.ListenerConfig{
			Network: "unix",
			Address: filepath.Join(t.TempDir(), "rgeo.sock"),
		},
		ServiceName: "ReverseGeocode",
	}
	d, err := NewDaemon(config)
	if err != nil {
		t.Fatal(err)
	}
	d.Init = func() error { return nil }
	d.Locator = func() (rgeo.ReverseGeocoder, error) { return fakeGeocoder{}, nil }

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- d.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errs; err != nil {
			t.Error(err)
		}
	})

	deadline := time.Now().Add(5 * time.Second)
	for !d.ready.Load() {
		if time.Now().After(deadline) {
			t.Fatal("daemon not ready")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return config, cancel
}

func TestDaemonRPC(t *testing.T) {
	config, _ := startTestDaemon(t)

	c, err := common.DialRPC(config.Network, config.Address)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Call(config.ServiceName+".Ping", common.RPCArgNone(new(int)), new(int)); err != nil {
		t.Errorf("ping: %v", err)
	}
	c.Close()

	client, err := rgeo.NewRPCReverseGeocoderClient(config)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	loc, err := client.GetLocation(orb.Point{-93, 45})
	if err != nil {
		t.Fatal(err)
	}
	if loc.Country != "Nowhere" || loc.Province != "-93" {
		t.Errorf("got %+v", loc)
	}
	if _, err := client.GetLocation(orb.Point{0, 100}); err == nil || err.Error() != "bad point" {
		t.Errorf("got %v, want bad point", err)
	}

	g, err := client.GetGeometry(orb.Point{0.5, 0.5}, "github.com/sams96/rgeo.Provinces10")
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := g.(orb.Polygon); !ok || len(p[0]) != 4 {
		t.Errorf("got %T %v", g, g)
	}
}

func TestDaemonAlreadyRunning(t *testing.T) {
	config, _ := startTestDaemon(t)
	d, err := NewDaemon(config)
	if err != nil {
		t.Fatal(err)
	}
	err = d.Start(context.Background())
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("got %v, want ErrAlreadyRunning", err)
	}
}
