package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestLookup(t *testing.T) {
	p, err := Lookup("platecarree")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "PlateCarree" {
		t.Errorf("got %s", p.Name())
	}
	if _, err := Lookup("Robinson"); !errors.Is(err, ErrUnknownProjection) {
		t.Errorf("got %v, want ErrUnknownProjection", err)
	}
}

func TestPlateCarreeIdentity(t *testing.T) {
	pt := orb.Point{-105.5, 47.4}
	if got := PlateCarree.Project(pt); got != pt {
		t.Errorf("got %v, want %v", got, pt)
	}
}

func TestMercator(t *testing.T) {
	got := Mercator.Project(orb.Point{0, 0})
	if math.Abs(got[0]) > 1e-6 || math.Abs(got[1]) > 1e-6 {
		t.Errorf("origin: got %v", got)
	}
	got = Mercator.Project(orb.Point{180, 0})
	if math.Abs(got[0]-20037508.34) > 1 {
		t.Errorf("antimeridian x: got %v", got[0])
	}
}
