package s2

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestCellIDForPointLevel(t *testing.T) {
	pt := orb.Point{-105.590250, 47.405611}
	id := CellIDForPointLevel(pt, CellLevel8)
	if got := id.Level(); got != int(CellLevel8) {
		t.Errorf("got level %d, want %d", got, CellLevel8)
	}
	if !id.IsValid() {
		t.Error("invalid cell id")
	}
}

func TestThinner(t *testing.T) {
	th := NewThinner(CellLevel3)
	tok1, ok := th.Admit(orb.Point{10, 50})
	if !ok {
		t.Fatal("first point should be admitted")
	}
	tok2, ok := th.Admit(orb.Point{10.01, 50.01})
	if ok {
		t.Error("nearby point should be thinned")
	}
	if tok1 != tok2 {
		t.Errorf("got %s and %s, want same cell", tok1, tok2)
	}
	if _, ok := th.Admit(orb.Point{-120, -40}); !ok {
		t.Error("distant point should be admitted")
	}
}
