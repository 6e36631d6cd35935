package feature

import (
	"errors"
	"slices"
	"testing"
)

func TestKindSource(t *testing.T) {
	for _, k := range Kinds {
		want := NaturalEarth
		if k == Counties {
			want = USCounties
		}
		if got := k.Source(); got != want {
			t.Errorf("%s: got %s, want %s", k, got, want)
		}
	}
}

func TestWithScale(t *testing.T) {
	s, err := WithScale(Coastline, "10m")
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != "coastline@10m" {
		t.Errorf("got %s", s)
	}
	if _, err := WithScale(Counties, "10m"); !errors.Is(err, ErrUnavailableScale) {
		t.Errorf("got %v, want ErrUnavailableScale", err)
	}
	if _, err := WithScale(Land, "500k"); !errors.Is(err, ErrUnavailableScale) {
		t.Errorf("got %v, want ErrUnavailableScale", err)
	}
	if _, err := WithScale(Kind("rivers"), "10m"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("got %v, want ErrUnknownKind", err)
	}
}

func TestScalesIsCopy(t *testing.T) {
	got := Counties.Scales()
	if !slices.Equal(got, []string{"20m", "5m", "500k"}) {
		t.Fatalf("got %v", got)
	}
	got[0] = "nope"
	if Counties.Scales()[0] != "20m" {
		t.Error("Scales leaked internal slice")
	}
}

func TestDefaultStyle(t *testing.T) {
	if got := DefaultStyle(States).LineWidth; got != 0.7 {
		t.Errorf("states linewidth: got %v, want 0.7", got)
	}
	if got := DefaultStyle(Land); got.FaceColor != LandColor || got.EdgeColor != EdgeFace {
		t.Errorf("land: got %+v", got)
	}
	if !Ocean.Filled() || Coastline.Filled() {
		t.Error("unexpected Filled")
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("lakes"); err != nil || k != Lakes {
		t.Errorf("got %v %v", k, err)
	}
	if _, err := ParseKind("Lakes"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("got %v", err)
	}
}
