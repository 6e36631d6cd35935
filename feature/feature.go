package feature

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rotblauer/geomap/resolution"
)

// Kind is a geographic boundary or fill dataset.
type Kind string

const (
	Coastline Kind = "coastline"
	Borders   Kind = "borders"
	States    Kind = "states"
	Ocean     Kind = "ocean"
	Lakes     Kind = "lakes"
	Land      Kind = "land"
	Counties  Kind = "counties"
)

var Kinds = []Kind{Coastline, Borders, States, Ocean, Lakes, Land, Counties}

// Source names the provider of a dataset's shapes.
type Source string

const (
	NaturalEarth Source = "naturalearth"
	USCounties   Source = "uscounties"
)

var sourceScales = map[Source][]string{
	NaturalEarth: {resolution.Scale110m, resolution.Scale50m, resolution.Scale10m},
	USCounties:   {resolution.Scale20m, resolution.Scale5m, resolution.Scale500k},
}

var (
	ErrUnknownKind      = errors.New("unknown feature kind")
	ErrUnavailableScale = errors.New("scale unavailable for feature source")
)

func (k Kind) IsCounties() bool {
	return k == Counties
}

func (k Kind) Source() Source {
	if k.IsCounties() {
		return USCounties
	}
	return NaturalEarth
}

// Filled reports whether the kind is drawn as a filled area rather than a line.
func (k Kind) Filled() bool {
	switch k {
	case Ocean, Lakes, Land:
		return true
	}
	return false
}

// Scales returns the scales the kind's source publishes, coarsest first.
func (k Kind) Scales() []string {
	return slices.Clone(sourceScales[k.Source()])
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !slices.Contains(Kinds, k) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Spec identifies a dataset at a concrete scale.
type Spec struct {
	Kind  Kind   `json:"kind"`
	Scale string `json:"scale"`
}

func (s Spec) String() string {
	return fmt.Sprintf("%s@%s", s.Kind, s.Scale)
}

// WithScale returns the spec for kind at scale,
// which must be one the kind's source publishes.
func WithScale(kind Kind, scale string) (Spec, error) {
	if !slices.Contains(Kinds, kind) {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if scales := kind.Scales(); !slices.Contains(scales, scale) {
		return Spec{}, fmt.Errorf("%w: %s has %v, got %q",
			ErrUnavailableScale, kind.Source(), scales, scale)
	}
	return Spec{Kind: kind, Scale: scale}, nil
}
