package hemisphere

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidGridShape is returned when lon and lat do not share a dimensionality of 1 or 2.
	ErrInvalidGridShape = errors.New("lon and lat must both be 1D or both be 2D")

	// ErrShapeMismatch is returned when u or v does not match the lat grid.
	ErrShapeMismatch = errors.New("u and v must match the shape of the lat grid")
)

// Half is one hemisphere's copy of a vector field.
// Cells outside the hemisphere are NaN.
type Half struct {
	U, V *mat.Dense

	// Flip asks the glyph renderer to mirror barbs, as is conventional
	// in the southern hemisphere.
	Flip bool
}

// Split is a vector field partitioned by hemisphere.
type Split struct {
	// Lon and Lat are the (possibly mesh-expanded) coordinate grids
	// both halves are indexed by.
	Lon, Lat *mat.Dense

	North Half
	South Half
}

// northMasked excludes the southern hemisphere and the north pole itself.
// A NaN latitude lies in neither hemisphere.
func northMasked(lat float64) bool {
	return lat < 0 || lat == 90 || math.IsNaN(lat)
}

// southMasked excludes the northern hemisphere and the south pole itself.
func southMasked(lat float64) bool {
	return lat > 0 || lat == -90 || math.IsNaN(lat)
}

// SplitVectors partitions u and v into northern and southern copies.
// The inputs are not modified.
func SplitVectors(lon, lat Axis, u, v *mat.Dense) (*Split, error) {
	x, y, err := Mesh(lon, lat)
	if err != nil {
		return nil, err
	}
	if u == nil || v == nil {
		return nil, fmt.Errorf("%w: missing component", ErrShapeMismatch)
	}
	r, c := y.Dims()
	for _, m := range []*mat.Dense{u, v} {
		if mr, mc := m.Dims(); mr != r || mc != c {
			return nil, fmt.Errorf("%w: got (%d,%d), lat is (%d,%d)", ErrShapeMismatch, mr, mc, r, c)
		}
	}
	return &Split{
		Lon:   x,
		Lat:   y,
		North: Half{U: masked(u, y, northMasked), V: masked(v, y, northMasked)},
		South: Half{U: masked(u, y, southMasked), V: masked(v, y, southMasked), Flip: true},
	}, nil
}

func masked(src, lat *mat.Dense, mask func(float64) bool) *mat.Dense {
	out := mat.DenseCopyOf(src)
	r, c := lat.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if mask(lat.At(i, j)) {
				out.Set(i, j, math.NaN())
			}
		}
	}
	return out
}

// Count returns the number of non-NaN cells in m.
func Count(m *mat.Dense) int {
	n := 0
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !math.IsNaN(m.At(i, j)) {
				n++
			}
		}
	}
	return n
}
