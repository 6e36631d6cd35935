package hemisphere

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Axis is a longitude or latitude coordinate input,
// either a 1-dimensional vector or a 2-dimensional grid.
// The zero value has no dimensions.
type Axis struct {
	vec  []float64
	grid *mat.Dense
}

// Vector returns a 1D axis.
func Vector(v []float64) Axis {
	return Axis{vec: v}
}

// Grid returns a 2D axis.
func Grid(m *mat.Dense) Axis {
	return Axis{grid: m}
}

// NDim returns 1 for vectors, 2 for grids, and 0 for the empty axis.
func (a Axis) NDim() int {
	switch {
	case a.grid != nil:
		return 2
	case len(a.vec) > 0:
		return 1
	}
	return 0
}

// Values returns the vector values of a 1D axis, otherwise nil.
func (a Axis) Values() []float64 {
	return a.vec
}

// Dense returns the grid of a 2D axis, otherwise nil.
func (a Axis) Dense() *mat.Dense {
	return a.grid
}

// MeshGrid expands lon (len Nx) and lat (len Ny) vectors into two (Ny, Nx) grids,
// where each row of x is lon and each column of y is lat.
func MeshGrid(lon, lat []float64) (x, y *mat.Dense) {
	nx, ny := len(lon), len(lat)
	x = mat.NewDense(ny, nx, nil)
	y = mat.NewDense(ny, nx, nil)
	for i := 0; i < ny; i++ {
		x.SetRow(i, lon)
		for j := 0; j < nx; j++ {
			y.Set(i, j, lat[i])
		}
	}
	return x, y
}

// Mesh normalizes a lon/lat pair into two grids of the same shape.
// Two vectors are mesh-expanded, two grids of equal shape are returned unchanged,
// and any other combination is ErrInvalidGridShape.
func Mesh(lon, lat Axis) (x, y *mat.Dense, err error) {
	switch {
	case lon.NDim() == 1 && lat.NDim() == 1:
		x, y = MeshGrid(lon.vec, lat.vec)
		return x, y, nil
	case lon.NDim() == 2 && lat.NDim() == 2:
		xr, xc := lon.grid.Dims()
		yr, yc := lat.grid.Dims()
		if xr != yr || xc != yc {
			return nil, nil, fmt.Errorf("%w: lon is (%d,%d), lat is (%d,%d)", ErrInvalidGridShape, xr, xc, yr, yc)
		}
		return lon.grid, lat.grid, nil
	}
	return nil, nil, ErrInvalidGridShape
}
