package types

import (
	"errors"
	"fmt"
	"math"

	"github.com/rotblauer/geomap/hemisphere"
	"github.com/tidwall/gjson"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrDecodeVectorField = errors.New("could not decode vector field")
	ErrRaggedGrid        = errors.New("grid rows differ in length")
)

// VectorField is a u/v field over lon/lat as posted by clients, eg.
//
//	{"lon": [0, 10], "lat": [-45, 45], "u": [[1, 2], [3, 4]], "v": [[5, 6], [7, null]]}
//
// lon and lat may each be a flat array or an array of rows.
// Null u and v values decode as NaN; coordinates must be finite numbers.
type VectorField struct {
	Lon, Lat hemisphere.Axis
	U, V     *mat.Dense
}

// DecodeVectorField reads a VectorField from JSON.
func DecodeVectorField(data []byte) (*VectorField, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrDecodeVectorField)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: not an object", ErrDecodeVectorField)
	}

	out := &VectorField{}
	var err error
	if out.Lon, err = decodeAxis(doc.Get("lon")); err != nil {
		return nil, fmt.Errorf("lon: %w", err)
	}
	if out.Lat, err = decodeAxis(doc.Get("lat")); err != nil {
		return nil, fmt.Errorf("lat: %w", err)
	}
	if out.U, err = decodeGrid(doc.Get("u"), true); err != nil {
		return nil, fmt.Errorf("u: %w", err)
	}
	if out.V, err = decodeGrid(doc.Get("v"), true); err != nil {
		return nil, fmt.Errorf("v: %w", err)
	}
	return out, nil
}

func decodeAxis(res gjson.Result) (hemisphere.Axis, error) {
	if !res.IsArray() {
		return hemisphere.Axis{}, fmt.Errorf("%w: not an array", ErrDecodeVectorField)
	}
	arr := res.Array()
	if len(arr) == 0 {
		return hemisphere.Axis{}, fmt.Errorf("%w: empty", ErrDecodeVectorField)
	}
	if arr[0].IsArray() {
		g, err := decodeGrid(res, false)
		if err != nil {
			return hemisphere.Axis{}, err
		}
		return hemisphere.Grid(g), nil
	}
	vec, err := decodeRow(res, false)
	if err != nil {
		return hemisphere.Axis{}, err
	}
	return hemisphere.Vector(vec), nil
}

func decodeRow(res gjson.Result, nullable bool) ([]float64, error) {
	arr := res.Array()
	out := make([]float64, len(arr))
	for i, el := range arr {
		switch {
		case el.Type == gjson.Number:
			out[i] = el.Float()
			if math.IsInf(out[i], 0) {
				return nil, fmt.Errorf("%w: value out of range %s", ErrDecodeVectorField, el.Raw)
			}
		case el.Type == gjson.Null && nullable:
			out[i] = math.NaN()
		default:
			return nil, fmt.Errorf("%w: non-numeric value %s", ErrDecodeVectorField, el.Raw)
		}
	}
	return out, nil
}

func decodeGrid(res gjson.Result, nullable bool) (*mat.Dense, error) {
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: not an array", ErrDecodeVectorField)
	}
	rows := res.Array()
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrDecodeVectorField)
	}
	var data []float64
	cols := -1
	for _, row := range rows {
		if !row.IsArray() {
			return nil, fmt.Errorf("%w: grid row is not an array", ErrDecodeVectorField)
		}
		vals, err := decodeRow(row, nullable)
		if err != nil {
			return nil, err
		}
		if cols >= 0 && len(vals) != cols {
			return nil, fmt.Errorf("%w: %d and %d", ErrRaggedGrid, cols, len(vals))
		}
		cols = len(vals)
		data = append(data, vals...)
	}
	if cols == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrDecodeVectorField)
	}
	return mat.NewDense(len(rows), cols, data), nil
}
