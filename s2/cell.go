package s2

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// CellIDWithLevel returns the cellID truncated to the given level.
// https://docs.s2cell.aliddell.com/en/stable/s2_concepts.html#truncation
func CellIDWithLevel(cellID s2.CellID, level CellLevel) s2.CellID {
	var lsb uint64 = 1 << (2 * (30 - level))
	truncatedCellID := (uint64(cellID) & -lsb) | lsb
	return s2.CellID(truncatedCellID)
}

// CellIDForPointLevel returns the cellID at some level for a lon/lat point.
func CellIDForPointLevel(pt orb.Point, level CellLevel) s2.CellID {
	return CellIDWithLevel(s2.CellIDFromLatLng(s2.LatLngFromDegrees(pt.Lat(), pt.Lon())), level)
}

// Thinner admits at most one point per cell at its level.
type Thinner struct {
	level CellLevel
	seen  map[s2.CellID]struct{}
}

func NewThinner(level CellLevel) *Thinner {
	return &Thinner{level: level, seen: make(map[s2.CellID]struct{})}
}

// Admit returns the cell token for pt, and whether pt is the first point seen in that cell.
func (t *Thinner) Admit(pt orb.Point) (token string, ok bool) {
	id := CellIDForPointLevel(pt, t.level)
	if _, seen := t.seen[id]; seen {
		return id.ToToken(), false
	}
	t.seen[id] = struct{}{}
	return id.ToToken(), true
}
