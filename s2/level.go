package s2

// CellLevel represents the S2 cell level, from 0-30.
// See https://s2geometry.io/resources/s2cell_statistics.html for sizes.
type CellLevel int

const (
	// CellLevel0 covers earth in 6 cells.
	CellLevel0 CellLevel = 0

	// CellLevel3 is about the size of the largest countries, ~1100 km edges.
	CellLevel3 CellLevel = 3

	// CellLevel5 is continental-ish, ~300 km edges.
	CellLevel5 CellLevel = 5

	// CellLevel6 is wider than the Idaho panhandle.
	CellLevel6 CellLevel = 6
	CellLevel7 CellLevel = 7

	// CellLevel8 is about a day's ride, ~38 km edges.
	CellLevel8  CellLevel = 8
	CellLevel9  CellLevel = 9
	CellLevel10 CellLevel = 10
	CellLevel11 CellLevel = 11
	CellLevel12 CellLevel = 12

	// CellLevel13 is about a kilometer.
	CellLevel13 CellLevel = 13

	CellLevel16 CellLevel = 16
	CellLevel23 CellLevel = 23
	CellLevel30 CellLevel = 30
)

// Valid reports whether the level is within 0-30.
func (l CellLevel) Valid() bool {
	return l >= CellLevel0 && l <= CellLevel30
}
