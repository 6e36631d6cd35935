package params

// MapConfig configures a basemap.Map.
type MapConfig struct {
	// Projection is the map projection name, eg. "PlateCarree" or "Mercator".
	Projection string

	// DataTransform is the projection the data coordinates are given in.
	DataTransform string

	// Resolution is the default boundary resolution,
	// a symbolic token ("l", "m", "h") or a concrete scale like "50m".
	Resolution string

	// CountiesResolution is the default resolution for county borders.
	CountiesResolution string

	// StrictResolution rejects unrecognized symbolic tokens
	// instead of falling back to medium.
	StrictResolution bool
}

func DefaultMapConfig() *MapConfig {
	return &MapConfig{
		Projection:         "PlateCarree",
		DataTransform:      "PlateCarree",
		Resolution:         "m",
		CountiesResolution: "l",
	}
}

// InProcMapConfig is shared by the cmd flags and the daemons.
var InProcMapConfig = DefaultMapConfig()
