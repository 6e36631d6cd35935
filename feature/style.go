package feature

// Style is the drawing style passed along with a feature.
type Style struct {
	LineWidth float64 `json:"linewidth,omitempty"`
	LineStyle string  `json:"linestyle,omitempty"`
	EdgeColor string  `json:"edgecolor,omitempty"`
	FaceColor string  `json:"facecolor,omitempty"`
}

const (
	// EdgeFace draws the edge in the face color.
	EdgeFace = "face"

	WaterColor = "#C8E7FF"
	LandColor  = "#e6e6e6"
)

var defaultStyles = map[Kind]Style{
	Coastline: {LineWidth: 1.2, LineStyle: "solid", EdgeColor: "k"},
	Borders:   {LineWidth: 1.2, LineStyle: "solid", EdgeColor: "k"},
	States:    {LineWidth: 0.7, LineStyle: "solid", EdgeColor: "k"},
	Counties:  {LineWidth: 0.2, LineStyle: "solid", EdgeColor: "k"},
	Ocean:     {FaceColor: WaterColor, EdgeColor: EdgeFace},
	Lakes:     {FaceColor: WaterColor, EdgeColor: EdgeFace},
	Land:      {FaceColor: LandColor, EdgeColor: EdgeFace},
}

// DefaultStyle returns the Basemap-like default style for kind.
func DefaultStyle(kind Kind) Style {
	return defaultStyles[kind]
}
