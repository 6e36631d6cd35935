package basemap

import (
	"errors"
	"fmt"
)

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Colorbar places a colorbar alongside the parent axes.
type Colorbar struct {
	Location    string      `json:"location"`
	Orientation Orientation `json:"orientation"`
	Size        string      `json:"size"`
	Pad         string      `json:"pad"`

	// PackStart puts the colorbar before (left of, or below) the parent axes.
	PackStart bool `json:"-"`
}

var ErrImproperLocation = errors.New("improper colorbar location")

const (
	DefaultColorbarLocation = "right"
	DefaultColorbarSize     = "3%"
	DefaultColorbarPad      = "1%"
)

// NewColorbar lays out a colorbar at location: right, left, top, or bottom.
// Empty location, size, and pad take the defaults.
func NewColorbar(location, size, pad string) (Colorbar, error) {
	if location == "" {
		location = DefaultColorbarLocation
	}
	if size == "" {
		size = DefaultColorbarSize
	}
	if pad == "" {
		pad = DefaultColorbarPad
	}
	cb := Colorbar{Location: location, Size: size, Pad: pad}
	switch location {
	case "left":
		cb.Orientation, cb.PackStart = Vertical, true
	case "right":
		cb.Orientation = Vertical
	case "bottom":
		cb.Orientation, cb.PackStart = Horizontal, true
	case "top":
		cb.Orientation = Horizontal
	default:
		return Colorbar{}, fmt.Errorf("%w: %q", ErrImproperLocation, location)
	}
	return cb, nil
}
