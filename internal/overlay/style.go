package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Style is the immutable drawing configuration for the overlay renderer.
// It is constructed once at startup and passed explicitly; there is no
// process-wide mutable drawing state.
type Style struct {
	// Contour stroke
	ContourColor     color.RGBA
	ContourThickness int

	// Landmark markers and inter-landmark connections
	MarkerColor         color.RGBA
	MarkerRadius        int
	ConnectionColor     color.RGBA
	ConnectionThickness int

	// FPS readout
	TextOrigin    image.Point
	TextFont      gocv.HersheyFont
	TextScale     float64
	TextColor     color.RGBA
	TextThickness int
}

// DefaultStyle returns the stock overlay style: green contour and FPS text,
// red landmark markers with light connection lines approximating the
// MediaPipe drawing defaults.
func DefaultStyle() Style {
	green := color.RGBA{R: 0, G: 255, B: 0, A: 255}

	return Style{
		ContourColor:     green,
		ContourThickness: 2,

		MarkerColor:         color.RGBA{R: 255, G: 0, B: 0, A: 255},
		MarkerRadius:        4,
		ConnectionColor:     color.RGBA{R: 224, G: 224, B: 224, A: 255},
		ConnectionThickness: 2,

		TextOrigin:    image.Point{X: 10, Y: 30},
		TextFont:      gocv.FontHersheySimplex,
		TextScale:     1,
		TextColor:     green,
		TextThickness: 2,
	}
}
