// Package overlay derives the exoskeleton contour from hand landmarks and
// composites it, the landmark skeleton, and the FPS readout onto a frame copy.
package overlay

import (
	"image"

	"github.com/savyohenriquedev/exoskel/internal/detector"
)

// ContourLen is the fixed length of an exoskeleton contour: all 21 landmarks
// plus a closing point equal to the first.
const ContourLen = detector.NumLandmarks + 1

// Project converts a normalized landmark into integer pixel coordinates for
// a width x height frame. Coordinates are truncated and clamped so that
// inputs on the [0,1] boundary still land inside the frame.
func Project(p detector.Point3D, width, height int) image.Point {
	x := int(p.X * float64(width))
	y := int(p.Y * float64(height))

	if x < 0 {
		x = 0
	} else if x > width-1 {
		x = width - 1
	}
	if y < 0 {
		y = 0
	} else if y > height-1 {
		y = height - 1
	}

	return image.Point{X: x, Y: y}
}

// BuildContour maps one hand's landmarks into pixel space and assembles the
// closed exoskeleton polygon: the wrist (index 0), the landmark runs 1-4,
// 5-8, 9-12, 13-16 and 17-20 in that literal order, then back to the wrist.
// The index ranges are the contract; no smoothing or reordering is applied.
func BuildContour(hand detector.HandLandmarks, width, height int) []image.Point {
	contour := make([]image.Point, 0, ContourLen)

	for i := 0; i < detector.NumLandmarks; i++ {
		contour = append(contour, Project(hand.Points[i], width, height))
	}

	// Close the loop at the wrist
	contour = append(contour, contour[0])

	return contour
}
