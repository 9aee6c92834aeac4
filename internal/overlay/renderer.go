package overlay

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/savyohenriquedev/exoskel/internal/detector"
)

// Renderer composites hand overlays and the FPS readout onto a frame.
type Renderer struct {
	style Style
}

// NewRenderer creates a Renderer with the given style.
func NewRenderer(style Style) *Renderer {
	return &Renderer{style: style}
}

// Draw mutates annotated in place: for each hand it draws the connection
// segments, the landmark markers and the closed exoskeleton contour, then
// the "FPS: <n>" readout. The caller passes a copy of the captured frame;
// the original is never touched. With no hands only the FPS text is drawn.
// contours[i] must be the contour built from hands[i].
func (r *Renderer) Draw(annotated *gocv.Mat, hands []detector.HandLandmarks, contours [][]image.Point, fps float64) {
	width := annotated.Cols()
	height := annotated.Rows()

	for i := range hands {
		r.drawHand(annotated, &hands[i], width, height)
		if i < len(contours) {
			r.drawContour(annotated, contours[i])
		}
	}

	gocv.PutText(annotated, fmt.Sprintf("FPS: %d", int(fps)),
		r.style.TextOrigin, r.style.TextFont, r.style.TextScale,
		r.style.TextColor, r.style.TextThickness)
}

// drawHand draws the landmark skeleton: connection lines first so the
// markers sit on top of them.
func (r *Renderer) drawHand(annotated *gocv.Mat, hand *detector.HandLandmarks, width, height int) {
	for _, conn := range detector.Connections {
		p1 := Project(hand.Points[conn[0]], width, height)
		p2 := Project(hand.Points[conn[1]], width, height)
		gocv.Line(annotated, p1, p2, r.style.ConnectionColor, r.style.ConnectionThickness)
	}

	for i := 0; i < detector.NumLandmarks; i++ {
		center := Project(hand.Points[i], width, height)
		gocv.Circle(annotated, center, r.style.MarkerRadius, r.style.MarkerColor, -1)
	}
}

func (r *Renderer) drawContour(annotated *gocv.Mat, contour []image.Point) {
	if len(contour) == 0 {
		return
	}

	pts := gocv.NewPointsVectorFromPoints([][]image.Point{contour})
	defer pts.Close()

	gocv.Polylines(annotated, pts, true, r.style.ContourColor, r.style.ContourThickness)
}
