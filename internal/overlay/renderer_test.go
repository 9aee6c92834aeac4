package overlay

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/savyohenriquedev/exoskel/internal/detector"
)

// textRegion generously bounds the FPS readout drawn at (10,30) with scale 1.
var textRegion = image.Rect(0, 0, 300, 60)

// nonZeroInRegion counts changed pixels between two frames inside rect.
func nonZeroInRegion(t *testing.T, a, b gocv.Mat, rect image.Rectangle) int {
	t.Helper()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(a, b, &diff)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(diff, &gray, gocv.ColorBGRToGray)

	region := gray.Region(rect)
	defer region.Close()

	return gocv.CountNonZero(region)
}

func TestRenderer_Draw_NoHands(t *testing.T) {
	original := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer original.Close()

	annotated := original.Clone()
	defer annotated.Close()

	r := NewRenderer(DefaultStyle())
	r.Draw(&annotated, nil, nil, 29.7)

	t.Run("fps text is drawn", func(t *testing.T) {
		if got := nonZeroInRegion(t, original, annotated, textRegion); got == 0 {
			t.Error("expected the fps text to change pixels in the text region")
		}
	})

	t.Run("pixels outside the text region are untouched", func(t *testing.T) {
		right := image.Rect(textRegion.Max.X, 0, 640, 480)
		below := image.Rect(0, textRegion.Max.Y, textRegion.Max.X, 480)

		if got := nonZeroInRegion(t, original, annotated, right); got != 0 {
			t.Errorf("%d pixels changed right of the text region, want 0", got)
		}
		if got := nonZeroInRegion(t, original, annotated, below); got != 0 {
			t.Errorf("%d pixels changed below the text region, want 0", got)
		}
	})
}

func TestRenderer_Draw_WithHand(t *testing.T) {
	original := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer original.Close()

	annotated := original.Clone()
	defer annotated.Close()

	hand := detector.OpenPalmLandmarks()
	contour := BuildContour(hand, 640, 480)

	r := NewRenderer(DefaultStyle())
	r.Draw(&annotated, []detector.HandLandmarks{hand}, [][]image.Point{contour}, 15.0)

	// The open palm fixture occupies the lower middle of the frame, well
	// clear of the text region.
	handRegion := image.Rect(150, 100, 640, 480)
	if got := nonZeroInRegion(t, original, annotated, handRegion); got == 0 {
		t.Error("expected the hand overlay to change pixels in the hand region")
	}
}

func TestRenderer_Draw_DoesNotTouchSource(t *testing.T) {
	original := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer original.Close()

	reference := original.Clone()
	defer reference.Close()

	annotated := original.Clone()
	defer annotated.Close()

	hand := detector.OpenPalmLandmarks()
	contour := BuildContour(hand, 640, 480)

	r := NewRenderer(DefaultStyle())
	r.Draw(&annotated, []detector.HandLandmarks{hand}, [][]image.Point{contour}, 15.0)

	full := image.Rect(0, 0, 640, 480)
	if got := nonZeroInRegion(t, original, reference, full); got != 0 {
		t.Errorf("drawing on the copy modified the source frame: %d pixels changed", got)
	}
}

func TestDefaultStyle(t *testing.T) {
	style := DefaultStyle()

	if style.ContourColor.G != 255 || style.ContourColor.R != 0 || style.ContourColor.B != 0 {
		t.Errorf("contour color = %v, want green (0,255,0)", style.ContourColor)
	}
	if style.ContourThickness != 2 {
		t.Errorf("contour thickness = %d, want 2", style.ContourThickness)
	}
	if style.TextOrigin != (image.Point{X: 10, Y: 30}) {
		t.Errorf("text origin = %v, want (10,30)", style.TextOrigin)
	}
	if style.TextScale != 1 {
		t.Errorf("text scale = %f, want 1", style.TextScale)
	}
	if style.TextColor != style.ContourColor {
		t.Errorf("text color = %v, want same as contour color", style.TextColor)
	}
	if style.TextThickness != 2 {
		t.Errorf("text thickness = %d, want 2", style.TextThickness)
	}
}
