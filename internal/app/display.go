package app

import "gocv.io/x/gocv"

// WindowTitle is the fixed title of the display window.
const WindowTitle = "Hand Detection"

// Display defines the interface for the annotated-frame sink. PollKey does a
// non-blocking key poll bounded by timeoutMs and returns the pressed key
// code, or a negative value if no key was pressed.
type Display interface {
	Show(frame *gocv.Mat) error
	PollKey(timeoutMs int) int
	Close() error
}

// windowDisplay shows frames in a HighGUI window. HighGUI is not
// thread-safe; the display loop owns this sink exclusively.
type windowDisplay struct {
	window *gocv.Window
}

// NewWindowDisplay creates a Display backed by a gocv window with the given
// title.
func NewWindowDisplay(title string) Display {
	return &windowDisplay{window: gocv.NewWindow(title)}
}

func (d *windowDisplay) Show(frame *gocv.Mat) error {
	d.window.IMShow(*frame)
	return nil
}

func (d *windowDisplay) PollKey(timeoutMs int) int {
	return d.window.WaitKey(timeoutMs)
}

func (d *windowDisplay) Close() error {
	return d.window.Close()
}
