package app

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDisplay records shown frames and plays back a scripted key sequence
// for testing. Each PollKey call consumes one scripted key; once the script
// is exhausted it reports "no key pressed".
type MockDisplay struct {
	mu     sync.Mutex
	keys   []int
	polls  int
	shows  int
	closes int
	err    error
}

func NewMockDisplay() *MockDisplay {
	return &MockDisplay{}
}

// SetKeys scripts the values returned by successive PollKey calls.
func (d *MockDisplay) SetKeys(keys []int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys = keys
	d.polls = 0
}

// SetShowError makes Show return err.
func (d *MockDisplay) SetShowError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

func (d *MockDisplay) Show(frame *gocv.Mat) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shows++
	return d.err
}

func (d *MockDisplay) PollKey(timeoutMs int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.polls < len(d.keys) {
		key := d.keys[d.polls]
		d.polls++
		return key
	}
	d.polls++
	return -1
}

func (d *MockDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

// Shows returns how many frames were shown.
func (d *MockDisplay) Shows() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shows
}

// Closes returns how many times Close was called.
func (d *MockDisplay) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}
