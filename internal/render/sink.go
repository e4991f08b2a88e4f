// Package render commits completed frames to the display canvas.
package render

import (
	"log/slog"
	"time"

	"firestige.xyz/ledwall/internal/canvas"
	"firestige.xyz/ledwall/internal/frame"
	"firestige.xyz/ledwall/internal/metrics"
)

// Sink writes completed frames to a canvas and presents them.
type Sink struct {
	canvas canvas.Canvas
}

// NewSink wraps the given canvas.
func NewSink(c canvas.Canvas) *Sink {
	return &Sink{canvas: c}
}

// ValidateDimensions compares the configured frame geometry against the
// canvas. A mismatch is diagnostic only: pixel writes outside the canvas are
// clipped by the implementation, so processing continues.
func (s *Sink) ValidateDimensions(f *frame.Frame) {
	if s.canvas.Width() != f.Width() || s.canvas.Height() != f.Height() {
		slog.Warn("canvas size differs from configured frame size",
			"canvas_width", s.canvas.Width(),
			"canvas_height", s.canvas.Height(),
			"frame_width", f.Width(),
			"frame_height", f.Height(),
		)
	}
}

// Present writes every pixel of f to the canvas and swaps it to the front.
//
// Buffer row 0 is the bottom row in the sender's convention, so rows are
// always flipped vertically into the canvas's top-left-origin coordinates.
func (s *Sink) Present(f *frame.Frame) error {
	start := time.Now()
	width := f.Width()
	height := f.Height()
	buf := f.Bytes()
	i := 0
	for yBuf := 0; yBuf < height; yBuf++ {
		y := height - 1 - yBuf
		for x := 0; x < width; x++ {
			s.canvas.SetPixel(x, y, buf[i], buf[i+1], buf[i+2])
			i += 3
		}
	}
	if err := s.canvas.Swap(); err != nil {
		return err
	}
	metrics.PresentSeconds.Observe(time.Since(start).Seconds())
	return nil
}
