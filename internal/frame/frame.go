// Package frame defines the RGB24 frame buffer shared by both ingestion paths.
package frame

// Frame is one complete RGB24 image for the whole display surface.
//
// The buffer is row-major with three bytes per pixel. Row 0 is the bottom
// row in the sender's convention; the render sink flips rows when committing
// pixels to the canvas. The buffer is allocated once from validated runtime
// configuration and reused across receive cycles, never resized.
type Frame struct {
	width  int
	height int
	pix    []byte
}

// New allocates a zeroed frame buffer for the given logical dimensions.
func New(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*3),
	}
}

// Width returns the logical width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the logical height in pixels.
func (f *Frame) Height() int { return f.height }

// Size returns the byte length of one complete frame (width*height*3).
func (f *Frame) Size() int { return len(f.pix) }

// Bytes exposes the backing buffer. Callers may read and write pixel data in
// place but must not resize it.
func (f *Frame) Bytes() []byte { return f.pix }

// Pixel returns the RGB triplet at column x of buffer row y.
func (f *Frame) Pixel(x, y int) (r, g, b uint8) {
	i := (y*f.width + x) * 3
	return f.pix[i], f.pix[i+1], f.pix[i+2]
}

// SetPixel stores the RGB triplet at column x of buffer row y.
func (f *Frame) SetPixel(x, y int, r, g, b uint8) {
	i := (y*f.width + x) * 3
	f.pix[i] = r
	f.pix[i+1] = g
	f.pix[i+2] = b
}

// Reset zeroes the buffer for reuse by the next frame.
func (f *Frame) Reset() {
	clear(f.pix)
}
