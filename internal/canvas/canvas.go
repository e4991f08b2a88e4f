// Package canvas defines the display surface contract consumed by the
// renderer, plus the built-in software backends.
//
// The real LED wall is driven by an external display library that owns GPIO
// timing and panel multiplexing; it is consumed only through this contract.
package canvas

// Canvas abstracts the physical display.
//
// SetPixel writes to an offscreen buffer. Swap presents that buffer on the
// display and hands a fresh writable buffer back to the caller, so exactly
// one party owns the writable buffer at any time. Coordinates use a top-left
// origin. Implementations clip out-of-range writes rather than failing.
type Canvas interface {
	Width() int
	Height() int
	SetPixel(x, y int, r, g, b uint8)
	Swap() error
	Clear()
	Close() error
}
