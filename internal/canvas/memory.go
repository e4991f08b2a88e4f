package canvas

import "sync"

// Memory is a double-buffered in-memory canvas. It backs tests and dry runs
// where no display hardware is attached.
//
// The mutex exists because tests inspect the front buffer from a different
// goroutine than the ingestion loop writing it.
type Memory struct {
	mu     sync.Mutex
	width  int
	height int
	front  []byte
	back   []byte
	swaps  int
}

// NewMemory creates a memory canvas with both buffers zeroed.
func NewMemory(width, height int) *Memory {
	return &Memory{
		width:  width,
		height: height,
		front:  make([]byte, width*height*3),
		back:   make([]byte, width*height*3),
	}
}

func (m *Memory) Width() int  { return m.width }
func (m *Memory) Height() int { return m.height }

// SetPixel writes to the back buffer. Out-of-range coordinates are clipped.
func (m *Memory) SetPixel(x, y int, r, g, b uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.mu.Lock()
	i := (y*m.width + x) * 3
	m.back[i] = r
	m.back[i+1] = g
	m.back[i+2] = b
	m.mu.Unlock()
}

// Swap presents the back buffer. The previous front buffer becomes the new
// writable back buffer with its old content intact, matching the hand-off
// behavior of hardware double buffering.
func (m *Memory) Swap() error {
	m.mu.Lock()
	m.front, m.back = m.back, m.front
	m.swaps++
	m.mu.Unlock()
	return nil
}

// Clear blanks both buffers.
func (m *Memory) Clear() {
	m.mu.Lock()
	clear(m.front)
	clear(m.back)
	m.mu.Unlock()
}

// Close releases nothing; the memory canvas has no hardware resources.
func (m *Memory) Close() error { return nil }

// Pixel returns the front-buffer pixel at (x, y). Test helper.
func (m *Memory) Pixel(x, y int) (r, g, b uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := (y*m.width + x) * 3
	return m.front[i], m.front[i+1], m.front[i+2]
}

// Swaps returns how many buffers have been presented.
func (m *Memory) Swaps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.swaps
}
