package canvas

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGDir is a canvas that encodes every presented frame as a PNG file in a
// directory. Useful for headless debugging of the ingestion pipeline.
type PNGDir struct {
	width  int
	height int
	dir    string
	back   *image.RGBA
	seq    int
}

// NewPNGDir creates the snapshot directory if needed.
func NewPNGDir(width, height int, dir string) (*PNGDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	return &PNGDir{
		width:  width,
		height: height,
		dir:    dir,
		back:   image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

func (p *PNGDir) Width() int  { return p.width }
func (p *PNGDir) Height() int { return p.height }

func (p *PNGDir) SetPixel(x, y int, r, g, b uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := p.back.PixOffset(x, y)
	p.back.Pix[i] = r
	p.back.Pix[i+1] = g
	p.back.Pix[i+2] = b
	p.back.Pix[i+3] = 0xff
}

// Swap writes the back buffer to the next numbered snapshot file.
func (p *PNGDir) Swap() error {
	name := filepath.Join(p.dir, fmt.Sprintf("frame-%06d.png", p.seq))
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, p.back); err != nil {
		return fmt.Errorf("encode snapshot %s: %w", name, err)
	}
	p.seq++
	return nil
}

// Clear blanks the back buffer.
func (p *PNGDir) Clear() {
	clear(p.back.Pix)
}

func (p *PNGDir) Close() error { return nil }
