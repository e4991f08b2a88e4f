// Package sender implements the test frame sender for both ingestion paths.
//
// It stands in for the real upstream renderer: frames come either from a
// decoded image file or from a procedural moving-gradient pattern, are laid
// out in the bottom-origin RGB24 wire convention, and are transmitted as
// chunked datagrams or as a raw byte stream.
package sender

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net"
	"os"
	"time"

	"firestige.xyz/ledwall/internal/frame"
	"firestige.xyz/ledwall/internal/ingest"
)

// Config controls one sender run.
type Config struct {
	Addr      string // receiver address
	Mode      string // udp | tcp
	Width     int
	Height    int
	ChunkSize int           // datagram payload size (udp mode)
	Interval  time.Duration // delay between frames
	Frames    int           // number of frames to send; 0 = until cancelled
	ImagePath string        // empty = procedural pattern
}

// Packets splits a frame into chunked datagrams carrying the given frame id.
// The last packet may be shorter than the chunk size.
func Packets(f *frame.Frame, id uint16, chunkSize int) [][]byte {
	buf := f.Bytes()
	total := (len(buf) + chunkSize - 1) / chunkSize
	packets := make([][]byte, 0, total)
	for idx := 0; idx < total; idx++ {
		hdr := ingest.Header{
			FrameID:      id,
			PacketIndex:  uint16(idx),
			TotalPackets: uint16(total),
		}
		start := idx * chunkSize
		end := start + chunkSize
		if end > len(buf) {
			end = len(buf)
		}
		pkt := append(hdr.Marshal(), buf[start:end]...)
		packets = append(packets, pkt)
	}
	return packets
}

// Pattern fills f with a moving diagonal gradient; step advances the animation.
func Pattern(f *frame.Frame, step int) {
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			f.SetPixel(x, y,
				uint8(x+step),
				uint8(y+step),
				uint8((x^y)+step),
			)
		}
	}
}

// LoadImage decodes an image file into the frame's bottom-origin layout.
// The image is clipped to the frame dimensions; smaller images leave the
// remainder black.
func LoadImage(path string, f *frame.Frame) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width := min(f.Width(), bounds.Dx())
	height := min(f.Height(), bounds.Dy())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Image origin is top-left; wire convention is bottom-left.
			f.SetPixel(x, f.Height()-1-y, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
	return nil
}

// Run transmits frames until the frame budget is spent or ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	network := "udp"
	if cfg.Mode == "tcp" {
		network = "tcp"
	}
	conn, err := net.Dial(network, cfg.Addr)
	if err != nil {
		return fmt.Errorf("dial %s %s: %w", network, cfg.Addr, err)
	}
	defer conn.Close()

	f := frame.New(cfg.Width, cfg.Height)
	if cfg.ImagePath != "" {
		if err := LoadImage(cfg.ImagePath, f); err != nil {
			return err
		}
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second / 30
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var id uint16
	for sent := 0; cfg.Frames == 0 || sent < cfg.Frames; sent++ {
		if cfg.ImagePath == "" {
			Pattern(f, sent)
		}
		if err := sendFrame(conn, f, id, cfg); err != nil {
			return err
		}
		id++ // wraps at 65536, same as the receiver's id space

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// sendFrame writes one frame in the configured wire format.
func sendFrame(conn net.Conn, f *frame.Frame, id uint16, cfg Config) error {
	if cfg.Mode == "tcp" {
		if _, err := conn.Write(f.Bytes()); err != nil {
			return fmt.Errorf("stream write: %w", err)
		}
		return nil
	}
	for _, pkt := range Packets(f, id, cfg.ChunkSize) {
		if _, err := conn.Write(pkt); err != nil {
			return fmt.Errorf("datagram write: %w", err)
		}
	}
	return nil
}
