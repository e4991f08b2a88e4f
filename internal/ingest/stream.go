package ingest

import (
	"errors"
	"fmt"
	"io"

	"firestige.xyz/ledwall/internal/frame"
)

// ErrConnectionClosed reports that the stream ended before a full frame arrived.
var ErrConnectionClosed = errors.New("connection closed")

// ReadFrame blocks until exactly one frame worth of bytes has been read into
// f. The stream carries no framing: frame boundaries are purely positional,
// so a sender that writes a different byte count per logical frame silently
// desynchronizes all subsequent frames.
//
// Any error or EOF before the frame is full discards the partial data and
// reports ErrConnectionClosed; each new connection starts from byte zero.
func ReadFrame(r io.Reader, f *frame.Frame) error {
	if _, err := io.ReadFull(r, f.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionClosed, err)
	}
	return nil
}
