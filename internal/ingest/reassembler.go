package ingest

import (
	"log/slog"

	"firestige.xyz/ledwall/internal/frame"
	"firestige.xyz/ledwall/internal/metrics"
)

// Verdict classifies the outcome of submitting one datagram.
type Verdict int

const (
	// VerdictIncomplete means the packet was applied (or was a duplicate) and
	// the current frame is not yet complete.
	VerdictIncomplete Verdict = iota
	// VerdictComplete means this packet completed the current frame.
	VerdictComplete
	// VerdictShort means the datagram was smaller than the header.
	VerdictShort
	// VerdictOversize means the payload exceeded the chunk size.
	VerdictOversize
	// VerdictBadIndex means the packet index was outside the announced count.
	VerdictBadIndex
	// VerdictBadOffset means the destination offset was past the frame end.
	VerdictBadOffset
)

func (v Verdict) String() string {
	switch v {
	case VerdictIncomplete:
		return "incomplete"
	case VerdictComplete:
		return "complete"
	case VerdictShort:
		return "short"
	case VerdictOversize:
		return "oversize"
	case VerdictBadIndex:
		return "bad_index"
	case VerdictBadOffset:
		return "bad_offset"
	}
	return "unknown"
}

// Dropped reports whether the verdict is one of the drop classes.
func (v Verdict) Dropped() bool {
	return v != VerdictIncomplete && v != VerdictComplete
}

// Reassembler rebuilds one frame at a time from out-of-order datagrams.
//
// It keeps a single slot of state: the frame id currently being accumulated,
// the packet count announced by the first packet observed for that id, and a
// mask of indices already applied. Packets are applied immediately in any
// arrival order; there is no reordering queue and no retransmission. A packet
// carrying a different frame id unconditionally resets the slot, silently
// discarding any unfinished frame.
//
// A 16-bit id that wraps around to a stale abandoned value is
// indistinguishable from a new frame. The id width is kept for wire
// compatibility with existing senders; the ambiguity is an accepted
// limitation of the format.
type Reassembler struct {
	chunkSize int
	buf       *frame.Frame

	currentID uint16
	expected  int
	got       []bool
	received  int
	primed    bool
}

// NewReassembler creates a reassembler that accumulates into f. The chunk
// size must match the sender's fixed payload size, since packet offsets are
// computed as index*chunkSize.
func NewReassembler(f *frame.Frame, chunkSize int) *Reassembler {
	return &Reassembler{
		chunkSize: chunkSize,
		buf:       f,
	}
}

// Frame returns the frame under construction. Valid to render only after
// Submit reported VerdictComplete.
func (r *Reassembler) Frame() *frame.Frame { return r.buf }

// FrameID returns the id of the frame currently being accumulated.
func (r *Reassembler) FrameID() uint16 { return r.currentID }

// Submit applies one raw datagram to the current frame.
//
// Completion is reported exactly once per frame: on the packet that raises
// the received count to the announced total. Duplicates after completion
// report VerdictIncomplete. Drop verdicts never mutate state.
func (r *Reassembler) Submit(datagram []byte) Verdict {
	if len(datagram) < HeaderSize {
		return VerdictShort
	}
	hdr, _ := ParseHeader(datagram)
	payload := datagram[HeaderSize:]
	if len(payload) > r.chunkSize {
		return VerdictOversize
	}

	// A previously unseen frame id starts a new frame, abandoning whatever
	// the previous id had accumulated.
	if !r.primed || hdr.FrameID != r.currentID {
		r.reset(hdr)
	}

	if int(hdr.PacketIndex) >= r.expected {
		return VerdictBadIndex
	}

	buf := r.buf.Bytes()
	offset := int(hdr.PacketIndex) * r.chunkSize
	if offset >= len(buf) {
		return VerdictBadOffset
	}

	// Clipped to the buffer end: a payload overrunning the frame is a
	// tolerated malformed-sender condition, not an error.
	copy(buf[offset:], payload)

	if !r.got[hdr.PacketIndex] {
		r.got[hdr.PacketIndex] = true
		r.received++
		if r.received == r.expected {
			return VerdictComplete
		}
	}
	return VerdictIncomplete
}

// reset abandons the current frame and re-arms the slot for hdr's frame id.
func (r *Reassembler) reset(hdr Header) {
	if r.primed && r.received > 0 && r.received < r.expected {
		metrics.FramesDiscardedTotal.Inc()
		slog.Debug("superseding incomplete frame",
			"frame_id", r.currentID,
			"received", r.received,
			"expected", r.expected,
			"next_frame_id", hdr.FrameID,
		)
	}
	r.currentID = hdr.FrameID
	r.expected = int(hdr.TotalPackets)
	if r.expected <= cap(r.got) {
		r.got = r.got[:r.expected]
		clear(r.got)
	} else {
		r.got = make([]bool, r.expected)
	}
	r.received = 0
	r.primed = true
	r.buf.Reset()
}
