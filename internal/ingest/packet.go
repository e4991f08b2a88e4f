// Package ingest implements the two frame ingestion paths: datagram
// reassembly over UDP and whole-frame stream reads over TCP.
package ingest

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed length of the datagram header in bytes.
const HeaderSize = 6

// Header precedes every datagram payload. All fields travel in network byte
// order. The payload that follows is a contiguous slice of the row-major
// RGB24 frame buffer at offset PacketIndex*chunkSize.
type Header struct {
	FrameID      uint16
	PacketIndex  uint16
	TotalPackets uint16
}

// ParseHeader decodes the 6-byte header at the start of a datagram.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("datagram too short for header: %d bytes", len(b))
	}
	return Header{
		FrameID:      binary.BigEndian.Uint16(b[0:2]),
		PacketIndex:  binary.BigEndian.Uint16(b[2:4]),
		TotalPackets: binary.BigEndian.Uint16(b[4:6]),
	}, nil
}

// Marshal serializes the header in network byte order.
func (h Header) Marshal() []byte {
	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(b[0:2], h.FrameID)
	binary.BigEndian.PutUint16(b[2:4], h.PacketIndex)
	binary.BigEndian.PutUint16(b[4:6], h.TotalPackets)
	return b
}
