package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"firestige.xyz/ledwall/internal/frame"
	"firestige.xyz/ledwall/internal/metrics"
	"firestige.xyz/ledwall/internal/render"
)

// UDPReceiver owns the datagram socket and drives the reassembler. There is
// no connection concept on this path; the loop consumes packets for the
// lifetime of the process.
type UDPReceiver struct {
	conn      *net.UDPConn
	rs        *Reassembler
	sink      *render.Sink
	chunkSize int
}

// NewUDPReceiver binds the listen address. A bind failure is fatal to the
// caller; it is the only error class that terminates the process.
func NewUDPReceiver(listen string, recvBuffer int, f *frame.Frame, chunkSize int, sink *render.Sink) (*UDPReceiver, error) {
	addr, err := net.ResolveUDPAddr("udp", listen)
	if err != nil {
		return nil, fmt.Errorf("resolve udp address %s: %w", listen, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind udp %s: %w", listen, err)
	}
	if recvBuffer > 0 {
		if err := conn.SetReadBuffer(recvBuffer); err != nil {
			slog.Warn("could not grow socket receive buffer",
				"bytes", recvBuffer, "error", err)
		}
	}
	return &UDPReceiver{
		conn:      conn,
		rs:        NewReassembler(f, chunkSize),
		sink:      sink,
		chunkSize: chunkSize,
	}, nil
}

// Addr returns the bound socket address.
func (u *UDPReceiver) Addr() net.Addr { return u.conn.LocalAddr() }

// Run consumes datagrams until ctx is cancelled. Cancellation closes the
// socket to unblock the receive; shutdown latency is bounded by one receive
// plus one render cycle.
func (u *UDPReceiver) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { u.conn.Close() })
	defer stop()
	defer u.conn.Close()

	slog.Info("listening for datagram frames", "addr", u.conn.LocalAddr().String())

	// One byte larger than a maximal packet so oversized datagrams are
	// detectable instead of silently truncated by the read.
	buf := make([]byte, HeaderSize+u.chunkSize+1)
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, _, err := u.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("udp receive: %w", err)
		}
		metrics.PacketsReceivedTotal.Inc()
		metrics.BytesReceivedTotal.WithLabelValues("udp").Add(float64(n))

		verdict := u.rs.Submit(buf[:n])
		switch {
		case verdict == VerdictComplete:
			if err := u.sink.Present(u.rs.Frame()); err != nil {
				slog.Error("present failed", "frame_id", u.rs.FrameID(), "error", err)
				continue
			}
			metrics.FramesPresentedTotal.WithLabelValues("udp").Inc()
		case verdict.Dropped():
			metrics.PacketsDroppedTotal.WithLabelValues(verdict.String()).Inc()
			slog.Debug("datagram dropped", "reason", verdict.String(), "bytes", n)
		}
	}
}
