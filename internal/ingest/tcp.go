package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/net/netutil"

	"firestige.xyz/ledwall/internal/frame"
	"firestige.xyz/ledwall/internal/metrics"
	"firestige.xyz/ledwall/internal/render"
)

// TCPReceiver accepts one sender at a time and reads unframed RGB24 frames
// from the connection. When a sender disconnects the receiver returns to the
// accept state instead of terminating.
type TCPReceiver struct {
	ln   net.Listener
	f    *frame.Frame
	sink *render.Sink
}

// NewTCPReceiver binds the listen address. A listen failure is fatal to the
// caller. The display belongs to one sender at a time, so concurrent
// connections are held back at the listener.
func NewTCPReceiver(listen string, f *frame.Frame, sink *render.Sink) (*TCPReceiver, error) {
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return nil, fmt.Errorf("listen tcp %s: %w", listen, err)
	}
	return &TCPReceiver{
		ln:   netutil.LimitListener(ln, 1),
		f:    f,
		sink: sink,
	}, nil
}

// Addr returns the bound listener address.
func (t *TCPReceiver) Addr() net.Addr { return t.ln.Addr() }

// Run accepts and serves senders until ctx is cancelled.
func (t *TCPReceiver) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { t.ln.Close() })
	defer stop()
	defer t.ln.Close()

	for {
		if ctx.Err() != nil {
			return nil
		}
		slog.Info("waiting for sender connection", "addr", t.ln.Addr().String())
		conn, err := t.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("tcp accept: %w", err)
			}
			slog.Warn("accept failed", "error", err)
			continue
		}
		metrics.StreamSessionsTotal.Inc()
		slog.Info("sender connected", "remote", conn.RemoteAddr().String())
		t.serve(ctx, conn)
	}
}

// serve reads frames until the connection closes or ctx is cancelled.
//
// There is deliberately no read deadline: a sender that connects and never
// writes holds the loop here until it disconnects.
func (t *TCPReceiver) serve(ctx context.Context, conn net.Conn) {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	for {
		if ctx.Err() != nil {
			return
		}
		if err := ReadFrame(conn, t.f); err != nil {
			slog.Info("sender disconnected", "remote", conn.RemoteAddr().String())
			return
		}
		metrics.BytesReceivedTotal.WithLabelValues("tcp").Add(float64(t.f.Size()))
		if err := t.sink.Present(t.f); err != nil {
			slog.Error("present failed", "error", err)
			continue
		}
		metrics.FramesPresentedTotal.WithLabelValues("tcp").Inc()
	}
}
