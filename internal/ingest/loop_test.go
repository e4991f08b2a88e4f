package ingest

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/ledwall/internal/canvas"
	"firestige.xyz/ledwall/internal/frame"
	"firestige.xyz/ledwall/internal/render"
)

// waitSwaps polls the memory canvas until n frames were presented.
func waitSwaps(t *testing.T, mem *canvas.Memory, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for mem.Swaps() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d presented frames (got %d)", n, mem.Swaps())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestUDPReceiverEndToEnd(t *testing.T) {
	const chunk = 8
	mem := canvas.NewMemory(4, 2)
	recv, err := NewUDPReceiver("127.0.0.1:0", 0, frame.New(4, 2), chunk, render.NewSink(mem))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- recv.Run(ctx) }()

	conn, err := net.Dial("udp", recv.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	src := frame.New(4, 2)
	for i := range src.Bytes() {
		src.Bytes()[i] = byte(i + 10)
	}
	// 24 bytes / 8 = 3 packets, sent out of order.
	for _, idx := range []uint16{1, 2, 0} {
		pkt := packet(1, idx, 3, src.Bytes()[int(idx)*chunk:int(idx)*chunk+chunk]...)
		_, err := conn.Write(pkt)
		require.NoError(t, err)
	}

	waitSwaps(t, mem, 1)

	// Buffer row 0 lands on the bottom canvas row.
	r, g, b := mem.Pixel(0, 1)
	wr, wg, wb := src.Pixel(0, 0)
	assert.Equal(t, [3]uint8{wr, wg, wb}, [3]uint8{r, g, b})

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("udp receiver did not stop after cancellation")
	}
}

func TestTCPReceiverReconnects(t *testing.T) {
	mem := canvas.NewMemory(4, 2)
	recv, err := NewTCPReceiver("127.0.0.1:0", frame.New(4, 2), render.NewSink(mem))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- recv.Run(ctx) }()

	writeFrame := func(fill byte) {
		conn, err := net.Dial("tcp", recv.Addr().String())
		require.NoError(t, err)
		defer conn.Close()
		buf := make([]byte, 24)
		for i := range buf {
			buf[i] = fill
		}
		_, err = conn.Write(buf)
		require.NoError(t, err)
	}

	// First sender presents one frame, then disconnects.
	writeFrame(0x11)
	waitSwaps(t, mem, 1)

	// The loop returns to accept; a second sender must be served.
	writeFrame(0x22)
	waitSwaps(t, mem, 2)

	r, _, _ := mem.Pixel(0, 0)
	assert.Equal(t, uint8(0x22), r)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("tcp receiver did not stop after cancellation")
	}
}

func TestTCPReceiverDiscardsPartialFrame(t *testing.T) {
	mem := canvas.NewMemory(4, 2)
	recv, err := NewTCPReceiver("127.0.0.1:0", frame.New(4, 2), render.NewSink(mem))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- recv.Run(ctx) }()

	// A sender that disconnects mid-frame must not present anything.
	conn, err := net.Dial("tcp", recv.Addr().String())
	require.NoError(t, err)
	_, err = conn.Write(make([]byte, 10))
	require.NoError(t, err)
	conn.Close()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, mem.Swaps())
}
