// Package daemon implements the receiver process lifecycle.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"firestige.xyz/ledwall/internal/canvas"
	"firestige.xyz/ledwall/internal/config"
	"firestige.xyz/ledwall/internal/frame"
	"firestige.xyz/ledwall/internal/ingest"
	"firestige.xyz/ledwall/internal/metrics"
	"firestige.xyz/ledwall/internal/render"
)

// receiver is the contract both ingestion loops satisfy.
type receiver interface {
	Run(ctx context.Context) error
}

// Daemon wires the canvas, the render sink and the configured ingestion loop
// together and owns their lifecycle.
type Daemon struct {
	cfg           *config.GlobalConfig
	canvas        canvas.Canvas
	sink          *render.Sink
	frame         *frame.Frame
	metricsServer *metrics.Server
}

// New creates the canvas and the frame buffer from validated configuration.
func New(cfg *config.GlobalConfig) (*Daemon, error) {
	c, err := canvas.New(cfg.Canvas.Backend, cfg.Display.Width(), cfg.Display.Height(), cfg.Canvas.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}
	return &Daemon{
		cfg:    cfg,
		canvas: c,
		sink:   render.NewSink(c),
		frame:  frame.New(cfg.Display.Width(), cfg.Display.Height()),
	}, nil
}

// Run blocks until an interrupt signal arrives or a receiver fails.
// Socket setup failures are returned to the caller and terminate the
// process; everything downstream is handled inside the loops.
func (d *Daemon) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d.sink.ValidateDimensions(d.frame)

	if d.cfg.Metrics.Enabled {
		d.metricsServer = metrics.NewServer(d.cfg.Metrics.Listen, d.cfg.Metrics.Path)
		if err := d.metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	recv, err := d.newReceiver()
	if err != nil {
		d.shutdown()
		return err
	}

	slog.Info("ledwall receiver started",
		"mode", d.cfg.Ingest.Mode,
		"width", d.cfg.Display.Width(),
		"height", d.cfg.Display.Height(),
		"frame_bytes", d.cfg.Display.FrameBytes(),
	)

	err = recv.Run(ctx)
	d.shutdown()
	return err
}

// newReceiver builds the ingestion loop selected by config.
func (d *Daemon) newReceiver() (receiver, error) {
	switch d.cfg.Ingest.Mode {
	case "udp":
		return ingest.NewUDPReceiver(
			d.cfg.Ingest.UDP.Listen,
			d.cfg.Ingest.UDP.RecvBufferBytes,
			d.frame,
			d.cfg.Ingest.UDP.ChunkSize,
			d.sink,
		)
	case "tcp":
		return ingest.NewTCPReceiver(d.cfg.Ingest.TCP.Listen, d.frame, d.sink)
	default:
		return nil, fmt.Errorf("unknown ingest mode: %s", d.cfg.Ingest.Mode)
	}
}

// shutdown blanks the display and releases resources.
func (d *Daemon) shutdown() {
	if d.metricsServer != nil {
		d.metricsServer.Stop(context.Background())
	}
	d.canvas.Clear()
	if err := d.canvas.Close(); err != nil {
		slog.Warn("canvas close failed", "error", err)
	}
	slog.Info("ledwall receiver stopped")
}
