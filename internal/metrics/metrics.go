// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PacketsReceivedTotal counts datagrams read from the UDP socket.
	PacketsReceivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledwall_packets_received_total",
			Help: "Total number of datagrams received",
		},
	)

	// PacketsDroppedTotal counts datagrams discarded during reassembly by reason.
	PacketsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledwall_packets_dropped_total",
			Help: "Total number of datagrams dropped during reassembly",
		},
		[]string{"reason"},
	)

	// BytesReceivedTotal counts payload bytes received per ingestion path.
	BytesReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledwall_bytes_received_total",
			Help: "Total number of bytes received",
		},
		[]string{"path"},
	)

	// FramesPresentedTotal counts completed frames committed to the canvas.
	FramesPresentedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledwall_frames_presented_total",
			Help: "Total number of frames presented to the canvas",
		},
		[]string{"path"},
	)

	// FramesDiscardedTotal counts unfinished frames superseded by a new frame id.
	FramesDiscardedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledwall_frames_discarded_total",
			Help: "Total number of incomplete frames superseded before completion",
		},
	)

	// StreamSessionsTotal counts accepted stream sender connections.
	StreamSessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledwall_stream_sessions_total",
			Help: "Total number of accepted stream sender connections",
		},
	)

	// PresentSeconds measures the time spent writing and swapping one frame.
	PresentSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ledwall_present_seconds",
			Help:    "Time spent committing a completed frame to the canvas",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~0.4s
		},
	)
)
