package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/ledwall/internal/config"
)

func testConfig() *config.GlobalConfig {
	return &config.GlobalConfig{
		Display: config.DisplayConfig{
			Panel: config.PanelConfig{Width: 2, Height: 2},
			Grid:  config.GridConfig{Cols: 2, Rows: 1},
		},
		Ingest: config.IngestConfig{
			Mode: "udp",
			UDP:  config.UDPConfig{Listen: "127.0.0.1:0", ChunkSize: 8},
			TCP:  config.TCPConfig{Listen: "127.0.0.1:0"},
		},
		Canvas: config.CanvasConfig{Backend: "memory"},
	}
}

func TestNewBuildsFrameFromGeometry(t *testing.T) {
	d, err := New(testConfig())
	require.NoError(t, err)
	assert.Equal(t, 4, d.frame.Width())
	assert.Equal(t, 2, d.frame.Height())
	assert.Equal(t, 4*2*3, d.frame.Size())
}

func TestNewRejectsUnknownCanvas(t *testing.T) {
	cfg := testConfig()
	cfg.Canvas.Backend = "hub75"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewReceiverPerMode(t *testing.T) {
	d, err := New(testConfig())
	require.NoError(t, err)

	recv, err := d.newReceiver()
	require.NoError(t, err)
	assert.NotNil(t, recv)

	d.cfg.Ingest.Mode = "tcp"
	recv, err = d.newReceiver()
	require.NoError(t, err)
	assert.NotNil(t, recv)

	d.cfg.Ingest.Mode = "ipc"
	_, err = d.newReceiver()
	assert.Error(t, err)
}
