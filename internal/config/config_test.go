package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
ledwall:
  display:
    panel:
      width: 32
      height: 32
    grid:
      cols: 2
      rows: 2
  ingest:
    mode: "tcp"
    tcp:
      listen: "127.0.0.1:7777"
  canvas:
    backend: "png"
    options:
      dir: "/tmp/frames"
  log:
    level: "debug"
    format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Display.Width() != 64 || cfg.Display.Height() != 64 {
		t.Errorf("Expected 64x64 surface, got %dx%d", cfg.Display.Width(), cfg.Display.Height())
	}
	if cfg.Display.FrameBytes() != 64*64*3 {
		t.Errorf("Expected frame bytes %d, got %d", 64*64*3, cfg.Display.FrameBytes())
	}
	if cfg.Ingest.Mode != "tcp" {
		t.Errorf("Expected ingest mode tcp, got %s", cfg.Ingest.Mode)
	}
	if cfg.Ingest.TCP.Listen != "127.0.0.1:7777" {
		t.Errorf("Expected tcp listen 127.0.0.1:7777, got %s", cfg.Ingest.TCP.Listen)
	}
	if cfg.Canvas.Backend != "png" {
		t.Errorf("Expected canvas backend png, got %s", cfg.Canvas.Backend)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "ledwall:\n  log:\n    level: \"info\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Display.Width() != 256 || cfg.Display.Height() != 192 {
		t.Errorf("Expected default 256x192 surface, got %dx%d", cfg.Display.Width(), cfg.Display.Height())
	}
	if cfg.Ingest.Mode != "udp" {
		t.Errorf("Expected default ingest mode udp, got %s", cfg.Ingest.Mode)
	}
	if cfg.Ingest.UDP.ChunkSize != 1024 {
		t.Errorf("Expected default chunk_size 1024, got %d", cfg.Ingest.UDP.ChunkSize)
	}
	if cfg.Ingest.UDP.RecvBufferBytes != 1<<20 {
		t.Errorf("Expected default recv buffer 1MB, got %d", cfg.Ingest.UDP.RecvBufferBytes)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Expected metrics enabled by default")
	}
	if cfg.Canvas.Backend != "memory" {
		t.Errorf("Expected default canvas backend memory, got %s", cfg.Canvas.Backend)
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "ledwall:\n  log:\n    level: \"verbose\"\n")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid log level, got nil")
	}
}

func TestLoadInvalidIngestMode(t *testing.T) {
	path := writeConfig(t, "ledwall:\n  ingest:\n    mode: \"sctp\"\n")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid ingest mode, got nil")
	}
}

func TestLoadInvalidChunkSize(t *testing.T) {
	path := writeConfig(t, "ledwall:\n  ingest:\n    udp:\n      chunk_size: 0\n")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid chunk size, got nil")
	}

	path = writeConfig(t, "ledwall:\n  ingest:\n    udp:\n      chunk_size: 100000\n")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for oversized chunk size, got nil")
	}
}

func TestLoadInvalidGrid(t *testing.T) {
	path := writeConfig(t, "ledwall:\n  display:\n    grid:\n      cols: 0\n")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for zero grid cols, got nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}
