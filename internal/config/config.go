// Package config handles global configuration loading using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// maxChunkSize is the largest datagram payload that fits a UDP packet after
// the 6-byte header.
const maxChunkSize = 65501

// GlobalConfig represents the top-level static configuration.
// Maps to the `ledwall:` root key in YAML.
type GlobalConfig struct {
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Ingest  IngestConfig  `mapstructure:"ingest" yaml:"ingest"`
	Canvas  CanvasConfig  `mapstructure:"canvas" yaml:"canvas"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ─── Display Geometry ───

// DisplayConfig describes the panel grid forming the logical surface.
// Logical dimensions are derived, never configured directly, so the frame
// buffer is always consistent with the panel layout.
type DisplayConfig struct {
	Panel PanelConfig `mapstructure:"panel" yaml:"panel"`
	Grid  GridConfig  `mapstructure:"grid" yaml:"grid"`
}

// PanelConfig is the pixel size of one physical panel.
type PanelConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// GridConfig is the panel arrangement: Cols panels per chain, Rows chains.
type GridConfig struct {
	Cols int `mapstructure:"cols" yaml:"cols"`
	Rows int `mapstructure:"rows" yaml:"rows"`
}

// Width returns the logical surface width in pixels.
func (d DisplayConfig) Width() int { return d.Panel.Width * d.Grid.Cols }

// Height returns the logical surface height in pixels.
func (d DisplayConfig) Height() int { return d.Panel.Height * d.Grid.Rows }

// FrameBytes returns the byte length of one complete RGB24 frame.
func (d DisplayConfig) FrameBytes() int { return d.Width() * d.Height() * 3 }

// ─── Ingestion ───

// IngestConfig selects and configures the ingestion path.
type IngestConfig struct {
	Mode string    `mapstructure:"mode" yaml:"mode"` // udp | tcp
	UDP  UDPConfig `mapstructure:"udp" yaml:"udp"`
	TCP  TCPConfig `mapstructure:"tcp" yaml:"tcp"`
}

// UDPConfig configures the datagram path.
type UDPConfig struct {
	Listen          string `mapstructure:"listen" yaml:"listen"`
	ChunkSize       int    `mapstructure:"chunk_size" yaml:"chunk_size"`
	RecvBufferBytes int    `mapstructure:"recv_buffer_bytes" yaml:"recv_buffer_bytes"`
}

// TCPConfig configures the stream path.
type TCPConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen"`
}

// ─── Canvas ───

// CanvasConfig selects the canvas backend. Options are backend-specific and
// decoded by the canvas factory.
type CanvasConfig struct {
	Backend string         `mapstructure:"backend" yaml:"backend"`
	Options map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

// ─── Metrics ───

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Listen  string `mapstructure:"listen" yaml:"listen"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// ─── Log ───

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string           `mapstructure:"level" yaml:"level"`   // debug / info / warn / error
	Format  string           `mapstructure:"format" yaml:"format"` // json / text
	Outputs LogOutputsConfig `mapstructure:"outputs" yaml:"outputs"`
}

// LogOutputsConfig contains structured log output destinations.
type LogOutputsConfig struct {
	File FileOutputConfig `mapstructure:"file" yaml:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled" yaml:"enabled"`
	Path     string         `mapstructure:"path" yaml:"path"`
	Rotation RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days" yaml:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	Compress   bool `mapstructure:"compress" yaml:"compress"`
}

// ─── Loading ───

// configRoot is the top-level wrapper matching the YAML structure `ledwall: ...`.
type configRoot struct {
	Ledwall GlobalConfig `mapstructure:"ledwall"`
}

// Load loads configuration from file.
// The YAML file uses `ledwall:` as root key; env vars use the LEDWALL_ prefix
// via the key replacer (e.g., key "ledwall.log.level" → env "LEDWALL_LOG_LEVEL").
func Load(path string) (*GlobalConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Ledwall

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration.
// All keys use the "ledwall." prefix to match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	// Display defaults: 4x3 grid of 64x64 panels → 256x192 logical surface.
	v.SetDefault("ledwall.display.panel.width", 64)
	v.SetDefault("ledwall.display.panel.height", 64)
	v.SetDefault("ledwall.display.grid.cols", 4)
	v.SetDefault("ledwall.display.grid.rows", 3)

	// Ingestion defaults
	v.SetDefault("ledwall.ingest.mode", "udp")
	v.SetDefault("ledwall.ingest.udp.listen", ":5005")
	v.SetDefault("ledwall.ingest.udp.chunk_size", 1024)
	v.SetDefault("ledwall.ingest.udp.recv_buffer_bytes", 1<<20)
	v.SetDefault("ledwall.ingest.tcp.listen", "127.0.0.1:9999")

	// Canvas defaults
	v.SetDefault("ledwall.canvas.backend", "memory")

	// Metrics defaults
	v.SetDefault("ledwall.metrics.enabled", true)
	v.SetDefault("ledwall.metrics.listen", ":9091")
	v.SetDefault("ledwall.metrics.path", "/metrics")

	// Log defaults
	v.SetDefault("ledwall.log.level", "info")
	v.SetDefault("ledwall.log.format", "text")
	v.SetDefault("ledwall.log.outputs.file.enabled", false)
	v.SetDefault("ledwall.log.outputs.file.path", "/var/log/ledwall/ledwall.log")
	v.SetDefault("ledwall.log.outputs.file.rotation.max_size_mb", 100)
	v.SetDefault("ledwall.log.outputs.file.rotation.max_age_days", 30)
	v.SetDefault("ledwall.log.outputs.file.rotation.max_backups", 5)
	v.SetDefault("ledwall.log.outputs.file.rotation.compress", true)
}

// ValidateAndApplyDefaults validates configuration values.
func (cfg *GlobalConfig) ValidateAndApplyDefaults() error {
	// ── Log validation ──
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug/info/warn/error)", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json/text)", cfg.Log.Format)
	}

	// ── Display geometry ──
	if cfg.Display.Panel.Width <= 0 || cfg.Display.Panel.Height <= 0 {
		return fmt.Errorf("invalid panel size: %dx%d", cfg.Display.Panel.Width, cfg.Display.Panel.Height)
	}
	if cfg.Display.Grid.Cols <= 0 || cfg.Display.Grid.Rows <= 0 {
		return fmt.Errorf("invalid panel grid: %dx%d", cfg.Display.Grid.Cols, cfg.Display.Grid.Rows)
	}

	// ── Ingestion ──
	switch cfg.Ingest.Mode {
	case "udp", "tcp":
	default:
		return fmt.Errorf("invalid ingest mode: %s (must be udp/tcp)", cfg.Ingest.Mode)
	}
	if cfg.Ingest.UDP.ChunkSize <= 0 || cfg.Ingest.UDP.ChunkSize > maxChunkSize {
		return fmt.Errorf("invalid chunk_size: %d (must be 1..%d)", cfg.Ingest.UDP.ChunkSize, maxChunkSize)
	}
	if cfg.Ingest.UDP.RecvBufferBytes < 0 {
		return fmt.Errorf("invalid recv_buffer_bytes: %d", cfg.Ingest.UDP.RecvBufferBytes)
	}

	return nil
}
