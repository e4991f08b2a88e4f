package canvas

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// PNGOptions configures the png snapshot backend.
type PNGOptions struct {
	Dir string `mapstructure:"dir"`
}

// New builds a canvas backend from its configured name and raw options map.
func New(backend string, width, height int, options map[string]any) (Canvas, error) {
	switch backend {
	case "", "memory":
		return NewMemory(width, height), nil
	case "png":
		var opts PNGOptions
		if err := mapstructure.Decode(options, &opts); err != nil {
			return nil, fmt.Errorf("invalid png canvas options: %w", err)
		}
		if opts.Dir == "" {
			opts.Dir = "frames"
		}
		return NewPNGDir(width, height, opts.Dir)
	default:
		return nil, fmt.Errorf("unknown canvas backend: %s", backend)
	}
}
