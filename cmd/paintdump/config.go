package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/paint"
)

// config controls how a stream is rendered. Flags override file values.
type config struct {
	Width      int
	Height     int
	Background string
	Backend    string

	// Decode settings for lazy images.
	DecodeCapacity int
	MaxDecodeBytes int

	Verbose bool
}

func defaultConfig() config {
	return config{
		Width:      800,
		Height:     600,
		Background: "#00000000",
		Backend:    "raster",
	}
}

// loadConfig reads a TOML file over the defaults. An empty path returns
// the defaults.
func loadConfig(path string) (config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, fmt.Errorf("paintdump: read config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return conf, fmt.Errorf("paintdump: unknown config key %q", undecoded[0].String())
	}
	return conf, conf.validate()
}

func (c config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("paintdump: invalid size %dx%d", c.Width, c.Height)
	}
	if !paint.IsRegistered(c.Backend) {
		return fmt.Errorf("paintdump: unknown backend %q (available: %v)", c.Backend, paint.Canvases())
	}
	return nil
}

func (c config) background() paint.Color { return paint.Hex(c.Background) }
