package headlessterm

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a host typically wants to load from a file or
// environment rather than hardcode: initial grid size, scrollback depth,
// tab width, and the identification strings DA/DECID reply with.
type Config struct {
	Rows         int    `yaml:"rows"`
	Cols         int    `yaml:"cols"`
	ScrollbackMax int   `yaml:"scrollback_max"`
	TabWidth     int    `yaml:"tab_width"`
	InitialTitle string `yaml:"initial_title"`
	VTIdent      string `yaml:"vt_ident"`
	Palette      []string `yaml:"palette,omitempty"`
}

// DefaultConfig returns the grid size and tab width New uses when no options
// override them, plus a scrollback depth of 10000 that New itself does not
// apply.
func DefaultConfig() Config {
	return Config{
		Rows:          24,
		Cols:          80,
		ScrollbackMax: 10000,
		TabWidth:      defaultTabWidth,
	}
}

// LoadConfig reads and validates a YAML config from r.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("headlessterm: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config from disk.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("headlessterm: open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate rejects non-positive dimensions and tab widths.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("headlessterm: config rows/cols must be >= 1, got (%d, %d)", c.Rows, c.Cols)
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("headlessterm: config tab_width must be >= 1, got %d", c.TabWidth)
	}
	if c.ScrollbackMax < 0 {
		return fmt.Errorf("headlessterm: config scrollback_max must be >= 0, got %d", c.ScrollbackMax)
	}
	return nil
}

// Options translates the config's size, tab width and VTIdent into the
// New/Option constructors. ScrollbackMax and Palette are not translated.
func (c Config) Options() []Option {
	opts := []Option{
		WithSize(c.Rows, c.Cols),
		WithTabWidth(c.TabWidth),
	}
	if c.VTIdent != "" {
		opts = append(opts, WithVTIdent(c.VTIdent))
	}
	return opts
}

// NewFromConfig builds a Term from a Config plus any further options, which
// take precedence over the config's own (WithSize after WithSize wins).
func NewFromConfig(cfg Config, opts ...Option) *Term {
	all := append(cfg.Options(), opts...)
	t := New(all...)
	if cfg.InitialTitle != "" {
		t.setTitle(cfg.InitialTitle)
	}
	return t
}
