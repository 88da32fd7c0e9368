package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlay is the YAML-facing shape: every field is a pointer or zero-value-
// means-absent type so Load can tell "not set" apart from "set to zero".
type overlay struct {
	Tags        []string `yaml:"tags"`
	BorderPx    *int     `yaml:"border_px"`
	Snap        *int     `yaml:"snap"`
	ShowBar     *bool    `yaml:"show_bar"`
	TopBar      *bool    `yaml:"top_bar"`
	MFact       *float64 `yaml:"mfact"`
	ResizeHints *bool    `yaml:"resize_hints"`
	Font        *string  `yaml:"font"`

	NormBorder *Color `yaml:"norm_border"`
	NormBg     *Color `yaml:"norm_bg"`
	NormFg     *Color `yaml:"norm_fg"`
	SelBorder  *Color `yaml:"sel_border"`
	SelBg      *Color `yaml:"sel_bg"`
	SelFg      *Color `yaml:"sel_fg"`
}

// Load reads path as YAML and merges any set field over the compiled-in
// defaults. A missing file is not an error: it simply returns Builtin().
func Load(path string) (*Config, error) {
	cfg := Builtin()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var ov overlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	applyOverlay(cfg, &ov)
	return cfg, nil
}

func applyOverlay(cfg *Config, ov *overlay) {
	if len(ov.Tags) > 0 {
		cfg.Tags = ov.Tags
	}
	if ov.BorderPx != nil {
		cfg.BorderPx = *ov.BorderPx
	}
	if ov.Snap != nil {
		cfg.Snap = *ov.Snap
	}
	if ov.ShowBar != nil {
		cfg.ShowBar = *ov.ShowBar
	}
	if ov.TopBar != nil {
		cfg.TopBar = *ov.TopBar
	}
	if ov.MFact != nil {
		cfg.MFact = *ov.MFact
	}
	if ov.ResizeHints != nil {
		cfg.ResizeHints = *ov.ResizeHints
	}
	if ov.Font != nil {
		cfg.Font = *ov.Font
	}
	if ov.NormBorder != nil {
		cfg.NormBorder = *ov.NormBorder
	}
	if ov.NormBg != nil {
		cfg.NormBg = *ov.NormBg
	}
	if ov.NormFg != nil {
		cfg.NormFg = *ov.NormFg
	}
	if ov.SelBorder != nil {
		cfg.SelBorder = *ov.SelBorder
	}
	if ov.SelBg != nil {
		cfg.SelBg = *ov.SelBg
	}
	if ov.SelFg != nil {
		cfg.SelFg = *ov.SelFg
	}
}
