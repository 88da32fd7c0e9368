package config

// Config holds the numeric knobs and tables the manager reads at startup.
// It starts from Defaults/DefaultTags/DefaultRules/DefaultLayouts and is
// optionally overridden field-by-field by an on-disk YAML file (see
// Load in loader.go) — silence on a field means "keep the compiled-in
// default", the same rule termtile's config loader applies.
type Config struct {
	Tags        []string `yaml:"tags,omitempty"`
	BorderPx    int      `yaml:"border_px,omitempty"`
	Snap        int      `yaml:"snap,omitempty"`
	ShowBar     bool     `yaml:"show_bar"`
	TopBar      bool     `yaml:"top_bar"`
	MFact       float64  `yaml:"mfact,omitempty"`
	ResizeHints bool     `yaml:"resize_hints"`
	Font        string   `yaml:"font,omitempty"`

	NormBorder Color `yaml:"norm_border,omitempty"`
	NormBg     Color `yaml:"norm_bg,omitempty"`
	NormFg     Color `yaml:"norm_fg,omitempty"`
	SelBorder  Color `yaml:"sel_border,omitempty"`
	SelBg      Color `yaml:"sel_bg,omitempty"`
	SelFg      Color `yaml:"sel_fg,omitempty"`

	Rules   []Rule          `yaml:"-"`
	Layouts []LayoutEntry   `yaml:"-"`
	Keys    []KeyBinding    `yaml:"-"`
	Buttons []ButtonBinding `yaml:"-"`
}

// Builtin returns a Config populated entirely from the compiled-in
// defaults, with no YAML overlay applied.
func Builtin() *Config {
	return &Config{
		Tags:        append([]string(nil), DefaultTags[:]...),
		BorderPx:    Defaults.BorderPx,
		Snap:        Defaults.Snap,
		ShowBar:     Defaults.ShowBar,
		TopBar:      Defaults.TopBar,
		MFact:       Defaults.MFact,
		ResizeHints: Defaults.ResizeHints,
		Font:        Defaults.Font,
		NormBorder:  Defaults.NormBorder,
		NormBg:      Defaults.NormBg,
		NormFg:      Defaults.NormFg,
		SelBorder:   Defaults.SelBorder,
		SelBg:       Defaults.SelBg,
		SelFg:       Defaults.SelFg,
		Rules:       append([]Rule(nil), DefaultRules...),
		Layouts:     append([]LayoutEntry(nil), DefaultLayouts...),
		Keys:        append([]KeyBinding(nil), DefaultKeys...),
		Buttons:     append([]ButtonBinding(nil), DefaultButtons...),
	}
}
