package config

// Builtin defaults: a site operator can override the numeric knobs via an
// optional YAML file (see loader.go), but the rule, key, and button tables
// are Go literals compiled into the binary.

// Color is an RGB16 triple.
type Color struct {
	R, G, B uint16
}

// Rule matches a newly managed client against class/instance/title
// substrings and assigns it a tag mask, floating state, and monitor.
// An empty pattern matches anything.
type Rule struct {
	Class      string
	Instance   string
	Title      string
	Tags       uint32
	IsFloating bool
	Monitor    int
}

// LayoutKind names one of the three builtin arrange functions.
type LayoutKind int

const (
	LayoutTile LayoutKind = iota
	LayoutFloating
	LayoutMonocle
)

// LayoutEntry is one entry of the layouts[] table: a status-bar symbol and
// the arrange function it selects.
type LayoutEntry struct {
	Symbol string
	Kind   LayoutKind
}

// Action names one of the bindable WM operations as a dispatchable string
// the manager switches on.
type Action string

const (
	ActionSpawn          Action = "spawn"
	ActionToggleBar      Action = "togglebar"
	ActionFocusStack     Action = "focusstack"
	ActionSetMFact       Action = "setmfact"
	ActionZoom           Action = "zoom"
	ActionView           Action = "view"
	ActionKillClient     Action = "killclient"
	ActionSetLayout      Action = "setlayout"
	ActionToggleFloating Action = "togglefloating"
	ActionTag            Action = "tag"
	ActionFocusMon       Action = "focusmon"
	ActionTagMon         Action = "tagmon"
	ActionToggleView     Action = "toggleview"
	ActionToggleTag      Action = "toggletag"
	ActionViewPrev       Action = "viewprev"
	ActionViewNext       Action = "viewnext"
	ActionMoveMouse      Action = "movemouse"
	ActionResizeMouse    Action = "resizemouse"
	ActionQuit           Action = "quit"
)

// Arg is the tagged union passed as a key/button binding's argument: at
// most one field is meaningful, selected by the Action.
type Arg struct {
	I      int
	F      float64
	UI     uint32
	V      []string
	Layout *LayoutEntry
}

// KeyBinding is one entry of the keys[] table.
type KeyBinding struct {
	Mod    uint16
	Sym    string
	Action Action
	Arg    Arg
}

// ClickArea names the bar region (or client window) a button binding
// applies to.
type ClickArea int

const (
	ClickTagBar ClickArea = iota
	ClickLtSymbol
	ClickStatusText
	ClickWinTitle
	ClickClientWin
	ClickRootWin
)

// ButtonBinding is one entry of the buttons[] table.
type ButtonBinding struct {
	Click  ClickArea
	Mod    uint16
	Button uint8
	Action Action
	Arg    Arg
}

// Mod1 is the Alt modifier bit, the default ModKey.
const Mod1 uint16 = 1 << 3

// ModShift and ModControl are the XCB shift/control modifier bits used by
// TAGKEYS and the button table.
const (
	ModShift   uint16 = 1 << 0
	ModControl uint16 = 1 << 2
)

// ModKey is the modifier every manager-level binding is chorded with.
const ModKey = Mod1

// DefaultTags is the nine-tag default.
var DefaultTags = [...]string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

// The tag mask is uint32 arithmetic with the top bit reserved; a tag table
// with more than 31 entries makes this constant overflow and fails to
// compile.
const _ = uint32(1)<<len(DefaultTags) - 1

// Defaults holds the builtin numeric knobs, overridable by an optional
// YAML file (see Config/loader.go).
var Defaults = struct {
	BorderPx    int
	Snap        int
	ShowBar     bool
	TopBar      bool
	MFact       float64
	ResizeHints bool
	Font        string
	NormBorder  Color
	NormBg      Color
	NormFg      Color
	SelBorder   Color
	SelBg       Color
	SelFg       Color
}{
	BorderPx:    1,
	Snap:        32,
	ShowBar:     true,
	TopBar:      true,
	MFact:       0.55,
	ResizeHints: true,
	Font:        "fixed",
	NormBorder:  Color{0xcc00, 0xcc00, 0xcc00},
	NormBg:      Color{0xcc00, 0xcc00, 0xcc00},
	NormFg:      Color{0, 0, 0},
	SelBorder:   Color{0, 0x6600, 0xffff},
	SelBg:       Color{0, 0x6600, 0xffff},
	SelFg:       Color{0xffff, 0xffff, 0xffff},
}

// DefaultRules is the builtin rule table.
var DefaultRules = []Rule{
	{Class: "Gimp", IsFloating: true, Monitor: -1},
	{Class: "display", IsFloating: true, Monitor: -1}, // ImageMagick
	{Class: "Firefox", Tags: 1 << 8, Monitor: -1},
	{Class: "Namoroka", Tags: 1 << 8, Monitor: -1},
	{Class: "Midori", Tags: 1 << 8, Monitor: -1},
	{Class: "Epiphany", Tags: 1 << 8, Monitor: -1},
}

// DefaultLayouts is the builtin layout table; the first entry is the
// default layout for newly created monitors.
var DefaultLayouts = []LayoutEntry{
	{Symbol: "[]=", Kind: LayoutTile},
	{Symbol: "><>", Kind: LayoutFloating},
	{Symbol: "[M]", Kind: LayoutMonocle},
}

// DefaultTerminal is the command spawned by the terminal hotkey.
var DefaultTerminal = []string{"uxterm"}

func tagKeys(sym string, tag int) []KeyBinding {
	mask := uint32(1) << uint(tag)
	return []KeyBinding{
		{Mod: ModKey, Sym: sym, Action: ActionView, Arg: Arg{UI: mask}},
		{Mod: ModKey | ModControl, Sym: sym, Action: ActionToggleView, Arg: Arg{UI: mask}},
		{Mod: ModKey | ModShift, Sym: sym, Action: ActionTag, Arg: Arg{UI: mask}},
		{Mod: ModKey | ModControl | ModShift, Sym: sym, Action: ActionToggleTag, Arg: Arg{UI: mask}},
	}
}

// DefaultKeys is the builtin key-binding table, including the per-tag
// view/toggleview/tag/toggletag binding group expanded for tags 1-9.
var DefaultKeys = buildDefaultKeys()

func buildDefaultKeys() []KeyBinding {
	keys := []KeyBinding{
		{Mod: ModKey, Sym: "p", Action: ActionSpawn, Arg: Arg{V: []string{"dmenu_run"}}},
		{Mod: ModKey | ModShift, Sym: "Return", Action: ActionSpawn, Arg: Arg{V: DefaultTerminal}},
		{Mod: ModKey, Sym: "b", Action: ActionToggleBar},
		{Mod: ModKey, Sym: "j", Action: ActionFocusStack, Arg: Arg{I: +1}},
		{Mod: ModKey, Sym: "k", Action: ActionFocusStack, Arg: Arg{I: -1}},
		{Mod: Mod1, Sym: "Tab", Action: ActionFocusStack, Arg: Arg{I: +1}},
		{Mod: Mod1 | ModShift, Sym: "Tab", Action: ActionFocusStack, Arg: Arg{I: -1}},
		{Mod: ModKey, Sym: "h", Action: ActionSetMFact, Arg: Arg{F: -0.05}},
		{Mod: ModKey, Sym: "l", Action: ActionSetMFact, Arg: Arg{F: +0.05}},
		{Mod: ModKey, Sym: "Return", Action: ActionZoom},
		{Mod: ModKey, Sym: "Tab", Action: ActionView},
		{Mod: ModKey | ModShift, Sym: "c", Action: ActionKillClient},
		{Mod: ModKey, Sym: "t", Action: ActionSetLayout, Arg: Arg{Layout: &DefaultLayouts[0]}},
		{Mod: ModKey, Sym: "f", Action: ActionSetLayout, Arg: Arg{Layout: &DefaultLayouts[1]}},
		{Mod: ModKey, Sym: "m", Action: ActionSetLayout, Arg: Arg{Layout: &DefaultLayouts[2]}},
		{Mod: ModKey, Sym: "space", Action: ActionSetLayout},
		{Mod: ModKey | ModShift, Sym: "space", Action: ActionToggleFloating},
		{Mod: ModKey, Sym: "0", Action: ActionView, Arg: Arg{UI: ^uint32(0)}},
		{Mod: ModKey | ModShift, Sym: "0", Action: ActionTag, Arg: Arg{UI: ^uint32(0)}},
		{Mod: ModKey, Sym: "comma", Action: ActionFocusMon, Arg: Arg{I: -1}},
		{Mod: ModKey, Sym: "period", Action: ActionFocusMon, Arg: Arg{I: +1}},
		{Mod: ModKey | ModShift, Sym: "comma", Action: ActionTagMon, Arg: Arg{I: -1}},
		{Mod: ModKey | ModShift, Sym: "period", Action: ActionTagMon, Arg: Arg{I: +1}},
	}
	tagSyms := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	for i, sym := range tagSyms {
		keys = append(keys, tagKeys(sym, i)...)
	}
	keys = append(keys,
		KeyBinding{Mod: ModKey, Sym: "Left", Action: ActionViewPrev},
		KeyBinding{Mod: ModKey, Sym: "Right", Action: ActionViewNext},
		KeyBinding{Mod: ModKey | ModShift, Sym: "q", Action: ActionQuit},
	)
	return keys
}

// DefaultButtons is the builtin button-binding table.
var DefaultButtons = []ButtonBinding{
	{Click: ClickLtSymbol, Button: 1, Action: ActionSetLayout},
	{Click: ClickLtSymbol, Button: 3, Action: ActionSetLayout, Arg: Arg{Layout: &DefaultLayouts[2]}},
	{Click: ClickWinTitle, Button: 2, Action: ActionZoom},
	{Click: ClickStatusText, Button: 2, Action: ActionSpawn, Arg: Arg{V: DefaultTerminal}},
	{Click: ClickClientWin, Mod: ModKey, Button: 1, Action: ActionMoveMouse},
	{Click: ClickClientWin, Mod: ModKey, Button: 2, Action: ActionToggleFloating},
	{Click: ClickClientWin, Mod: ModKey, Button: 3, Action: ActionResizeMouse},
	{Click: ClickTagBar, Button: 1, Action: ActionView},
	{Click: ClickTagBar, Button: 3, Action: ActionToggleView},
	{Click: ClickTagBar, Mod: ModKey, Button: 1, Action: ActionTag},
	{Click: ClickTagBar, Mod: ModKey, Button: 3, Action: ActionToggleTag},
}
