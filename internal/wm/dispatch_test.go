package wm

import (
	"testing"

	"github.com/mistwood/tilewm/internal/config"
)

func TestKeySequence(t *testing.T) {
	cases := []struct {
		mod  uint16
		sym  string
		want string
	}{
		{config.ModKey, "j", "Mod1-j"},
		{config.ModKey | config.ModShift, "Return", "Shift-Mod1-Return"},
		{config.ModKey | config.ModControl | config.ModShift, "1", "Shift-Control-Mod1-1"},
		{0, "XF86AudioMute", "XF86AudioMute"},
	}
	for _, tc := range cases {
		if got := keySequence(tc.mod, tc.sym); got != tc.want {
			t.Errorf("keySequence(%#x, %q) = %q, want %q", tc.mod, tc.sym, got, tc.want)
		}
	}
}
