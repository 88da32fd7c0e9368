package wm

import (
	"strings"

	"github.com/BurntSushi/xgbutil/icccm"
)

// applyrules resets c's floating/tag state and matches it against the
// configured rule table in order: each rule whose non-empty class,
// instance, and title patterns are all substrings of the client's matches
// ORs in the rule's tags and overwrites isfloating/monitor. If no rule leaves the
// client with any tag bits set, it falls back to the monitor's current
// view .
func (wmgr *Manager) applyrules(c *Client) {
	c.IsFloating = false
	c.Tags = 0

	class, instance := "broken", "broken"
	if wc, err := icccm.WmClassGet(wmgr.Conn.XU, c.Win); err == nil && wc != nil {
		if wc.Class != "" {
			class = wc.Class
		}
		if wc.Instance != "" {
			instance = wc.Instance
		}
	}

	targetMon := c.Mon

	for _, r := range wmgr.Cfg.Rules {
		if r.Title != "" && !strings.Contains(c.Name, r.Title) {
			continue
		}
		if r.Class != "" && !strings.Contains(class, r.Class) {
			continue
		}
		if r.Instance != "" && !strings.Contains(instance, r.Instance) {
			continue
		}
		c.IsFloating = r.IsFloating
		c.Tags |= r.Tags
		if r.Monitor >= 0 {
			for m := wmgr.Mons; m != nil; m = m.Next {
				if m.Num == r.Monitor {
					targetMon = m
				}
			}
		}
	}
	c.Mon = targetMon

	if c.Tags&wmgr.TagMask() != 0 {
		c.Tags &= wmgr.TagMask()
	} else {
		c.Tags = c.Mon.Tag()
	}
}
