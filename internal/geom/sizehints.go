package geom

// SizeHints mirrors the ICCCM WM_NORMAL_HINTS fields a client's geometry
// must respect: base size (subtracted before aspect/increment math),
// increment steps, min/max bounds, and aspect ratio limits. Zero values
// mean "hint absent" except MinAspect/MaxAspect, which are 0 when there is
// no aspect constraint at all.
type SizeHints struct {
	BaseW, BaseH         int
	IncW, IncH           int
	MinW, MinH           int
	MaxW, MaxH           int
	MinAspect, MaxAspect float64
}

// IsFixed reports whether the hints pin the client to a single size (min
// equals max on both axes).
func (h SizeHints) IsFixed() bool {
	return h.MaxW > 0 && h.MinW > 0 && h.MaxH > 0 && h.MinH > 0 &&
		h.MaxW == h.MinW && h.MaxH == h.MinH
}

// Apply clamps a requested geometry against size hints and monitor bounds,
// step for step. bar is the height reserved for the bar; bounds is the
// monitor's work area (or the whole screen when interact is true,
// distinguishing interactive move/resize from programmatic placement).
// honorHints gates the hint-aware steps (aspect/increment/min/max); the
// caller passes resizehints||isfloating||no-arrange-layout, and when it is
// false those steps are skipped. Returns the clamped geometry and whether it differs from
// (x, y, w, h).
func Apply(x, y, w, h, bw int, hints SizeHints, honorHints bool, bounds Rect, bar int) (nx, ny, nw, nh int, changed bool) {
	nx, ny, nw, nh = x, y, w, h

	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	if nx >= bounds.X+bounds.Width {
		nx = bounds.X + bounds.Width - (nw + 2*bw)
	}
	if ny >= bounds.Y+bounds.Height {
		ny = bounds.Y + bounds.Height - (nh + 2*bw)
	}
	if nx+nw+2*bw <= bounds.X {
		nx = bounds.X
	}
	if ny+nh+2*bw <= bounds.Y {
		ny = bounds.Y
	}

	if nh < bar {
		nh = bar
	}
	if nw < bar {
		nw = bar
	}

	if honorHints {
		baseIsMin := hints.BaseW == hints.MinW && hints.BaseH == hints.MinH
		if !baseIsMin {
			nw -= hints.BaseW
			nh -= hints.BaseH
		}

		if hints.MinAspect > 0 && hints.MaxAspect > 0 {
			aw, ah := float64(nw), float64(nh)
			if hints.MaxAspect < aw/ah {
				nw = int(ah*hints.MaxAspect + 0.5)
			} else if hints.MinAspect < ah/aw {
				nh = int(aw*hints.MinAspect + 0.5)
			}
		}

		if baseIsMin {
			nw -= hints.BaseW
			nh -= hints.BaseH
		}

		if hints.IncW != 0 {
			nw -= nw % hints.IncW
		}
		if hints.IncH != 0 {
			nh -= nh % hints.IncH
		}

		nw += hints.BaseW
		if nw < hints.MinW {
			nw = hints.MinW
		}
		nh += hints.BaseH
		if nh < hints.MinH {
			nh = hints.MinH
		}
		if hints.MaxW != 0 && nw > hints.MaxW {
			nw = hints.MaxW
		}
		if hints.MaxH != 0 && nh > hints.MaxH {
			nh = hints.MaxH
		}
	}

	changed = nx != x || ny != y || nw != w || nh != h
	return
}
