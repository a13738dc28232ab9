package x11

import (
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"

	"github.com/1broseidon/multiwin/internal/window"
)

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Intersect returns the overlap of r and o, or r when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return r
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func monitorAt(monitors []Rect, x, y int) (Rect, bool) {
	for _, m := range monitors {
		if m.contains(x, y) {
			return m, true
		}
	}
	return Rect{}, false
}

// placement computes the initial geometry of a window inside area. A zero
// size falls back to the defaults; the window manager decides the position
// unless the settings ask for one.
func placement(s window.Settings, area Rect) Rect {
	size := s.Size
	if size.Width <= 0 || size.Height <= 0 {
		def := window.DefaultSettings().Size
		if size.Width <= 0 {
			size.Width = def.Width
		}
		if size.Height <= 0 {
			size.Height = def.Height
		}
	}
	minSize, maxSize := s.ClampSize()
	size.Width = clamp(size.Width, minSize.Width, maxSize.Width)
	size.Height = clamp(size.Height, minSize.Height, maxSize.Height)

	r := Rect{Width: size.Width, Height: size.Height}
	switch s.Position.Mode {
	case window.PositionCentered:
		r.X = area.X + (area.Width-size.Width)/2
		r.Y = area.Y + (area.Height-size.Height)/2
	case window.PositionSpecific:
		r.X = s.Position.At.X
		r.Y = s.Position.At.Y
	default:
		r.X = area.X
		r.Y = area.Y
	}
	return r
}

// clamp bounds v by lo and hi; zero bounds are open.
func clamp(v, lo, hi int) int {
	if lo > 0 && v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}

// normalHints builds WM_NORMAL_HINTS for a window placed at r.
func normalHints(s window.Settings, r Rect) *icccm.NormalHints {
	nh := &icccm.NormalHints{
		Flags:  icccm.SizeHintPSize,
		X:      r.X,
		Y:      r.Y,
		Width:  uint(r.Width),
		Height: uint(r.Height),
	}
	if s.Position.Mode == window.PositionCentered || s.Position.Mode == window.PositionSpecific {
		nh.Flags |= icccm.SizeHintUSPosition
	}
	minSize, maxSize := s.ClampSize()
	if minSize.Width > 0 || minSize.Height > 0 {
		nh.Flags |= icccm.SizeHintPMinSize
		nh.MinWidth = uint(minSize.Width)
		nh.MinHeight = uint(minSize.Height)
	}
	if maxSize.Width > 0 || maxSize.Height > 0 {
		nh.Flags |= icccm.SizeHintPMaxSize
		nh.MaxWidth = uint(maxSize.Width)
		nh.MaxHeight = uint(maxSize.Height)
	}
	return nh
}

// motifHints returns the _MOTIF_WM_HINTS that turn decorations off, or nil
// when the window keeps them.
func motifHints(s window.Settings) *motif.Hints {
	if s.Decorations {
		return nil
	}
	return &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationNone,
	}
}

// wmState returns the _NET_WM_STATE atoms for the stacking level.
func wmState(s window.Settings) []string {
	switch s.Level {
	case window.LevelAlwaysOnTop:
		return []string{"_NET_WM_STATE_ABOVE"}
	case window.LevelAlwaysOnBottom:
		return []string{"_NET_WM_STATE_BELOW"}
	default:
		return nil
	}
}
