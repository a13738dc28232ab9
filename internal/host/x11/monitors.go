package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Rect, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Rect
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		monitors = append(monitors, Rect{
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return monitors, nil
}

// ActiveArea returns the usable area of the monitor under the pointer. It
// falls back to the first monitor and then to the root window geometry.
func (c *Connection) ActiveArea() Rect {
	root := xwindow.RootGeometry(c.XUtil)
	area := Rect{X: root.X(), Y: root.Y(), Width: root.Width(), Height: root.Height()}

	if monitors, err := c.GetMonitors(); err == nil && len(monitors) > 0 {
		area = monitors[0]
		if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
			if mon, ok := monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)); ok {
				area = mon
			}
		}
	}

	// Respect the work area (excludes panels, docks, etc.)
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return area
	}
	desktop := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
		desktop = int(current)
	}
	wa := workArea[desktop]
	return area.Intersect(Rect{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)})
}
