// Package x11 hosts windows as top-level X11 windows. Each handle maps to
// one X window created with the spawn settings; close requests from the
// window manager and destruction by other clients come back as closures.
package x11

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/multiwin/internal/host"
	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/window"
)

// Config configures the X11 host.
type Config struct {
	// Display overrides $DISPLAY.
	Display string
	// Main is used for the main window created at connect time.
	Main  window.Settings
	Title string
	Theme theme.Theme
	// Class is the WM_CLASS instance/class name. Defaults to "multiwin".
	Class  string
	Logger *slog.Logger
}

type hosted struct {
	win         *xwindow.Window
	settings    window.Settings
	title       string
	background  uint32
	exitOnClose bool
}

// Host is the X11 window host.
type Host struct {
	conn     *Connection
	class    string
	logger   *slog.Logger
	notifier *host.Notifier

	mu      sync.Mutex
	last    window.Handle
	windows map[window.Handle]*hosted
	byID    map[xproto.Window]window.Handle

	loopOnce sync.Once
	loopDone chan struct{}
}

var _ host.Host = (*Host)(nil)

// Connect opens the display and creates the main window under
// window.MainHandle.
func Connect(cfg Config) (*Host, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	class := cfg.Class
	if class == "" {
		class = "multiwin"
	}
	conn, err := NewConnection(cfg.Display)
	if err != nil {
		return nil, err
	}

	h := &Host{
		conn:     conn,
		class:    class,
		logger:   logger,
		notifier: host.NewNotifier(),
		windows:  make(map[window.Handle]*hosted),
		byID:     make(map[xproto.Window]window.Handle),
		loopDone: make(chan struct{}),
	}
	if err := h.open(window.MainHandle, cfg.Main); err != nil {
		h.notifier.Stop()
		conn.Close()
		return nil, fmt.Errorf("failed to create main window: %w", err)
	}
	if err := h.Present(window.MainHandle, cfg.Title, "", cfg.Theme); err != nil {
		logger.Warn("failed to present main window", "err", err)
	}
	return h, nil
}

// Run processes X events until ctx is done or Close is called.
func (h *Host) Run(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			h.conn.Quit()
		case <-h.loopDone:
		}
	}()
	h.conn.EventLoop()
	h.loopOnce.Do(func() { close(h.loopDone) })
}

func (h *Host) NextHandle() window.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last++
	return h.last
}

// Execute carries out req. A failed open is reported as a closure of its
// handle so the registry forgets the window.
func (h *Host) Execute(ctx context.Context, req window.Request) error {
	for _, r := range req.Flatten() {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch r.Op {
		case window.OpOpen:
			if err := h.open(r.Handle, r.Settings); err != nil {
				h.logger.Error("failed to open window", "handle", r.Handle, "err", err)
				h.notifier.Notify(r.Handle)
			}
		case window.OpClose:
			h.destroy(r.Handle)
		}
	}
	return nil
}

func (h *Host) open(id window.Handle, s window.Settings) error {
	xu := h.conn.XUtil
	win, err := xwindow.Generate(xu)
	if err != nil {
		return fmt.Errorf("failed to generate window id: %w", err)
	}

	r := placement(s, h.conn.ActiveArea())
	err = win.CreateChecked(h.conn.Root, r.X, r.Y, r.Width, r.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		0, xproto.EventMaskStructureNotify|xproto.EventMaskExposure)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	if err := icccm.WmClassSet(xu, win.Id, &icccm.WmClass{Instance: h.class, Class: h.class}); err != nil {
		h.logger.Debug("failed to set WM_CLASS", "handle", id, "err", err)
	}
	if err := icccm.WmNormalHintsSet(xu, win.Id, normalHints(s, r)); err != nil {
		h.logger.Debug("failed to set WM_NORMAL_HINTS", "handle", id, "err", err)
	}
	if mh := motifHints(s); mh != nil {
		if err := motif.WmHintsSet(xu, win.Id, mh); err != nil {
			h.logger.Debug("failed to set _MOTIF_WM_HINTS", "handle", id, "err", err)
		}
	}
	if state := wmState(s); state != nil {
		if err := ewmh.WmStateSet(xu, win.Id, state); err != nil {
			h.logger.Debug("failed to set _NET_WM_STATE", "handle", id, "err", err)
		}
	}
	if s.Transparent {
		h.logger.Debug("transparent windows are not supported by the x11 host", "handle", id)
	}

	win.WMGracefulClose(func(w *xwindow.Window) {
		h.closeRequested(w.Id)
	})
	xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		h.destroyed(ev.Window)
	}).Connect(xu, win.Id)

	h.mu.Lock()
	h.windows[id] = &hosted{win: win, settings: s, exitOnClose: s.ExitOnCloseRequest}
	h.byID[win.Id] = id
	h.mu.Unlock()

	if s.Visible {
		win.Map()
	}
	h.logger.Debug("window opened", "handle", id, "xid", win.Id, "x", r.X, "y", r.Y, "width", r.Width, "height", r.Height)
	return nil
}

// closeRequested handles WM_DELETE_WINDOW.
func (h *Host) closeRequested(xid xproto.Window) {
	h.mu.Lock()
	id, ok := h.byID[xid]
	var exit bool
	if ok {
		exit = h.windows[id].exitOnClose
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	if !exit {
		h.logger.Debug("close request ignored", "handle", id)
		return
	}
	h.destroy(id)
}

// destroyed handles windows destroyed by someone else.
func (h *Host) destroyed(xid xproto.Window) {
	h.mu.Lock()
	id, ok := h.byID[xid]
	if ok {
		delete(h.byID, xid)
		delete(h.windows, id)
	}
	h.mu.Unlock()
	if ok {
		h.logger.Debug("window destroyed externally", "handle", id)
		h.notifier.Notify(id)
	}
}

func (h *Host) destroy(id window.Handle) {
	h.mu.Lock()
	hw, ok := h.windows[id]
	if ok {
		delete(h.windows, id)
		delete(h.byID, hw.win.Id)
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	// Destroy detaches our handlers, so no DestroyNotify comes back.
	hw.win.Destroy()
	h.logger.Debug("window closed", "handle", id)
	h.notifier.Notify(id)
}

func (h *Host) Closed() <-chan window.Handle {
	return h.notifier.C()
}

// Present updates the window name and background. The X11 host draws no
// text; content is only logged at debug level.
func (h *Host) Present(id window.Handle, title, content string, th theme.Theme) error {
	h.mu.Lock()
	hw, ok := h.windows[id]
	if !ok {
		h.mu.Unlock()
		return nil
	}
	titleChanged := hw.title != title
	pixel := th.BackgroundPixel()
	bgChanged := hw.background != pixel
	hw.title = title
	hw.background = pixel
	h.mu.Unlock()

	xu := h.conn.XUtil
	if titleChanged {
		if err := ewmh.WmNameSet(xu, hw.win.Id, title); err != nil {
			return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
		}
		if err := icccm.WmNameSet(xu, hw.win.Id, title); err != nil {
			return fmt.Errorf("failed to set WM_NAME: %w", err)
		}
	}
	if bgChanged {
		hw.win.Change(xproto.CwBackPixel, pixel)
		hw.win.ClearAll()
	}
	h.logger.Debug("window presented", "handle", id, "title", title, "content_bytes", len(content))
	return nil
}

// Close destroys every window and disconnects.
func (h *Host) Close() error {
	h.mu.Lock()
	ids := make([]window.Handle, 0, len(h.windows))
	for id := range h.windows {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	for _, id := range ids {
		h.destroy(id)
	}
	h.conn.Quit()
	h.notifier.Stop()
	h.conn.Close()
	return nil
}
