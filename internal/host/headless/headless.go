// Package headless is an in-memory window host. It issues handles, records
// what each open window was created with and last presented, and reports
// closures like a real windowing system would. It backs scripted runs and
// tests.
package headless

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/1broseidon/multiwin/internal/host"
	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/window"
)

// Record is what the host knows about one open window.
type Record struct {
	Settings window.Settings
	Title    string
	Content  string
	Theme    theme.Theme
	Frames   int
}

// Host is the headless window host.
type Host struct {
	mu       sync.Mutex
	last     window.Handle
	open     map[window.Handle]*Record
	failNext int
	notifier *host.Notifier
	logger   *slog.Logger
}

var _ host.Host = (*Host)(nil)

// New returns a host whose first issued handle is 1. A nil logger
// discards output.
func New(logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Host{
		open:     make(map[window.Handle]*Record),
		notifier: host.NewNotifier(),
		logger:   logger,
	}
}

// OpenMain records the application's initial window under
// window.MainHandle, as a host does before any registry exists.
func (h *Host) OpenMain(s window.Settings) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open[window.MainHandle] = &Record{Settings: s}
}

func (h *Host) NextHandle() window.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last++
	return h.last
}

// Execute carries out req. Closing a window the host does not know is
// ignored.
func (h *Host) Execute(ctx context.Context, req window.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, r := range req.Flatten() {
		switch r.Op {
		case window.OpOpen:
			h.openWindow(r.Handle, r.Settings)
		case window.OpClose:
			h.closeWindow(r.Handle)
		}
	}
	return nil
}

func (h *Host) openWindow(id window.Handle, s window.Settings) {
	h.mu.Lock()
	if h.failNext > 0 {
		h.failNext--
		h.mu.Unlock()
		h.logger.Debug("simulated open failure", "handle", id)
		h.notifier.Notify(id)
		return
	}
	h.open[id] = &Record{Settings: s}
	h.mu.Unlock()
	h.logger.Debug("window opened", "handle", id, "size", s.Size)
}

func (h *Host) closeWindow(id window.Handle) {
	h.mu.Lock()
	_, ok := h.open[id]
	delete(h.open, id)
	h.mu.Unlock()
	if !ok {
		h.logger.Debug("close of unknown window ignored", "handle", id)
		return
	}
	h.logger.Debug("window closed", "handle", id)
	h.notifier.Notify(id)
}

// SimulateClose reports a closure the user or system initiated. It notifies
// even when the window is already gone, like hosts that deliver duplicate
// close events.
func (h *Host) SimulateClose(id window.Handle) {
	h.mu.Lock()
	delete(h.open, id)
	h.mu.Unlock()
	h.notifier.Notify(id)
}

// FailNextOpen makes the next n opens fail. A failed open is reported as a
// closure of the handle.
func (h *Host) FailNextOpen(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failNext += n
}

func (h *Host) Closed() <-chan window.Handle {
	return h.notifier.C()
}

// Present records the latest frame for an open window.
func (h *Host) Present(id window.Handle, title, content string, th theme.Theme) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	rec, ok := h.open[id]
	if !ok {
		return nil
	}
	rec.Title = title
	rec.Content = content
	rec.Theme = th
	rec.Frames++
	return nil
}

// Open returns the handles of open windows in ascending order.
func (h *Host) Open() []window.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]window.Handle, 0, len(h.open))
	for id := range h.open {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Lookup returns a copy of the record for id.
func (h *Host) Lookup(id window.Handle) (Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rec, ok := h.open[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

func (h *Host) Close() error {
	h.notifier.Stop()
	return nil
}
