// Package host holds what the window hosts share: the interface the
// application loop drives and the closure notifier they report through.
package host

import (
	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/window"
)

// Host owns native windows. The registry asks it for handles and hands it
// requests to execute; the host reports every closure, whether it executed
// the close itself or the user or system closed the window, on Closed.
type Host interface {
	window.HandleSource
	window.Executor
	Closed() <-chan window.Handle
	Present(h window.Handle, title, content string, th theme.Theme) error
	Close() error
}
