// Package term hosts windows as tabs of a full-screen terminal program.
//
// The bubbletea update loop is the single owner of the application's
// registry: the Model drives a Session, turns the requests it returns into
// commands with Command, and forwards the resulting closures back to it.
// Work from other goroutines reaches the loop as a CallMsg.
package term

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/window"
)

// ErrNotTerminal is returned when stdin or stdout is not a TTY.
var ErrNotTerminal = errors.New("terminal host requires an interactive terminal (stdin/stdout must be TTYs)")

// Session is the application as seen by the Model. All methods are called
// from the update loop only.
type Session interface {
	Kinds() []string
	Spawn(kind string) (window.Handle, window.Request, error)
	Close(h window.Handle) window.Request
	CloseAll() window.Request
	Closed(h window.Handle)
	IsEmpty() bool
	Handles() []window.Handle
	Settings(h window.Handle) window.Settings
	View(h window.Handle) (title, content string, th theme.Theme)
}

// OpenedMsg reports that a tab for Handle exists.
type OpenedMsg struct {
	Handle   window.Handle
	Settings window.Settings
}

// ClosedMsg reports that the tab for Handle is gone.
type ClosedMsg struct {
	Handle window.Handle
}

// CallMsg runs Fn on the update loop. The returned command, if any, is
// executed like any other.
type CallMsg struct {
	Fn func() tea.Cmd
}

// Handles issues sequential handles starting after window.MainHandle.
type Handles struct {
	last atomic.Uint32
}

func (h *Handles) NextHandle() window.Handle {
	return window.Handle(h.last.Add(1))
}

// ResultsMsg carries the outcome of a multi-operation request. The model
// applies its messages in order.
type ResultsMsg []tea.Msg

// Command turns req into a command producing one OpenedMsg or ClosedMsg per
// operation, wrapped in a ResultsMsg when there is more than one. Opening a
// tab cannot fail.
func Command(req window.Request) tea.Cmd {
	ops := req.Flatten()
	msgs := make(ResultsMsg, 0, len(ops))
	for _, r := range ops {
		switch r.Op {
		case window.OpOpen:
			msgs = append(msgs, OpenedMsg{Handle: r.Handle, Settings: r.Settings})
		case window.OpClose:
			msgs = append(msgs, ClosedMsg{Handle: r.Handle})
		}
	}
	switch len(msgs) {
	case 0:
		return nil
	case 1:
		msg := msgs[0]
		return func() tea.Msg { return msg }
	default:
		return func() tea.Msg { return msgs }
	}
}

// Options configures Run.
type Options struct {
	Input  io.Reader
	Output io.Writer
	Logger *slog.Logger
}

// Program wraps the running bubbletea program.
type Program struct {
	p *tea.Program
}

// NewProgram prepares the full-screen program for session. With no
// Input/Output the program uses the process TTY and fails with
// ErrNotTerminal when there is none.
func NewProgram(session Session, opts Options) (*Program, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	teaOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Input == nil && opts.Output == nil {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, ErrNotTerminal
		}
	} else {
		teaOpts = append(teaOpts, tea.WithInput(opts.Input), tea.WithOutput(opts.Output))
	}
	m := NewModel(session, logger)
	return &Program{p: tea.NewProgram(m, teaOpts...)}, nil
}

// Run blocks until the registry empties, the user interrupts, or ctx is
// done.
func (p *Program) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.p.Quit()
		case <-done:
		}
	}()
	_, err := p.p.Run()
	return err
}

// Call runs fn on the update loop and waits for it to finish. If ctx ends
// before the loop picks fn up, fn never runs and Call returns ctx.Err(); once
// fn has started, Call waits for it regardless of ctx.
func (p *Program) Call(ctx context.Context, fn func() tea.Cmd) error {
	c := newLoopCall(fn)
	go p.p.Send(CallMsg{Fn: c.run})
	return c.wait(ctx)
}

const (
	callPending int32 = iota
	callStarted
	callAbandoned
)

// loopCall hands fn to the update loop exactly once, or not at all if the
// caller gave up first.
type loopCall struct {
	fn    func() tea.Cmd
	state atomic.Int32
	done  chan struct{}
}

func newLoopCall(fn func() tea.Cmd) *loopCall {
	return &loopCall{fn: fn, done: make(chan struct{})}
}

// run is called on the update loop.
func (c *loopCall) run() tea.Cmd {
	if !c.state.CompareAndSwap(callPending, callStarted) {
		return nil
	}
	defer close(c.done)
	return c.fn()
}

func (c *loopCall) wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
	}
	if c.state.CompareAndSwap(callPending, callAbandoned) {
		return ctx.Err()
	}
	<-c.done
	return nil
}
