package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/multiwin/internal/host/term"
	"github.com/1broseidon/multiwin/internal/ipc"
	"github.com/1broseidon/multiwin/internal/window"
)

var _ term.Session = (*Session)(nil)

// TermController serves control calls for a session owned by the terminal
// model, running each one on the bubbletea loop.
type TermController struct {
	session *Session
	program *term.Program
}

var _ ipc.Controller = (*TermController)(nil)

func NewTermController(session *Session, program *term.Program) *TermController {
	return &TermController{session: session, program: program}
}

func (c *TermController) Status(ctx context.Context) (ipc.StatusData, error) {
	var out ipc.StatusData
	err := c.program.Call(ctx, func() tea.Cmd {
		out = c.session.Status()
		return nil
	})
	return out, err
}

func (c *TermController) Windows(ctx context.Context) ([]ipc.WindowInfo, error) {
	var out []ipc.WindowInfo
	err := c.program.Call(ctx, func() tea.Cmd {
		out = c.session.Windows()
		return nil
	})
	return out, err
}

func (c *TermController) Spawn(ctx context.Context, kind string) (ipc.WindowInfo, error) {
	var (
		info     ipc.WindowInfo
		spawnErr error
	)
	err := c.program.Call(ctx, func() tea.Cmd {
		h, req, err := c.session.Spawn(kind)
		if err != nil {
			spawnErr = err
			return nil
		}
		info = c.session.info(h)
		return term.Command(req)
	})
	if err != nil {
		return info, err
	}
	return info, spawnErr
}

func (c *TermController) Close(ctx context.Context, handle uint32) error {
	var closeErr error
	err := c.program.Call(ctx, func() tea.Cmd {
		h := window.Handle(handle)
		if !c.session.Has(h) {
			closeErr = fmt.Errorf("no window with handle %d", handle)
			return nil
		}
		return term.Command(c.session.Close(h))
	})
	if err != nil {
		return err
	}
	return closeErr
}

func (c *TermController) CloseAll(ctx context.Context) (int, error) {
	var n int
	err := c.program.Call(ctx, func() tea.Cmd {
		req := c.session.CloseAll()
		n = len(req.Handles())
		return term.Command(req)
	})
	return n, err
}
