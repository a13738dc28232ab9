package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/multiwin/internal/host"
	"github.com/1broseidon/multiwin/internal/ipc"
	"github.com/1broseidon/multiwin/internal/window"
)

// ErrStopped is returned by control calls made after the loop has exited.
var ErrStopped = errors.New("application loop is not running")

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	Session *Session
	Host    host.Host
	Logger  *slog.Logger
}

// Runner is the single loop that owns a Session while a host.Host runs.
// Host closures and control calls from other goroutines are serialized
// through it.
type Runner struct {
	session *Session
	host    host.Host
	logger  *slog.Logger
	calls   chan func(context.Context)
	done    chan struct{}
}

var _ ipc.Controller = (*Runner)(nil)

// NewRunner creates a runner. The session must draw its handles from the
// same host.
func NewRunner(cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		session: cfg.Session,
		host:    cfg.Host,
		logger:  logger,
		calls:   make(chan func(context.Context)),
		done:    make(chan struct{}),
	}
}

// Run presents every window and then processes closures and control calls
// until the registry is empty or ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	r.presentAll()
	closed := r.host.Closed()
	for !r.session.IsEmpty() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case h, ok := <-closed:
			if !ok {
				return errors.New("host stopped reporting closures")
			}
			r.session.Closed(h)
		case fn := <-r.calls:
			fn(ctx)
		}
		r.presentAll()
	}
	r.logger.Info("all windows closed")
	return nil
}

// Open spawns each kind in turn, as if requested by a client.
func (r *Runner) Open(ctx context.Context, kinds ...string) error {
	for _, kind := range kinds {
		if err := r.execute(ctx, func() (window.Request, error) {
			_, req, err := r.session.Spawn(kind)
			return req, err
		}); err != nil {
			return err
		}
	}
	return nil
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) presentAll() {
	for _, h := range r.session.Handles() {
		title, content, th := r.session.View(h)
		if err := r.host.Present(h, title, content, th); err != nil {
			r.logger.Warn("failed to present window", "handle", h, "err", err)
		}
	}
}

// call runs fn on the loop and waits for it.
func (r *Runner) call(ctx context.Context, fn func(ctx context.Context)) error {
	ran := make(chan struct{})
	wrapped := func(loopCtx context.Context) {
		defer close(ran)
		fn(loopCtx)
	}
	select {
	case r.calls <- wrapped:
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-ran
	return nil
}

// execute builds a request on the loop and hands it to the host there.
func (r *Runner) execute(ctx context.Context, build func() (window.Request, error)) error {
	var err error
	callErr := r.call(ctx, func(loopCtx context.Context) {
		var req window.Request
		req, err = build()
		if err != nil {
			return
		}
		if execErr := r.host.Execute(loopCtx, req); execErr != nil {
			err = fmt.Errorf("failed to execute %s: %w", req, execErr)
		}
	})
	if callErr != nil {
		return callErr
	}
	return err
}

func (r *Runner) Status(ctx context.Context) (ipc.StatusData, error) {
	var out ipc.StatusData
	err := r.call(ctx, func(context.Context) { out = r.session.Status() })
	return out, err
}

func (r *Runner) Windows(ctx context.Context) ([]ipc.WindowInfo, error) {
	var out []ipc.WindowInfo
	err := r.call(ctx, func(context.Context) { out = r.session.Windows() })
	return out, err
}

func (r *Runner) Spawn(ctx context.Context, kind string) (ipc.WindowInfo, error) {
	var info ipc.WindowInfo
	err := r.execute(ctx, func() (window.Request, error) {
		h, req, err := r.session.Spawn(kind)
		if err != nil {
			return req, err
		}
		info = r.session.info(h)
		return req, nil
	})
	return info, err
}

func (r *Runner) Close(ctx context.Context, handle uint32) error {
	return r.execute(ctx, func() (window.Request, error) {
		h := window.Handle(handle)
		if !r.session.Has(h) {
			return window.None(), fmt.Errorf("no window with handle %d", handle)
		}
		return r.session.Close(h), nil
	})
}

func (r *Runner) CloseAll(ctx context.Context) (int, error) {
	var n int
	err := r.execute(ctx, func() (window.Request, error) {
		req := r.session.CloseAll()
		n = len(req.Handles())
		return req, nil
	})
	return n, err
}
