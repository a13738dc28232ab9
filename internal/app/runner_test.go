package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/multiwin/internal/host/headless"
	"github.com/1broseidon/multiwin/internal/window"
)

type runFixture struct {
	host   *headless.Host
	runner *Runner
	errc   chan error
	cancel context.CancelFunc
}

func startRunner(t *testing.T, dynamic bool) *runFixture {
	t.Helper()
	h := headless.New(nil)
	t.Cleanup(func() { h.Close() })
	session := NewSession(SessionConfig{Handles: h, Dynamic: dynamic})
	h.OpenMain(session.Settings(window.MainHandle))

	r := NewRunner(RunnerConfig{Session: session, Host: h})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	return &runFixture{host: h, runner: r, errc: errc, cancel: cancel}
}

func (f *runFixture) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-f.errc:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not exit")
		return nil
	}
}

func ctxT(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRunner_SpawnOpensAndPresents(t *testing.T) {
	f := startRunner(t, false)
	ctx := ctxT(t)

	info, err := f.runner.Spawn(ctx, KindLog)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), info.Handle)
	assert.Equal(t, KindLog, info.Kind)
	assert.Equal(t, "Log #1", info.Title)

	// Any later call runs after the spawn's present pass.
	ws, err := f.runner.Windows(ctx)
	require.NoError(t, err)
	require.Len(t, ws, 2)

	rec, ok := f.host.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, 800, rec.Settings.Size.Width)
	assert.Equal(t, "Log #1", rec.Title)
	assert.Positive(t, rec.Frames)
}

func TestRunner_UnknownKind(t *testing.T) {
	f := startRunner(t, true)
	_, err := f.runner.Spawn(ctxT(t), "nope")
	assert.Error(t, err)
	assert.Equal(t, []window.Handle{window.MainHandle}, f.host.Open())
}

func TestRunner_ExternalCloseIsForwarded(t *testing.T) {
	f := startRunner(t, false)
	ctx := ctxT(t)
	info, err := f.runner.Spawn(ctx, KindAbout)
	require.NoError(t, err)

	f.host.SimulateClose(window.Handle(info.Handle))
	f.host.SimulateClose(window.Handle(info.Handle))

	require.Eventually(t, func() bool {
		ws, err := f.runner.Windows(ctx)
		return err == nil && len(ws) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRunner_FailedOpenIsForgotten(t *testing.T) {
	f := startRunner(t, false)
	ctx := ctxT(t)
	f.host.FailNextOpen(1)

	_, err := f.runner.Spawn(ctx, KindLog)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		st, err := f.runner.Status(ctx)
		return err == nil && st.WindowCount == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRunner_CloseWindow(t *testing.T) {
	f := startRunner(t, false)
	ctx := ctxT(t)
	info, err := f.runner.Spawn(ctx, KindLog)
	require.NoError(t, err)

	require.NoError(t, f.runner.Close(ctx, info.Handle))
	assert.Error(t, f.runner.Close(ctx, 42))

	require.Eventually(t, func() bool {
		ws, err := f.runner.Windows(ctx)
		return err == nil && len(ws) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRunner_CloseAllEndsRun(t *testing.T) {
	f := startRunner(t, true)
	ctx := ctxT(t)
	require.NoError(t, f.runner.Open(ctx, KindLog, KindAbout))

	n, err := f.runner.CloseAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, f.wait(t))
	assert.Empty(t, f.host.Open())

	_, err = f.runner.Status(ctx)
	assert.ErrorIs(t, err, ErrStopped)
}

func TestRunner_ContextCancel(t *testing.T) {
	f := startRunner(t, false)
	f.cancel()
	assert.ErrorIs(t, f.wait(t), context.Canceled)
}
