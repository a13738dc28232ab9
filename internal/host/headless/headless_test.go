package headless

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/window"
)

func next(t *testing.T, h *Host) window.Handle {
	t.Helper()
	select {
	case id := <-h.Closed():
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for closure")
		return 0
	}
}

func TestHost_OpenCloseLifecycle(t *testing.T) {
	h := New(nil)
	defer h.Close()
	ctx := context.Background()

	h.OpenMain(window.DefaultSettings())
	a, b := h.NextHandle(), h.NextHandle()
	assert.Equal(t, window.Handle(1), a)
	assert.Equal(t, window.Handle(2), b)

	s := window.DefaultSettings()
	s.Size = window.Size{Width: 300, Height: 200}
	require.NoError(t, h.Execute(ctx, window.Batch(window.Open(a, s), window.Open(b, window.DefaultSettings()))))
	assert.Equal(t, []window.Handle{window.MainHandle, a, b}, h.Open())

	rec, ok := h.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, 300, rec.Settings.Size.Width)

	require.NoError(t, h.Execute(ctx, window.Close(a)))
	assert.Equal(t, a, next(t, h))
	assert.Equal(t, []window.Handle{window.MainHandle, b}, h.Open())

	// Closing again is ignored; no second notification is queued.
	require.NoError(t, h.Execute(ctx, window.Close(a)))
	h.SimulateClose(b)
	assert.Equal(t, b, next(t, h))
}

func TestHost_SimulateCloseDuplicates(t *testing.T) {
	h := New(nil)
	defer h.Close()

	id := h.NextHandle()
	require.NoError(t, h.Execute(context.Background(), window.Open(id, window.DefaultSettings())))
	h.SimulateClose(id)
	h.SimulateClose(id)
	assert.Equal(t, id, next(t, h))
	assert.Equal(t, id, next(t, h))
	assert.Empty(t, h.Open())
}

func TestHost_FailNextOpen(t *testing.T) {
	h := New(nil)
	defer h.Close()

	h.FailNextOpen(1)
	bad, good := h.NextHandle(), h.NextHandle()
	require.NoError(t, h.Execute(context.Background(), window.Batch(window.Open(bad, window.DefaultSettings()), window.Open(good, window.DefaultSettings()))))

	assert.Equal(t, bad, next(t, h))
	assert.Equal(t, []window.Handle{good}, h.Open())
}

func TestHost_Present(t *testing.T) {
	h := New(nil)
	defer h.Close()

	id := h.NextHandle()
	require.NoError(t, h.Execute(context.Background(), window.Open(id, window.DefaultSettings())))
	require.NoError(t, h.Present(id, "Log", "line 1", theme.Light()))
	require.NoError(t, h.Present(id, "Log", "line 2", theme.Light()))
	require.NoError(t, h.Present(99, "ghost", "", theme.Dark()))

	rec, ok := h.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "Log", rec.Title)
	assert.Equal(t, "line 2", rec.Content)
	assert.Equal(t, 2, rec.Frames)
	assert.Equal(t, "light", rec.Theme.Name)
}

func TestHost_ExecuteHonorsContext(t *testing.T) {
	h := New(nil)
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.Execute(ctx, window.Open(h.NextHandle(), window.DefaultSettings())), context.Canceled)
	assert.Empty(t, h.Open())
}
