package term

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopCall_RunsBeforeDeadline(t *testing.T) {
	got := 0
	c := newLoopCall(func() tea.Cmd {
		got = 42
		return nil
	})
	go c.run()

	require.NoError(t, c.wait(context.Background()))
	assert.Equal(t, 42, got)
}

func TestLoopCall_AbandonedCallNeverRuns(t *testing.T) {
	ran := false
	c := newLoopCall(func() tea.Cmd {
		ran = true
		return tea.Quit
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.wait(ctx), context.Canceled)
	// The loop reaches the message late; it must not touch the caller's state.
	assert.Nil(t, c.run())
	assert.False(t, ran)
}

func TestLoopCall_StartedCallIsAwaitedPastDeadline(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	result := ""
	c := newLoopCall(func() tea.Cmd {
		close(started)
		<-release
		result = "done"
		return nil
	})
	go c.run()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	errc := make(chan error, 1)
	go func() { errc <- c.wait(ctx) }()

	select {
	case err := <-errc:
		t.Fatalf("wait returned %v while the call was still running", err)
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	require.NoError(t, <-errc)
	assert.Equal(t, "done", result)
}

func TestLoopCall_RunsOnce(t *testing.T) {
	n := 0
	c := newLoopCall(func() tea.Cmd {
		n++
		return nil
	})
	c.run()
	c.run()
	require.NoError(t, c.wait(context.Background()))
	assert.Equal(t, 1, n)
}
