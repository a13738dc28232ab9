package host

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/multiwin/internal/window"
)

func receive(t *testing.T, c <-chan window.Handle) window.Handle {
	t.Helper()
	select {
	case h, ok := <-c:
		require.True(t, ok, "channel closed")
		return h
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return 0
	}
}

func TestNotifier_OrderedAndNonBlocking(t *testing.T) {
	n := NewNotifier()
	defer n.Stop()

	// Many notifications with nobody reading must not block.
	for h := window.Handle(1); h <= 100; h++ {
		n.Notify(h)
	}
	for want := window.Handle(1); want <= 100; want++ {
		assert.Equal(t, want, receive(t, n.C()))
	}
}

func TestNotifier_StopClosesChannel(t *testing.T) {
	n := NewNotifier()
	n.Notify(7)
	n.Stop()
	n.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-n.C():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after Stop")
		}
	}
}
