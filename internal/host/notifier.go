package host

import (
	"sync"

	"github.com/1broseidon/multiwin/internal/window"
)

// Notifier delivers closure notifications in order without ever blocking
// the notifying goroutine. The loop that drains C may itself trigger
// notifications (by executing a close) without deadlocking.
type Notifier struct {
	mu    sync.Mutex
	queue []window.Handle
	wake  chan struct{}
	out   chan window.Handle
	done  chan struct{}
	once  sync.Once
}

func NewNotifier() *Notifier {
	n := &Notifier{
		wake: make(chan struct{}, 1),
		out:  make(chan window.Handle),
		done: make(chan struct{}),
	}
	go n.pump()
	return n
}

// Notify queues a closure of h.
func (n *Notifier) Notify(h window.Handle) {
	n.mu.Lock()
	n.queue = append(n.queue, h)
	n.mu.Unlock()
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

// C returns the notification channel. It is closed after Stop.
func (n *Notifier) C() <-chan window.Handle {
	return n.out
}

// Stop discards pending notifications and closes C.
func (n *Notifier) Stop() {
	n.once.Do(func() { close(n.done) })
}

func (n *Notifier) pump() {
	defer close(n.out)
	for {
		n.mu.Lock()
		if len(n.queue) == 0 {
			n.mu.Unlock()
			select {
			case <-n.wake:
				continue
			case <-n.done:
				return
			}
		}
		h := n.queue[0]
		n.queue = n.queue[1:]
		n.mu.Unlock()

		select {
		case n.out <- h:
		case <-n.done:
			return
		}
	}
}
