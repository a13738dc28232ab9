package window

import (
	"context"
	"fmt"
	"strings"
)

// Op identifies what a Request asks the host to do.
type Op uint8

const (
	OpNone Op = iota
	OpOpen
	OpClose
	OpBatch
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpOpen:
		return "open"
	case OpClose:
		return "close"
	case OpBatch:
		return "batch"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Request is an inert "do later" value. Registries build requests and
// callers pass them unmodified to the host's Executor; building a request
// performs no I/O.
type Request struct {
	Op       Op
	Handle   Handle
	Settings Settings
	Batch    []Request
}

// Executor carries out requests against a real windowing system.
type Executor interface {
	Execute(ctx context.Context, req Request) error
}

// None returns a request that does nothing.
func None() Request {
	return Request{Op: OpNone}
}

// Open asks the host to create the window h with the given settings.
func Open(h Handle, s Settings) Request {
	return Request{Op: OpOpen, Handle: h, Settings: s}
}

// Close asks the host to close the window h.
func Close(h Handle) Request {
	return Request{Op: OpClose, Handle: h}
}

// Batch combines requests into one the host treats as "do all of these".
// Nested batches are flattened and no-ops dropped; a single remaining
// request is returned as is.
func Batch(reqs ...Request) Request {
	var flat []Request
	for _, r := range reqs {
		flat = append(flat, r.Flatten()...)
	}
	switch len(flat) {
	case 0:
		return None()
	case 1:
		return flat[0]
	default:
		return Request{Op: OpBatch, Batch: flat}
	}
}

// IsNone reports whether executing r would do nothing.
func (r Request) IsNone() bool {
	return len(r.Flatten()) == 0
}

// Flatten returns the open/close requests contained in r, in order.
func (r Request) Flatten() []Request {
	switch r.Op {
	case OpOpen, OpClose:
		return []Request{r}
	case OpBatch:
		var out []Request
		for _, child := range r.Batch {
			out = append(out, child.Flatten()...)
		}
		return out
	default:
		return nil
	}
}

// Handles returns the handles r touches, in order.
func (r Request) Handles() []Handle {
	leaves := r.Flatten()
	out := make([]Handle, 0, len(leaves))
	for _, leaf := range leaves {
		out = append(out, leaf.Handle)
	}
	return out
}

func (r Request) String() string {
	switch r.Op {
	case OpOpen, OpClose:
		return fmt.Sprintf("%s(%d)", r.Op, r.Handle)
	case OpBatch:
		parts := make([]string, 0, len(r.Batch))
		for _, child := range r.Batch {
			parts = append(parts, child.String())
		}
		return "batch[" + strings.Join(parts, " ") + "]"
	default:
		return r.Op.String()
	}
}
