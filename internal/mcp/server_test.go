package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/1broseidon/multiwin/internal/ipc"
)

type fakeBackend struct {
	windows []ipc.WindowInfo
	closed  []uint32
	err     error
}

func (f *fakeBackend) GetStatus() (*ipc.StatusData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.StatusData{Host: "headless", Strategy: "union", WindowCount: len(f.windows), Kinds: []string{"about", "log"}}, nil
}

func (f *fakeBackend) ListWindows() ([]ipc.WindowInfo, error) {
	return f.windows, f.err
}

func (f *fakeBackend) SpawnWindow(kind string) (*ipc.WindowInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	info := ipc.WindowInfo{Handle: uint32(len(f.windows) + 1), Kind: kind, Title: "About"}
	f.windows = append(f.windows, info)
	return &info, nil
}

func (f *fakeBackend) CloseWindow(h uint32) error {
	f.closed = append(f.closed, h)
	return f.err
}

func (f *fakeBackend) CloseAll() (int, error) {
	return len(f.windows), f.err
}

func TestNewServer_RegistersTools(t *testing.T) {
	if s := NewServer(&fakeBackend{}, nil); s.mcpServer == nil {
		t.Fatal("expected MCP server to be created")
	}
}

func TestHandleListWindows_FiltersByKind(t *testing.T) {
	b := &fakeBackend{windows: []ipc.WindowInfo{
		{Handle: 1, Kind: "log"},
		{Handle: 2, Kind: "about"},
		{Handle: 3, Kind: "log"},
	}}
	s := NewServer(b, nil)

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{Kind: "log"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Windows) != 2 || out.Windows[0].Handle != 1 || out.Windows[1].Handle != 3 {
		t.Fatalf("unexpected windows: %+v", out.Windows)
	}

	_, out, err = s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil || len(out.Windows) != 3 {
		t.Fatalf("expected all windows, got %+v, %v", out.Windows, err)
	}
}

func TestHandleSpawnWindow(t *testing.T) {
	b := &fakeBackend{}
	s := NewServer(b, nil)

	if _, _, err := s.handleSpawnWindow(context.Background(), nil, SpawnWindowInput{}); err == nil {
		t.Fatal("expected error for empty kind")
	}

	_, out, err := s.handleSpawnWindow(context.Background(), nil, SpawnWindowInput{Kind: "about"})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if out.Handle != 1 || out.Kind != "about" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestHandleCloseWindowAndCloseAll(t *testing.T) {
	b := &fakeBackend{windows: []ipc.WindowInfo{{Handle: 4}, {Handle: 5}}}
	s := NewServer(b, nil)

	_, closeOut, err := s.handleCloseWindow(context.Background(), nil, CloseWindowInput{Handle: 4})
	if err != nil || closeOut.Handle != 4 {
		t.Fatalf("close: %+v, %v", closeOut, err)
	}
	if len(b.closed) != 1 || b.closed[0] != 4 {
		t.Fatalf("expected backend to see close(4), got %v", b.closed)
	}

	_, allOut, err := s.handleCloseAll(context.Background(), nil, CloseAllInput{})
	if err != nil || allOut.Requested != 2 {
		t.Fatalf("close all: %+v, %v", allOut, err)
	}
}

func TestHandlers_WrapBackendErrors(t *testing.T) {
	s := NewServer(&fakeBackend{err: errors.New("connection refused")}, nil)

	_, _, err := s.handleGetStatus(context.Background(), nil, GetStatusInput{})
	if err == nil || err.Error() != "failed to get status: connection refused" {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := s.handleCloseAll(context.Background(), nil, CloseAllInput{}); err == nil {
		t.Fatal("expected close all error")
	}
}
