// Package mcp exposes a running multiwin instance to MCP clients over stdio.
// Every tool is a thin proxy onto the IPC control socket.
package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/multiwin/internal/ipc"
)

const (
	ServerName    = "multiwin"
	ServerVersion = "0.1.0"
)

// Backend is the control surface the tools drive. *ipc.Client implements it.
type Backend interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() ([]ipc.WindowInfo, error)
	SpawnWindow(kind string) (*ipc.WindowInfo, error)
	CloseWindow(handle uint32) error
	CloseAll() (int, error)
}

// Server is the MCP server for window management.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   Backend
	logger    *slog.Logger
}

// NewServer creates a new MCP server that forwards to backend.
func NewServer(backend Backend, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		backend: backend,
		logger:  logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the running multiwin instance: host backend, window strategy, number of open windows, and the window kinds that can be spawned.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the open windows ordered by handle. Optionally filter by kind.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "spawn_window",
		Description: "Open a new window of the given kind. Returns the handle assigned by the host.",
	}, s.handleSpawnWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Ask the host to close one window. The window leaves the registry once the host confirms the closure.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_all_windows",
		Description: "Ask the host to close every open window. multiwin exits once the last window is gone.",
	}, s.handleCloseAll)
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.backend.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, fmt.Errorf("failed to get status: %w", err)
	}
	return nil, GetStatusOutput{
		Host:          status.Host,
		Strategy:      status.Strategy,
		WindowCount:   status.WindowCount,
		Kinds:         status.Kinds,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.backend.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to list windows: %w", err)
	}
	out := make([]ipc.WindowInfo, 0, len(windows))
	for _, w := range windows {
		if args.Kind != "" && w.Kind != args.Kind {
			continue
		}
		out = append(out, w)
	}
	return nil, ListWindowsOutput{Windows: out}, nil
}

func (s *Server) handleSpawnWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args SpawnWindowInput) (*mcpsdk.CallToolResult, SpawnWindowOutput, error) {
	if args.Kind == "" {
		return nil, SpawnWindowOutput{}, fmt.Errorf("kind is required")
	}
	info, err := s.backend.SpawnWindow(args.Kind)
	if err != nil {
		return nil, SpawnWindowOutput{}, fmt.Errorf("failed to spawn %s window: %w", args.Kind, err)
	}
	s.logger.Info("mcp spawned window", "kind", info.Kind, "handle", info.Handle)
	return nil, SpawnWindowOutput{Handle: info.Handle, Kind: info.Kind, Title: info.Title}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args CloseWindowInput) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	if err := s.backend.CloseWindow(args.Handle); err != nil {
		return nil, CloseWindowOutput{}, fmt.Errorf("failed to close window %d: %w", args.Handle, err)
	}
	return nil, CloseWindowOutput{Handle: args.Handle}, nil
}

func (s *Server) handleCloseAll(_ context.Context, _ *mcpsdk.CallToolRequest, _ CloseAllInput) (*mcpsdk.CallToolResult, CloseAllOutput, error) {
	n, err := s.backend.CloseAll()
	if err != nil {
		return nil, CloseAllOutput{}, fmt.Errorf("failed to close windows: %w", err)
	}
	s.logger.Info("mcp closed all windows", "requested", n)
	return nil, CloseAllOutput{Requested: n}, nil
}
