package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"
)

// Controller is the running application as seen from the socket. Calls
// arrive on connection goroutines; implementations hand them to the loop
// that owns the window registry.
type Controller interface {
	Status(ctx context.Context) (StatusData, error)
	Windows(ctx context.Context) ([]WindowInfo, error)
	Spawn(ctx context.Context, kind string) (WindowInfo, error)
	Close(ctx context.Context, handle uint32) error
	CloseAll(ctx context.Context) (int, error)
}

// ServerConfig configures the IPC server.
type ServerConfig struct {
	SocketPath string
	Controller Controller
	Logger     *slog.Logger
	// RequestTimeout bounds each controller call. Defaults to 5s.
	RequestTimeout time.Duration
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	ctrl         Controller
	logger       *slog.Logger
	timeout      time.Duration
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.SocketPath == "" {
		return nil, errors.New("socket path is required")
	}
	if cfg.Controller == nil {
		return nil, errors.New("controller is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	// Remove a stale socket from a previous run.
	os.Remove(cfg.SocketPath)

	return &Server{
		socketPath: cfg.SocketPath,
		ctrl:       cfg.Controller,
		logger:     logger,
		timeout:    timeout,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			stopping := s.shuttingDown
			s.shutdownMu.Unlock()
			if stopping || errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("IPC accept error", "err", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// handleConnection serves a single JSON-line request.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "err", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.writeResponse(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.writeResponse(conn, s.handleCommand(ctx, req))
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal IPC response", "err", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send IPC response", "err", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(ctx context.Context, req *Request) *Response {
	s.logger.Debug("IPC request", "command", req.Command)
	switch req.Command {
	case CommandPing:
		return ok(nil)
	case CommandGetStatus:
		return s.handleGetStatus(ctx)
	case CommandListWindows:
		return s.handleListWindows(ctx)
	case CommandSpawnWindow:
		return s.handleSpawnWindow(ctx, req.Payload)
	case CommandCloseWindow:
		return s.handleCloseWindow(ctx, req.Payload)
	case CommandCloseAll:
		return s.handleCloseAll(ctx)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus(ctx context.Context) *Response {
	status, err := s.ctrl.Status(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get status: %v", err))
	}
	status.UptimeSeconds = int64(time.Since(s.startTime).Seconds())
	return ok(status)
}

func (s *Server) handleListWindows(ctx context.Context) *Response {
	windows, err := s.ctrl.Windows(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to list windows: %v", err))
	}
	if windows == nil {
		windows = []WindowInfo{}
	}
	return ok(WindowsData{Windows: windows})
}

func (s *Server) handleSpawnWindow(ctx context.Context, payload json.RawMessage) *Response {
	var req SpawnWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid spawn payload: %v", err))
	}
	if req.Kind == "" {
		return NewErrorResponse("kind is required")
	}

	info, err := s.ctrl.Spawn(ctx, req.Kind)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to spawn %s: %v", req.Kind, err))
	}
	s.logger.Info("IPC spawned window", "kind", req.Kind, "handle", info.Handle)
	return ok(info)
}

func (s *Server) handleCloseWindow(ctx context.Context, payload json.RawMessage) *Response {
	var req CloseWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid close payload: %v", err))
	}
	if err := s.ctrl.Close(ctx, req.Handle); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to close window %d: %v", req.Handle, err))
	}
	return ok(nil)
}

func (s *Server) handleCloseAll(ctx context.Context) *Response {
	n, err := s.ctrl.CloseAll(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to close windows: %v", err))
	}
	return ok(CloseAllData{Requested: n})
}

func ok(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// Stop shuts down the IPC server and waits for in-flight requests.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}
