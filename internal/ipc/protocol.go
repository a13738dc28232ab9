package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing        CommandType = "PING"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandSpawnWindow CommandType = "SPAWN_WINDOW"
	CommandCloseWindow CommandType = "CLOSE_WINDOW"
	CommandCloseAll    CommandType = "CLOSE_ALL"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Host          string   `json:"host"`
	Strategy      string   `json:"strategy"` // "union" or "dynamic"
	WindowCount   int      `json:"window_count"`
	Kinds         []string `json:"kinds"`
	UptimeSeconds int64    `json:"uptime_seconds"`
}

// WindowInfo describes one open window.
type WindowInfo struct {
	Handle uint32 `json:"handle"`
	Kind   string `json:"kind"`
	Title  string `json:"title"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// SpawnWindowPayload represents the payload for SPAWN_WINDOW
type SpawnWindowPayload struct {
	Kind string `json:"kind"`
}

// CloseWindowPayload represents the payload for CLOSE_WINDOW
type CloseWindowPayload struct {
	Handle uint32 `json:"handle"`
}

// CloseAllData represents the data returned by CLOSE_ALL
type CloseAllData struct {
	Requested int `json:"requested"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
