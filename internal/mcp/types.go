package mcp

import "github.com/1broseidon/multiwin/internal/ipc"

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Host          string   `json:"host"`
	Strategy      string   `json:"strategy"`
	WindowCount   int      `json:"window_count"`
	Kinds         []string `json:"kinds"`
	UptimeSeconds int64    `json:"uptime_seconds"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"Only list windows of this kind"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []ipc.WindowInfo `json:"windows"`
}

// SpawnWindowInput is the input for the spawn_window tool.
type SpawnWindowInput struct {
	Kind string `json:"kind" jsonschema:"required,Window kind to open (see get_status for the available kinds)"`
}

// SpawnWindowOutput is the output for the spawn_window tool.
type SpawnWindowOutput struct {
	Handle uint32 `json:"handle"`
	Kind   string `json:"kind"`
	Title  string `json:"title"`
}

// CloseWindowInput is the input for the close_window tool.
type CloseWindowInput struct {
	Handle uint32 `json:"handle" jsonschema:"required,Handle of the window to close, as returned by list_windows or spawn_window"`
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	Handle uint32 `json:"handle"`
}

// CloseAllInput is the input for the close_all_windows tool.
type CloseAllInput struct{}

// CloseAllOutput is the output for the close_all_windows tool.
type CloseAllOutput struct {
	Requested int `json:"requested"`
}
