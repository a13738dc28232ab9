// Package app is the demo application: three window kinds over a shared
// State, registered either as a generated closed union or as dynamic
// windows, and the loops that own the registry while a host runs.
package app

//go:generate go run ../../cmd/windowgen -type AppWindow -app *State -content string -theme theme.Theme -kinds SettingsWindow,LogWindow,AboutWindow -imports github.com/1broseidon/multiwin/internal/theme

import (
	"fmt"
	"time"

	"github.com/1broseidon/multiwin/internal/theme"
)

// Entry is one line of the application log shown by LogWindow.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
}

// State is the application state every window renders from.
type State struct {
	Theme    theme.Theme
	Host     string
	Strategy string
	Started  time.Time
	Entries  []Entry
	// Opened counts spawns per kind name.
	Opened map[string]int

	now func() time.Time
}

// NewState returns state for a run on host using strategy.
func NewState(th theme.Theme, host, strategy string) *State {
	s := &State{
		Theme:    th,
		Host:     host,
		Strategy: strategy,
		Opened:   make(map[string]int),
		now:      time.Now,
	}
	s.Started = s.now()
	return s
}

// Record appends a log entry.
func (s *State) Record(level, format string, args ...any) {
	s.Entries = append(s.Entries, Entry{
		Time:    s.now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
