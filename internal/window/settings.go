package window

import "fmt"

// Size is a width and height in pixels (or cells for terminal hosts).
type Size struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// IsZero reports whether both dimensions are unset.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Point is a position in screen coordinates.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// PositionMode selects how the host places a new window.
type PositionMode string

const (
	PositionDefault  PositionMode = "default"  // Host decides.
	PositionCentered PositionMode = "centered" // Centered on the active display.
	PositionSpecific PositionMode = "specific" // Exactly Position.At.
)

// Position describes where a new window should appear.
type Position struct {
	Mode PositionMode `yaml:"mode" json:"mode"`
	At   Point        `yaml:"at,omitempty" json:"at,omitempty"`
}

// Level is the stacking level of a window.
type Level string

const (
	LevelNormal         Level = "normal"
	LevelAlwaysOnTop    Level = "always-on-top"
	LevelAlwaysOnBottom Level = "always-on-bottom"
)

// Settings tells the host how to create a native window. Zero MinSize and
// MaxSize mean unbounded.
type Settings struct {
	Size               Size     `yaml:"size" json:"size"`
	Position           Position `yaml:"position" json:"position"`
	MinSize            Size     `yaml:"min_size,omitempty" json:"min_size,omitempty"`
	MaxSize            Size     `yaml:"max_size,omitempty" json:"max_size,omitempty"`
	Resizable          bool     `yaml:"resizable" json:"resizable"`
	Decorations        bool     `yaml:"decorations" json:"decorations"`
	Transparent        bool     `yaml:"transparent" json:"transparent"`
	Level              Level    `yaml:"level" json:"level"`
	Visible            bool     `yaml:"visible" json:"visible"`
	ExitOnCloseRequest bool     `yaml:"exit_on_close_request" json:"exit_on_close_request"`
}

// DefaultSettings returns the settings used when a window kind has no
// opinion of its own.
func DefaultSettings() Settings {
	return Settings{
		Size:               Size{Width: 1024, Height: 768},
		Position:           Position{Mode: PositionDefault},
		Resizable:          true,
		Decorations:        true,
		Level:              LevelNormal,
		Visible:            true,
		ExitOnCloseRequest: true,
	}
}

// Validate checks the settings for values no host can honor.
func (s Settings) Validate() error {
	if s.Size.Width < 0 || s.Size.Height < 0 {
		return fmt.Errorf("size must be non-negative, got %dx%d", s.Size.Width, s.Size.Height)
	}
	if s.MinSize.Width < 0 || s.MinSize.Height < 0 {
		return fmt.Errorf("min_size must be non-negative, got %dx%d", s.MinSize.Width, s.MinSize.Height)
	}
	if s.MaxSize.Width < 0 || s.MaxSize.Height < 0 {
		return fmt.Errorf("max_size must be non-negative, got %dx%d", s.MaxSize.Width, s.MaxSize.Height)
	}
	if s.MaxSize.Width > 0 && s.MinSize.Width > s.MaxSize.Width {
		return fmt.Errorf("min_size width %d exceeds max_size width %d", s.MinSize.Width, s.MaxSize.Width)
	}
	if s.MaxSize.Height > 0 && s.MinSize.Height > s.MaxSize.Height {
		return fmt.Errorf("min_size height %d exceeds max_size height %d", s.MinSize.Height, s.MaxSize.Height)
	}
	switch s.Position.Mode {
	case "", PositionDefault, PositionCentered, PositionSpecific:
	default:
		return fmt.Errorf("unknown position mode %q", s.Position.Mode)
	}
	switch s.Level {
	case "", LevelNormal, LevelAlwaysOnTop, LevelAlwaysOnBottom:
	default:
		return fmt.Errorf("unknown window level %q", s.Level)
	}
	return nil
}

// ClampSize returns size limited to the min/max bounds. A non-resizable
// window is pinned to its initial size.
func (s Settings) ClampSize() (minSize, maxSize Size) {
	if !s.Resizable {
		return s.Size, s.Size
	}
	return s.MinSize, s.MaxSize
}
