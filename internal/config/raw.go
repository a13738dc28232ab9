package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/multiwin/internal/window"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawSize struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawPosition struct {
	Mode *window.PositionMode `yaml:"mode"`
	At   *window.Point        `yaml:"at"`
}

// WindowOverride patches the settings a window kind asks for. Unset fields
// keep the kind's own value.
type WindowOverride struct {
	Size               *RawSize      `yaml:"size,omitempty"`
	Position           *RawPosition  `yaml:"position,omitempty"`
	MinSize            *RawSize      `yaml:"min_size,omitempty"`
	MaxSize            *RawSize      `yaml:"max_size,omitempty"`
	Resizable          *bool         `yaml:"resizable,omitempty"`
	Decorations        *bool         `yaml:"decorations,omitempty"`
	Transparent        *bool         `yaml:"transparent,omitempty"`
	Level              *window.Level `yaml:"level,omitempty"`
	Visible            *bool         `yaml:"visible,omitempty"`
	ExitOnCloseRequest *bool         `yaml:"exit_on_close_request,omitempty"`
}

// Apply returns base with every set field of o applied.
func (o WindowOverride) Apply(base window.Settings) window.Settings {
	out := base
	out.Size = applySize(out.Size, o.Size)
	out.MinSize = applySize(out.MinSize, o.MinSize)
	out.MaxSize = applySize(out.MaxSize, o.MaxSize)
	if o.Position != nil {
		if o.Position.Mode != nil {
			out.Position.Mode = *o.Position.Mode
		}
		if o.Position.At != nil {
			out.Position.At = *o.Position.At
		}
	}
	setBool(&out.Resizable, o.Resizable)
	setBool(&out.Decorations, o.Decorations)
	setBool(&out.Transparent, o.Transparent)
	setBool(&out.Visible, o.Visible)
	setBool(&out.ExitOnCloseRequest, o.ExitOnCloseRequest)
	if o.Level != nil {
		out.Level = *o.Level
	}
	return out
}

func applySize(base window.Size, patch *RawSize) window.Size {
	if patch == nil {
		return base
	}
	if patch.Width != nil {
		base.Width = *patch.Width
	}
	if patch.Height != nil {
		base.Height = *patch.Height
	}
	return base
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

type RawLoggingConfig struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

type RawIPCConfig struct {
	Enabled *bool   `yaml:"enabled"`
	Socket  *string `yaml:"socket"`
}

type RawConfig struct {
	Include IncludeList               `yaml:"include"`
	Host    *HostKind                 `yaml:"host"`
	Theme   *string                   `yaml:"theme"`
	Display *string                   `yaml:"display"`
	Open    []string                  `yaml:"open"`
	Logging *RawLoggingConfig         `yaml:"logging"`
	IPC     *RawIPCConfig             `yaml:"ipc"`
	Windows map[string]WindowOverride `yaml:"windows"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Host != nil {
		out.Host = overlay.Host
	}
	if overlay.Theme != nil {
		out.Theme = overlay.Theme
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.Open != nil {
		out.Open = overlay.Open
	}
	if overlay.Logging != nil {
		if out.Logging == nil {
			out.Logging = &RawLoggingConfig{}
		}
		merged := *out.Logging
		if overlay.Logging.Level != nil {
			merged.Level = overlay.Logging.Level
		}
		if overlay.Logging.File != nil {
			merged.File = overlay.Logging.File
		}
		out.Logging = &merged
	}
	if overlay.IPC != nil {
		if out.IPC == nil {
			out.IPC = &RawIPCConfig{}
		}
		merged := *out.IPC
		if overlay.IPC.Enabled != nil {
			merged.Enabled = overlay.IPC.Enabled
		}
		if overlay.IPC.Socket != nil {
			merged.Socket = overlay.IPC.Socket
		}
		out.IPC = &merged
	}
	if overlay.Windows != nil {
		windows := make(map[string]WindowOverride, len(out.Windows)+len(overlay.Windows))
		for k, v := range out.Windows {
			windows[k] = v
		}
		for k, v := range overlay.Windows {
			windows[k] = mergeWindowOverride(windows[k], v)
		}
		out.Windows = windows
	}
	return out
}

func mergeWindowOverride(base, overlay WindowOverride) WindowOverride {
	out := base
	out.Size = mergeRawSize(base.Size, overlay.Size)
	out.MinSize = mergeRawSize(base.MinSize, overlay.MinSize)
	out.MaxSize = mergeRawSize(base.MaxSize, overlay.MaxSize)
	if overlay.Position != nil {
		pos := RawPosition{}
		if base.Position != nil {
			pos = *base.Position
		}
		if overlay.Position.Mode != nil {
			pos.Mode = overlay.Position.Mode
		}
		if overlay.Position.At != nil {
			pos.At = overlay.Position.At
		}
		out.Position = &pos
	}
	if overlay.Resizable != nil {
		out.Resizable = overlay.Resizable
	}
	if overlay.Decorations != nil {
		out.Decorations = overlay.Decorations
	}
	if overlay.Transparent != nil {
		out.Transparent = overlay.Transparent
	}
	if overlay.Level != nil {
		out.Level = overlay.Level
	}
	if overlay.Visible != nil {
		out.Visible = overlay.Visible
	}
	if overlay.ExitOnCloseRequest != nil {
		out.ExitOnCloseRequest = overlay.ExitOnCloseRequest
	}
	return out
}

func mergeRawSize(base, overlay *RawSize) *RawSize {
	if overlay == nil {
		return base
	}
	out := RawSize{}
	if base != nil {
		out = *base
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	return &out
}
