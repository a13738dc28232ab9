// Package theme holds the color themes windows are presented with.
package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of colors in #rrggbb form.
type Theme struct {
	Name       string `yaml:"name" json:"name"`
	Foreground string `yaml:"foreground" json:"foreground"`
	Background string `yaml:"background" json:"background"`
	Accent     string `yaml:"accent" json:"accent"`
}

func Dark() Theme {
	return Theme{Name: "dark", Foreground: "#e4e4e4", Background: "#1c1c1c", Accent: "#5fafff"}
}

func Light() Theme {
	return Theme{Name: "light", Foreground: "#1c1c1c", Background: "#f5f5f5", Accent: "#005fd7"}
}

// Names lists the built-in theme names.
func Names() []string {
	return []string{"dark", "light"}
}

// ByName returns the built-in theme called name.
func ByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return Dark(), nil
	case "light":
		return Light(), nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want one of: %s)", name, strings.Join(Names(), ", "))
}

// Validate checks that every color parses.
func (t Theme) Validate() error {
	for field, c := range map[string]string{"foreground": t.Foreground, "background": t.Background, "accent": t.Accent} {
		if _, err := ParseHex(c); err != nil {
			return fmt.Errorf("theme %s: %s: %w", t.Name, field, err)
		}
	}
	return nil
}

// ParseHex parses a #rrggbb color into a 0xrrggbb value.
func ParseHex(c string) (uint32, error) {
	s, ok := strings.CutPrefix(c, "#")
	if !ok || len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q: want #rrggbb", c)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", c, err)
	}
	return uint32(v), nil
}

// BackgroundPixel returns the background as a 24-bit TrueColor pixel value.
// Unparseable colors fall back to black.
func (t Theme) BackgroundPixel() uint32 {
	v, _ := ParseHex(t.Background)
	return v
}

// Style returns the base lipgloss style for window content.
func (t Theme) Style() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Foreground)).
		Background(lipgloss.Color(t.Background))
}

// AccentStyle returns a bold style in the accent color.
func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent))
}
