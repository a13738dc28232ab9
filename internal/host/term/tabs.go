package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/multiwin/internal/theme"
)

const helpText = "tab/shift-tab: switch  n: new window  ctrl-w: close  q: close all  ctrl-c: quit"

// chrome draws the frame around the focused window in that window's theme.
type chrome struct {
	th    theme.Theme
	width int
}

func (c chrome) bar() lipgloss.Style {
	return c.th.Style().Width(c.width).Padding(0, 1)
}

func (c chrome) muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
}

// tabBar labels each title with its 1-based position and highlights the
// active one.
func (c chrome) tabBar(titles []string, active int) string {
	var b strings.Builder
	for i, title := range titles {
		if i > 0 {
			b.WriteString(c.muted().Render("│"))
		}
		label := fmt.Sprintf(" %d:%s ", i+1, title)
		if i == active {
			b.WriteString(c.th.AccentStyle().Underline(true).Render(label))
		} else {
			b.WriteString(c.muted().Render(label))
		}
	}
	return lipgloss.NewStyle().Width(c.width).MaxHeight(1).Render(b.String())
}

func (c chrome) placeholder(msg string, height int) string {
	return c.muted().
		Width(c.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(msg)
}

func (c chrome) statusBar(status string, open int) string {
	text := c.th.AccentStyle().Render("●") + fmt.Sprintf(" %d open", open)
	if status != "" {
		text += "  " + status
	}
	return c.bar().Render(text)
}

func (c chrome) helpBar() string {
	return c.muted().Width(c.width).Padding(0, 1).Render(helpText)
}
