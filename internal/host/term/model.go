package term

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/multiwin/internal/theme"
	"github.com/1broseidon/multiwin/internal/window"
)

// kindItem implements list.Item for the spawn menu.
type kindItem string

func (i kindItem) Title() string       { return string(i) }
func (i kindItem) Description() string { return "" }
func (i kindItem) FilterValue() string { return string(i) }

// Model is the root bubbletea model. Its tabs follow the registry: a tab
// appears on OpenedMsg and disappears on ClosedMsg.
type Model struct {
	session Session
	logger  *slog.Logger

	tabs   []window.Handle
	active int

	menu     list.Model
	menuOpen bool

	status string
	width  int
	height int
}

// NewModel builds a model for session. Windows the session already holds,
// such as the main window, start out as tabs.
func NewModel(session Session, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	kinds := session.Kinds()
	items := make([]list.Item, 0, len(kinds))
	for _, k := range kinds {
		items = append(items, kindItem(k))
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Open window"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{
		session: session,
		logger:  logger,
		tabs:    session.Handles(),
		menu:    l,
	}
}

// Tabs returns the handles shown as tabs, in display order.
func (m Model) Tabs() []window.Handle {
	return slices.Clone(m.tabs)
}

// Focused returns the handle of the active tab.
func (m Model) Focused() (window.Handle, bool) {
	if len(m.tabs) == 0 {
		return 0, false
	}
	return m.tabs[m.active], true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.session.IsEmpty() {
		return tea.Quit
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenedMsg:
		if !slices.Contains(m.tabs, msg.Handle) {
			m.tabs = append(m.tabs, msg.Handle)
			m.active = len(m.tabs) - 1
		}
		return m, nil

	case ClosedMsg:
		m.session.Closed(msg.Handle)
		if i := slices.Index(m.tabs, msg.Handle); i >= 0 {
			m.tabs = slices.Delete(m.tabs, i, i+1)
			if m.active >= len(m.tabs) && m.active > 0 {
				m.active = len(m.tabs) - 1
			}
		}
		if m.session.IsEmpty() {
			m.logger.Debug("last window closed, exiting")
			return m, tea.Quit
		}
		return m, nil

	case ResultsMsg:
		var (
			next tea.Model = m
			cmds []tea.Cmd
		)
		for _, sub := range msg {
			var cmd tea.Cmd
			next, cmd = next.Update(sub)
			cmds = append(cmds, cmd)
		}
		return next, tea.Batch(cmds...)

	case CallMsg:
		return m, msg.Fn()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(min(40, msg.Width), max(1, msg.Height-4))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.menuOpen {
			return m.updateMenu(msg)
		}
		return m.updateTabs(msg)
	}
	return m, nil
}

func (m Model) updateTabs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "right", "l":
		if len(m.tabs) > 0 {
			m.active = (m.active + 1) % len(m.tabs)
		}
	case "shift+tab", "left", "h":
		if len(m.tabs) > 0 {
			m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
		}
	case "n":
		m.menuOpen = true
		m.status = ""
	case "ctrl+w":
		h, ok := m.Focused()
		if !ok {
			return m, nil
		}
		if !m.session.Settings(h).ExitOnCloseRequest {
			m.status = "this window ignores close requests"
			return m, nil
		}
		return m, Command(m.session.Close(h))
	case "q":
		m.status = "closing all windows"
		return m, Command(m.session.CloseAll())
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.menuOpen = false
		return m, nil
	case "enter":
		m.menuOpen = false
		item, ok := m.menu.SelectedItem().(kindItem)
		if !ok {
			return m, nil
		}
		h, req, err := m.session.Spawn(string(item))
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("opened %s (#%d)", item, h)
		return m, Command(req)
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	titles := make([]string, len(m.tabs))
	for i, h := range m.tabs {
		titles[i], _, _ = m.session.View(h)
	}
	var content string
	c := chrome{th: theme.Dark(), width: m.width}
	if len(m.tabs) > 0 {
		_, content, c.th = m.session.View(m.tabs[m.active])
	}
	tabBar := c.tabBar(titles, m.active)
	statusBar := c.statusBar(m.status, len(m.tabs))
	helpBar := c.helpBar()

	used := lipgloss.Height(tabBar) + lipgloss.Height(statusBar) + lipgloss.Height(helpBar)
	contentHeight := max(1, m.height-used)

	var body string
	switch {
	case m.menuOpen:
		body = lipgloss.NewStyle().Width(m.width).Height(contentHeight).Padding(0, 1).Render(m.menu.View())
	case len(m.tabs) == 0:
		body = c.placeholder("no windows", contentHeight)
	default:
		body = c.th.Style().Width(m.width).Height(contentHeight).Padding(0, 1).Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tabBar,
		body,
		statusBar,
		helpBar,
	)
}
