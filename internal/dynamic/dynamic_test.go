package dynamic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/multiwin/internal/window"
)

type state struct {
	lines []string
}

type logWindow struct {
	Kind
	filter string
	copies *int
}

func newLog(filter string) *logWindow {
	return &logWindow{Kind: "log", filter: filter}
}

func (w *logWindow) Content(app *state, h window.Handle) string {
	return fmt.Sprintf("%d lines matching %q", len(app.lines), w.filter)
}

func (w *logWindow) Title(_ *state, h window.Handle) string {
	return fmt.Sprintf("Log #%d", h)
}

func (w *logWindow) Theme(*state, window.Handle) string { return "dark" }

func (w *logWindow) Settings() window.Settings { return window.DefaultSettings() }

func (w *logWindow) Duplicate() Window[*state, string, string] {
	if w.copies != nil {
		*w.copies++
	}
	dup := *w
	return &dup
}

type settingsWindow struct {
	Kind
}

func (settingsWindow) Content(*state, window.Handle) string { return "settings" }
func (settingsWindow) Title(*state, window.Handle) string   { return "Settings" }
func (settingsWindow) Theme(*state, window.Handle) string   { return "light" }
func (settingsWindow) Settings() window.Settings            { return window.DefaultSettings() }
func (w settingsWindow) Duplicate() Window[*state, string, string] {
	return w
}

type counter struct{ next window.Handle }

func (c *counter) NextHandle() window.Handle {
	c.next++
	return c.next
}

func TestEqual_IgnoresContent(t *testing.T) {
	a := newLog("error")
	b := newLog("warn")

	assert.True(t, Equal[*state, string, string](a, b), "same kind with different content must compare equal")
	assert.False(t, Equal[*state, string, string](a, settingsWindow{Kind: "settings"}))
	assert.True(t, Equal[*state, string, string](nil, nil))
	assert.False(t, Equal[*state, string, string](a, nil))
}

func TestStrategy_CloneDuplicates(t *testing.T) {
	copies := 0
	orig := newLog("error")
	orig.copies = &copies

	clone := Strategy[*state, string, string]{}.Clone(orig)

	require.NotNil(t, clone)
	assert.Equal(t, 1, copies)
	dup, ok := clone.(*logWindow)
	require.True(t, ok)
	assert.NotSame(t, orig, dup)
	assert.Equal(t, "error", dup.filter)
	assert.Nil(t, Strategy[*state, string, string]{}.Clone(nil))
}

func TestManager_IdentityQueries(t *testing.T) {
	m := NewManagerWithMain[*state, string, string](&counter{}, nil, settingsWindow{Kind: "settings"})
	app := &state{lines: []string{"a", "b"}}

	h, req := m.Spawn(newLog("error"))
	assert.Equal(t, window.OpOpen, req.Op)

	assert.True(t, m.AnyOf(newLog("something else")))
	assert.True(t, m.AnyFunc(HasIdentity[*state, string, string]("settings")))
	assert.False(t, m.AnyFunc(HasIdentity[*state, string, string]("about")))
	assert.Equal(t, `2 lines matching "error"`, m.Content(app, h))
	assert.Equal(t, fmt.Sprintf("Log #%d", h), m.Title(app, h))

	insts := m.InstancesOf(newLog(""))
	require.Len(t, insts, 1)
	assert.Equal(t, h, insts[0].Handle)

	m.Closed(window.MainHandle)
	assert.False(t, m.AnyFunc(HasIdentity[*state, string, string]("settings")))
	m.Closed(h)
	assert.True(t, m.IsEmpty())
}

func TestManager_InstancesAreCopies(t *testing.T) {
	m := NewManager[*state, string, string](&counter{}, nil)
	copies := 0
	w := newLog("error")
	w.copies = &copies
	m.Spawn(w)
	assert.Equal(t, 1, copies)
	w.filter = "changed by caller"

	insts := m.InstancesOf(newLog(""))
	require.Len(t, insts, 1)
	assert.Equal(t, 2, copies)
	insts[0].Window.(*logWindow).filter = "mutated"

	again := m.InstancesOf(newLog(""))
	assert.Equal(t, "error", again[0].Window.(*logWindow).filter)
}

func TestCatalog_RegisterAndNew(t *testing.T) {
	c := NewCatalog[*state, string, string]()
	c.Register(func() Window[*state, string, string] { return newLog("") })
	c.Register(func() Window[*state, string, string] { return settingsWindow{Kind: "settings"} })

	assert.Equal(t, []string{"log", "settings"}, c.Identities())

	w, err := c.New("log")
	require.NoError(t, err)
	assert.Equal(t, "log", w.Identity())

	_, err = c.New("about")
	assert.Error(t, err)
}

func TestCatalog_RegisterPanics(t *testing.T) {
	c := NewCatalog[*state, string, string]()
	c.Register(func() Window[*state, string, string] { return newLog("") })

	assert.Panics(t, func() {
		c.Register(func() Window[*state, string, string] { return newLog("other") })
	}, "duplicate identity")
	assert.Panics(t, func() {
		c.Register(func() Window[*state, string, string] { return nil })
	}, "nil product")
	assert.Panics(t, func() {
		c.Register(func() Window[*state, string, string] { return settingsWindow{} })
	}, "empty identity")
}
