package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/multiwin/internal/window"
)

type testApp struct {
	name string
}

type testWindow struct {
	kind  string
	label string
}

func (w testWindow) Content(app *testApp, h window.Handle) string {
	return app.name + ":" + w.kind + ":" + w.label
}

func (w testWindow) Title(app *testApp, h window.Handle) string {
	return w.kind
}

func (w testWindow) Theme(app *testApp, h window.Handle) string {
	return "theme-" + w.kind
}

func (w testWindow) Settings() window.Settings {
	s := window.DefaultSettings()
	s.Size = window.Size{Width: len(w.kind) * 100, Height: 100}
	return s
}

type kindStrategy struct{}

func (kindStrategy) SameKind(a, b testWindow) bool { return a.kind == b.kind }
func (kindStrategy) Clone(w testWindow) testWindow  { return w }

type counter struct {
	next window.Handle
}

func (c *counter) NextHandle() window.Handle {
	c.next++
	return c.next
}

type testManager = Manager[*testApp, string, string, testWindow]

func newTestManager() *testManager {
	return New[*testApp, string, string](Config[testWindow]{
		Strategy: kindStrategy{},
		Handles:  &counter{},
	})
}

func TestSpawn_RegistersAndReturnsOpenRequest(t *testing.T) {
	m := newTestManager()
	w := testWindow{kind: "log", label: "a"}

	h, req := m.Spawn(w)

	assert.Equal(t, window.Handle(1), h)
	assert.Equal(t, window.OpOpen, req.Op)
	assert.Equal(t, h, req.Handle)
	assert.Equal(t, w.Settings(), req.Settings)
	assert.True(t, m.Contains(h))
	assert.False(t, m.IsEmpty())
	assert.Equal(t, 1, m.Len())
}

func TestSpawnThenClosed_RestoresEmptiness(t *testing.T) {
	m := newTestManager()
	before := m.IsEmpty()

	h, _ := m.Spawn(testWindow{kind: "log"})
	m.Closed(h)

	assert.Equal(t, before, m.IsEmpty())

	m2 := NewWithMain[*testApp, string, string](Config[testWindow]{
		Strategy: kindStrategy{},
		Handles:  &counter{},
	}, testWindow{kind: "settings"})
	before = m2.IsEmpty()
	h, _ = m2.Spawn(testWindow{kind: "log"})
	m2.Closed(h)
	assert.Equal(t, before, m2.IsEmpty())
}

func TestAnyOf_TracksLifetime(t *testing.T) {
	m := newTestManager()
	probe := testWindow{kind: "log"}
	assert.False(t, m.AnyOf(probe))

	h, _ := m.Spawn(testWindow{kind: "log", label: "configured"})
	assert.True(t, m.AnyOf(probe), "kind match must ignore content")

	m.Closed(h)
	assert.False(t, m.AnyOf(probe))
}

func TestInstancesOf_CountsMatchingHandles(t *testing.T) {
	m := newTestManager()
	h1, _ := m.Spawn(testWindow{kind: "log", label: "one"})
	_, _ = m.Spawn(testWindow{kind: "settings"})
	h3, _ := m.Spawn(testWindow{kind: "log", label: "three"})

	got := m.InstancesOf(testWindow{kind: "log"})
	require.Len(t, got, 2)
	assert.Equal(t, h1, got[0].Handle)
	assert.Equal(t, "one", got[0].Window.label)
	assert.Equal(t, h3, got[1].Handle)

	h4, _ := m.Spawn(testWindow{kind: "log"})
	got = m.InstancesOf(testWindow{kind: "log"})
	assert.Len(t, got, 3)
	assert.Equal(t, h4, got[2].Handle)

	m.Closed(h1)
	got = m.InstancesOf(testWindow{kind: "log"})
	assert.Len(t, got, 2)
	for _, inst := range got {
		assert.NotEqual(t, h1, inst.Handle)
	}

	assert.Empty(t, m.InstancesOf(testWindow{kind: "about"}))
}

func TestClosed_IsIdempotent(t *testing.T) {
	m := newTestManager()
	h, _ := m.Spawn(testWindow{kind: "log"})
	other, _ := m.Spawn(testWindow{kind: "settings"})

	m.Closed(h)
	assert.NotPanics(t, func() { m.Closed(h) })
	assert.NotPanics(t, func() { m.Closed(999) })

	assert.Equal(t, []window.Handle{other}, m.Handles())
}

func TestQueries_PanicOnUnknownHandle(t *testing.T) {
	m := newTestManager()
	app := &testApp{name: "app"}
	h, _ := m.Spawn(testWindow{kind: "log"})
	m.Closed(h)

	for name, query := range map[string]func(){
		"content":  func() { m.Content(app, h) },
		"title":    func() { m.Title(app, h) },
		"theme":    func() { m.Theme(app, h) },
		"settings": func() { m.Settings(h) },
		"never":    func() { m.Title(app, 42) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic")
				err, ok := r.(*UnknownHandleError)
				require.True(t, ok, "panic value %T", r)
				assert.Contains(t, err.Error(), "programmer error")
			}()
			query()
		})
	}
}

func TestQueries_DelegateToInstance(t *testing.T) {
	m := newTestManager()
	app := &testApp{name: "app"}
	h, _ := m.Spawn(testWindow{kind: "log", label: "x"})

	assert.Equal(t, "app:log:x", m.Content(app, h))
	assert.Equal(t, "log", m.Title(app, h))
	assert.Equal(t, "theme-log", m.Theme(app, h))
	assert.Equal(t, 300, m.Settings(h).Size.Width)
}

func TestCloseAll_BatchesWithoutRemoving(t *testing.T) {
	m := NewWithMain[*testApp, string, string](Config[testWindow]{
		Strategy: kindStrategy{},
		Handles:  &counter{},
	}, testWindow{kind: "settings"})
	h1, _ := m.Spawn(testWindow{kind: "log"})
	h2, _ := m.Spawn(testWindow{kind: "log"})

	req := m.CloseAll()

	assert.Equal(t, window.OpBatch, req.Op)
	assert.Equal(t, []window.Handle{window.MainHandle, h1, h2}, req.Handles())
	for _, leaf := range req.Flatten() {
		assert.Equal(t, window.OpClose, leaf.Op)
	}
	assert.Equal(t, 3, m.Len(), "entries are removed only on Closed")
}

func TestCloseAll_EmptyIsNone(t *testing.T) {
	m := newTestManager()
	assert.True(t, m.CloseAll().IsNone())
}

func TestClose_SingleWindow(t *testing.T) {
	m := newTestManager()
	h, _ := m.Spawn(testWindow{kind: "log"})

	assert.Equal(t, window.Close(h), m.Close(h))
	assert.True(t, m.Contains(h))
	assert.True(t, m.Close(77).IsNone())
}

func TestLookup_DistinguishesMissing(t *testing.T) {
	m := newTestManager()
	h, _ := m.Spawn(testWindow{kind: "log", label: "x"})

	w, ok := m.Lookup(h)
	assert.True(t, ok)
	assert.Equal(t, "x", w.label)

	_, ok = m.Lookup(h + 1)
	assert.False(t, ok)
}

func TestScenario_MainSettingsAndSpawnedLog(t *testing.T) {
	m := NewWithMain[*testApp, string, string](Config[testWindow]{
		Strategy: kindStrategy{},
		Handles:  &counter{},
	}, testWindow{kind: "Settings"})
	settings := testWindow{kind: "Settings"}
	logKind := testWindow{kind: "Log"}

	h2, _ := m.Spawn(testWindow{kind: "Log"})
	assert.True(t, m.AnyOf(settings))
	assert.True(t, m.AnyOf(logKind))
	assert.False(t, m.IsEmpty())

	m.Closed(window.MainHandle)
	assert.False(t, m.AnyOf(settings))

	m.Closed(h2)
	assert.True(t, m.IsEmpty())
}

type reissuingSource struct{}

func (reissuingSource) NextHandle() window.Handle { return 5 }

func TestSpawn_PanicsWhenHandleReissued(t *testing.T) {
	m := New[*testApp, string, string](Config[testWindow]{
		Strategy: kindStrategy{},
		Handles:  reissuingSource{},
	})
	m.Spawn(testWindow{kind: "log"})
	assert.Panics(t, func() { m.Spawn(testWindow{kind: "log"}) })
}

func TestNew_RequiresCollaborators(t *testing.T) {
	assert.Panics(t, func() {
		New[*testApp, string, string](Config[testWindow]{Handles: &counter{}})
	})
	assert.Panics(t, func() {
		New[*testApp, string, string](Config[testWindow]{Strategy: kindStrategy{}})
	})
}

type mutableWindow struct {
	label string
}

func (w *mutableWindow) Content(app *testApp, h window.Handle) string { return w.label }
func (w *mutableWindow) Title(app *testApp, h window.Handle) string   { return w.label }
func (w *mutableWindow) Theme(app *testApp, h window.Handle) string   { return "" }
func (w *mutableWindow) Settings() window.Settings                    { return window.DefaultSettings() }

type copyStrategy struct{}

func (copyStrategy) SameKind(a, b *mutableWindow) bool { return true }
func (copyStrategy) Clone(w *mutableWindow) *mutableWindow {
	c := *w
	return &c
}

func TestSpawn_StoresACopy(t *testing.T) {
	app := &testApp{name: "app"}
	main := &mutableWindow{label: "main"}
	m := NewWithMain[*testApp, string, string](Config[*mutableWindow]{
		Strategy: copyStrategy{},
		Handles:  &counter{},
	}, main)

	w := &mutableWindow{label: "log"}
	h, _ := m.Spawn(w)

	// The caller's values are not the registered instances.
	w.label = "changed"
	main.label = "changed"
	assert.Equal(t, "log", m.Content(app, h))
	assert.Equal(t, "main", m.Title(app, window.MainHandle))

	got, ok := m.Lookup(h)
	require.True(t, ok)
	got.label = "changed again"
	assert.Equal(t, "log", m.Content(app, h))
}
