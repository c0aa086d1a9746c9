package service

import (
	"strings"
	"testing"

	"sticker-viewer/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject(t *testing.T) *scene.Project {
	t.Helper()
	p, err := scene.Normalize([]byte(`{"name":"demo","elements":[
		{"type":"rectangle","width":10,"height":10},
		{"type":"group","elements":[{"type":"circle","radius":2}]}
	]}`))
	require.NoError(t, err)
	return p
}

func TestLoadAndRender(t *testing.T) {
	s := newSession()
	svg := s.LoadAndRender(testProject(t))
	assert.Contains(t, svg, "<rect")
	assert.Contains(t, svg, "<circle")
	assert.Equal(t, 3, s.ElementCount())
}

func TestRenderReflectsView(t *testing.T) {
	s := newSession()
	s.LoadAndRender(testProject(t))

	s.UpdateView(func(v *scene.ViewTransform) {
		v.Pan(12, 34)
		v.ZoomIn()
	})

	svg := s.Render()
	assert.Contains(t, svg, `transform="translate(12 34) scale(1.1) rotate(0) scale(1 1)"`)
}

func TestUpdateViewSnapshot(t *testing.T) {
	s := newSession()
	state := s.UpdateView((*scene.ViewTransform).RotateRight)
	assert.Equal(t, 15.0, state.RotateDeg)

	// The snapshot is a copy; mutating it leaves the session alone.
	state.RotateDeg = 999
	assert.Equal(t, 15.0, s.ViewState().RotateDeg)
}

func TestClearKeepsLockFlag(t *testing.T) {
	s := newSession()
	s.LoadAndRender(testProject(t))
	s.UpdateView(func(v *scene.ViewTransform) {
		v.ZoomIn()
		v.ToggleLock()
	})

	s.Clear()
	assert.Equal(t, 0, s.ElementCount())
	state := s.ViewState()
	assert.Equal(t, 1.0, state.Zoom)
	assert.True(t, state.Locked)
}

func TestEachRenderRegeneratesPaints(t *testing.T) {
	s := newSession()
	p, err := scene.Normalize([]byte(`{"elements":[
		{"type":"rectangle","width":5,"height":5,"fillGradient":{"stops":[{"offset":0,"color":"#000"}]}}
	]}`))
	require.NoError(t, err)

	first := s.LoadAndRender(p)
	second := s.Render()

	assert.NotEqual(t, gradientID(t, first), gradientID(t, second))
}

func gradientID(t *testing.T, svg string) string {
	t.Helper()
	start := strings.Index(svg, `url(#`)
	require.GreaterOrEqual(t, start, 0)
	rest := svg[start+5:]
	end := strings.Index(rest, ")")
	require.GreaterOrEqual(t, end, 0)
	return rest[:end]
}

func TestManagerIssueAndGet(t *testing.T) {
	m := NewSessionManager()

	token := m.Issue()
	require.NotEmpty(t, token)
	s := m.GetOrCreate(token)
	assert.Same(t, s, m.GetOrCreate(token))

	// Unknown tokens materialize a session instead of failing.
	other := m.GetOrCreate("fresh")
	assert.NotSame(t, s, other)
}

func TestManagerDefaultSession(t *testing.T) {
	m := NewSessionManager()
	assert.Same(t, m.GetOrCreate(""), m.GetOrCreate(""))
	assert.Same(t, m.GetOrCreate(""), m.GetOrCreate("default"))
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewSessionManager()
	a := m.GetOrCreate("a")
	b := m.GetOrCreate("b")

	a.UpdateView((*scene.ViewTransform).ZoomIn)
	assert.Equal(t, 1.0, b.ViewState().Zoom)
}
