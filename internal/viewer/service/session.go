package service

import (
	"sync"

	"sticker-viewer/internal/scene"

	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

// Session is one client's scene state: the loaded project plus its
// camera. Loading a project and rendering it happen under one lock,
// so a render never observes a partially swapped scene.
type Session struct {
	mu      sync.Mutex
	project *scene.Project
	view    *scene.ViewTransform
}

func newSession() *Session {
	return &Session{
		project: &scene.Project{Camera: scene.Camera{Zoom: 1}},
		view:    scene.NewViewTransform(),
	}
}

// LoadAndRender swaps the project and renders the new scene in one
// uninterrupted step.
func (s *Session) LoadAndRender(p *scene.Project) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = p
	return scene.NewRenderer().RenderDocument(s.project, s.view)
}

// Render re-renders the current scene. Every pass uses a fresh
// renderer, regenerating all gradient paints.
func (s *Session) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scene.NewRenderer().RenderDocument(s.project, s.view)
}

// UpdateView applies one camera command and returns the resulting
// state snapshot.
func (s *Session) UpdateView(apply func(*scene.ViewTransform)) scene.ViewTransform {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(s.view)
	return *s.view
}

// ViewState returns the current camera snapshot.
func (s *Session) ViewState() scene.ViewTransform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.view
}

// Clear resets the scene and the camera (the lock flag survives).
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = &scene.Project{Camera: scene.Camera{Zoom: 1}}
	s.view.Clear()
}

// ElementCount reports the size of the loaded scene for status lines.
func (s *Session) ElementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scene.CountElements(s.project.Elements)
}

// SessionManager hands out per-client sessions by token. The empty
// token maps to a shared default session so the service works without
// an explicit session handshake.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

func (m *SessionManager) Issue() string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = newSession()
	m.mu.Unlock()
	return token
}

func (m *SessionManager) GetOrCreate(token string) *Session {
	if token == "" {
		token = "default"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		s = newSession()
		m.sessions[token] = s
	}
	return s
}
