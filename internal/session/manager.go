package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/logo-studio/backend/internal/history"
	"github.com/logo-studio/backend/internal/models"
	"github.com/logo-studio/backend/internal/render"
	"github.com/logo-studio/backend/internal/scene"
)

// DefaultMaxSessions limits concurrent sessions to bound memory use.
const DefaultMaxSessions = 50

// SessionKeepAliveWindow is how long a session stays protected from cleanup
// after it was last used.
const SessionKeepAliveWindow = 5 * time.Minute

// History action labels.
const (
	ActionAddLayer       = "add_layer"
	ActionUpdateLayer    = "update_layer"
	ActionDeleteLayer    = "delete_layer"
	ActionDuplicateLayer = "duplicate_layer"
	ActionReorderLayer   = "reorder_layer"
	ActionSetCanvas      = "set_canvas"
	ActionApplyPreset    = "apply_preset"
	ActionPasteLayer     = "paste_layer"
	ActionLoadProject    = "load_project"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrLayerNotFound   = errors.New("layer not found")
	ErrInvalidLayer    = errors.New("invalid layer type")
	ErrClipboardEmpty  = errors.New("clipboard is empty")
	ErrPresetMismatch  = errors.New("preset does not apply to this layer type")
)

// Preset is a named style that can be applied to layers.
type Preset interface {
	PresetName() string
	// Patch returns the update the preset makes to l, or false when the
	// preset does not apply to layers of l's type.
	Patch(l models.Layer) (models.LayerPatch, bool)
}

// Config tunes a Manager.
type Config struct {
	MaxSessions    int
	HistoryMaxSize int
	DefaultCanvas  models.CanvasSettings
}

// DefaultConfig returns the settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		MaxSessions:    DefaultMaxSessions,
		HistoryMaxSize: history.DefaultMaxSize,
		DefaultCanvas:  models.DefaultCanvas(),
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithCompiler renders previews with c instead of the default compiler.
func WithCompiler(c *render.Compiler) Option {
	return func(m *Manager) {
		m.compiler = c
	}
}

// WithClipboard shares clipboard c between the manager's sessions.
func WithClipboard(c ClipboardPort) Option {
	return func(m *Manager) {
		m.clipboard = c
	}
}

// Manager owns the active editing sessions. Each session has its own scene
// store and history log and is serialized by its own lock, so independent
// sessions never wait on each other.
type Manager struct {
	sessions  map[string]*SessionState
	mu        sync.RWMutex
	cfg       Config
	compiler  *render.Compiler
	clipboard ClipboardPort
}

// SessionState is one editing session.
type SessionState struct {
	mu           sync.Mutex
	ID           string
	ProjectID    string
	Store        *scene.Store
	History      *history.Log
	CreatedAt    time.Time
	LastAccessed time.Time

	// preview memo, keyed by the history entry it was rendered from
	renderedAt string
	rendered   string
}

// NewManager creates a session manager.
func NewManager(cfg Config, opts ...Option) *Manager {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.HistoryMaxSize <= 0 {
		cfg.HistoryMaxSize = history.DefaultMaxSize
	}
	if cfg.DefaultCanvas.Width <= 0 || cfg.DefaultCanvas.Height <= 0 {
		cfg.DefaultCanvas = models.DefaultCanvas()
	}
	m := &Manager{
		sessions: make(map[string]*SessionState),
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.compiler == nil {
		m.compiler = render.NewCompiler()
	}
	if m.clipboard == nil {
		m.clipboard = NewMemoryClipboard()
	}
	return m
}

// CreateSession starts an empty session. A nil canvas uses the configured
// default.
func (m *Manager) CreateSession(canvas *models.CanvasSettings) (*models.EditSession, error) {
	c := m.cfg.DefaultCanvas
	if canvas != nil {
		c = *canvas
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %gx%g", c.Width, c.Height)
	}
	state := m.newState(models.Scene{Canvas: c, Layers: []models.Layer{}})
	return m.register(state), nil
}

// OpenDocument starts a session holding a saved project.
func (m *Manager) OpenDocument(projectID string, doc *models.ProjectDocument) (*models.EditSession, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil project document")
	}
	state := m.newState(doc.Scene())
	state.ProjectID = projectID
	return m.register(state), nil
}

func (m *Manager) newState(sc models.Scene) *SessionState {
	store := scene.NewStore(sc.Canvas)
	store.Restore(sc)
	now := time.Now()
	return &SessionState{
		ID:           uuid.New().String(),
		Store:        store,
		History:      history.New(sc, m.cfg.HistoryMaxSize),
		CreatedAt:    now,
		LastAccessed: now,
	}
}

func (m *Manager) register(state *SessionState) *models.EditSession {
	view := state.view()
	m.evictIfNeeded()

	m.mu.Lock()
	m.sessions[state.ID] = state
	m.mu.Unlock()

	fmt.Printf("[Session %s] Created (%gx%g, %d layers)\n",
		shortID(state.ID), view.Canvas.Width, view.Canvas.Height, view.LayerCount)
	return view
}

// evictIfNeeded drops the least recently used sessions when at capacity.
func (m *Manager) evictIfNeeded() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) < m.cfg.MaxSessions {
		return
	}

	type aged struct {
		id   string
		last time.Time
	}
	all := make([]aged, 0, len(m.sessions))
	for id, state := range m.sessions {
		state.mu.Lock()
		all = append(all, aged{id, state.LastAccessed})
		state.mu.Unlock()
	}
	sort.Slice(all, func(i, j int) bool { return all[i].last.Before(all[j].last) })

	toFree := len(m.sessions) - m.cfg.MaxSessions + 1
	for _, a := range all[:toFree] {
		delete(m.sessions, a.id)
		fmt.Printf("[Manager] Evicted session %s to stay under %d sessions\n", shortID(a.id), m.cfg.MaxSessions)
	}
}

// CleanupOldSessions removes sessions idle for longer than maxAge. Sessions
// used within SessionKeepAliveWindow are always kept.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) int {
	if maxAge < SessionKeepAliveWindow {
		maxAge = SessionKeepAliveWindow
	}
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, state := range m.sessions {
		state.mu.Lock()
		last := state.LastAccessed
		state.mu.Unlock()

		if last.Before(cutoff) {
			delete(m.sessions, id)
			removed++
			fmt.Printf("[Manager] Cleaned up idle session %s (last accessed: %s ago)\n",
				shortID(id), time.Since(last).Round(time.Second))
		}
	}
	return removed
}

// SessionCount returns the number of active sessions.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// GetSession returns the public view of a session.
func (m *Manager) GetSession(id string) (*models.EditSession, bool) {
	var out *models.EditSession
	err := m.withSession(id, false, func(st *SessionState) error {
		out = st.view()
		return nil
	})
	return out, err == nil
}

// TouchSession marks a session as in use.
func (m *Manager) TouchSession(id string) bool {
	return m.withSession(id, true, func(*SessionState) error { return nil }) == nil
}

// DeleteSession ends a session.
func (m *Manager) DeleteSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	fmt.Printf("[Session %s] Closed\n", shortID(id))
	return true
}

// Scene returns a copy of a session's current scene.
func (m *Manager) Scene(id string) (models.Scene, error) {
	var out models.Scene
	err := m.withSession(id, true, func(st *SessionState) error {
		out = st.Store.Snapshot()
		return nil
	})
	return out, err
}

// Layers returns copies of a session's layers in array order.
func (m *Manager) Layers(id string) ([]models.Layer, error) {
	var out []models.Layer
	err := m.withSession(id, true, func(st *SessionState) error {
		out = st.Store.Layers()
		return nil
	})
	return out, err
}

// Layer returns a copy of one layer.
func (m *Manager) Layer(id, layerID string) (models.Layer, error) {
	var out models.Layer
	err := m.withSession(id, true, func(st *SessionState) error {
		l, ok := st.Store.Layer(layerID)
		if !ok {
			return ErrLayerNotFound
		}
		out = l
		return nil
	})
	return out, err
}

// SelectLayer changes the selection. An empty layerID clears it.
func (m *Manager) SelectLayer(id, layerID string) error {
	return m.withSession(id, true, func(st *SessionState) error {
		if !st.Store.Select(layerID) {
			return ErrLayerNotFound
		}
		return nil
	})
}

// AddLayer adds a layer of type t and records it in history.
func (m *Manager) AddLayer(id string, t models.LayerType) (models.Layer, error) {
	var out models.Layer
	err := m.withSession(id, true, func(st *SessionState) error {
		l, ok := st.Store.AddLayer(t)
		if !ok {
			return ErrInvalidLayer
		}
		out = l
		st.commit(ActionAddLayer, fmt.Sprintf("Added %s layer", t))
		return nil
	})
	return out, err
}

// UpdateLayer merges patch into a layer and records it in history.
func (m *Manager) UpdateLayer(id, layerID string, patch models.LayerPatch) (models.Layer, error) {
	var out models.Layer
	err := m.withSession(id, true, func(st *SessionState) error {
		if !st.Store.UpdateLayer(layerID, patch) {
			return ErrLayerNotFound
		}
		out, _ = st.Store.Layer(layerID)
		st.commit(ActionUpdateLayer, fmt.Sprintf("Updated %s", out.Name))
		return nil
	})
	return out, err
}

// DeleteLayer removes a layer and records it in history.
func (m *Manager) DeleteLayer(id, layerID string) error {
	return m.withSession(id, true, func(st *SessionState) error {
		l, ok := st.Store.Layer(layerID)
		if !ok {
			return ErrLayerNotFound
		}
		st.Store.DeleteLayer(layerID)
		st.commit(ActionDeleteLayer, fmt.Sprintf("Deleted %s", l.Name))
		return nil
	})
}

// DuplicateLayer copies a layer and records it in history.
func (m *Manager) DuplicateLayer(id, layerID string) (models.Layer, error) {
	var out models.Layer
	err := m.withSession(id, true, func(st *SessionState) error {
		l, ok := st.Store.DuplicateLayer(layerID)
		if !ok {
			return ErrLayerNotFound
		}
		out = l
		st.commit(ActionDuplicateLayer, fmt.Sprintf("Duplicated %s", l.Name))
		return nil
	})
	return out, err
}

// ReorderLayer moves a layer and records it in history.
func (m *Manager) ReorderLayer(id, layerID string, index int) ([]models.Layer, error) {
	var out []models.Layer
	err := m.withSession(id, true, func(st *SessionState) error {
		l, ok := st.Store.Layer(layerID)
		if !ok {
			return ErrLayerNotFound
		}
		st.Store.ReorderLayer(layerID, index)
		out = st.Store.Layers()
		st.commit(ActionReorderLayer, fmt.Sprintf("Moved %s", l.Name))
		return nil
	})
	return out, err
}

// SetCanvas replaces the canvas settings and records it in history.
func (m *Manager) SetCanvas(id string, canvas models.CanvasSettings) (*models.EditSession, error) {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %gx%g", canvas.Width, canvas.Height)
	}
	var out *models.EditSession
	err := m.withSession(id, true, func(st *SessionState) error {
		st.Store.SetCanvas(canvas)
		st.commit(ActionSetCanvas, fmt.Sprintf("Canvas %gx%g", canvas.Width, canvas.Height))
		out = st.view()
		return nil
	})
	return out, err
}

// ApplyPreset applies a preset to a layer and records it in history.
func (m *Manager) ApplyPreset(id, layerID string, p Preset) (models.Layer, error) {
	var out models.Layer
	err := m.withSession(id, true, func(st *SessionState) error {
		l, ok := st.Store.Layer(layerID)
		if !ok {
			return ErrLayerNotFound
		}
		patch, ok := p.Patch(l)
		if !ok {
			return ErrPresetMismatch
		}
		st.Store.UpdateLayer(layerID, patch)
		out, _ = st.Store.Layer(layerID)
		st.commit(ActionApplyPreset, fmt.Sprintf("Applied %s to %s", p.PresetName(), l.Name))
		return nil
	})
	return out, err
}

// CopyLayer puts a copy of a layer on the shared clipboard.
func (m *Manager) CopyLayer(id, layerID string) error {
	return m.withSession(id, true, func(st *SessionState) error {
		l, ok := st.Store.Layer(layerID)
		if !ok {
			return ErrLayerNotFound
		}
		m.clipboard.Write(l)
		return nil
	})
}

// PasteLayer adds the clipboard layer to a session and records it in
// history.
func (m *Manager) PasteLayer(id string) (models.Layer, error) {
	var out models.Layer
	err := m.withSession(id, true, func(st *SessionState) error {
		src, ok := m.clipboard.Read()
		if !ok {
			return ErrClipboardEmpty
		}
		l, ok := st.Store.PasteLayer(src)
		if !ok {
			return ErrInvalidLayer
		}
		out = l
		st.commit(ActionPasteLayer, fmt.Sprintf("Pasted %s", l.Name))
		return nil
	})
	return out, err
}

// LoadDocument replaces a session's scene with a saved project. The load is
// an undoable step like any other edit.
func (m *Manager) LoadDocument(id, projectID string, doc *models.ProjectDocument) (*models.EditSession, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil project document")
	}
	var out *models.EditSession
	err := m.withSession(id, true, func(st *SessionState) error {
		st.Store.Restore(doc.Scene())
		st.ProjectID = projectID
		st.commit(ActionLoadProject, fmt.Sprintf("Loaded %s", doc.LogoSettings.Name))
		out = st.view()
		return nil
	})
	return out, err
}

// Document captures a session as a saveable project document.
func (m *Manager) Document(id, name string) (*models.ProjectDocument, error) {
	var out *models.ProjectDocument
	err := m.withSession(id, true, func(st *SessionState) error {
		out = models.NewProjectDocument(name, st.Store.Snapshot())
		return nil
	})
	return out, err
}

// SetProjectID links a session to the project it was saved as.
func (m *Manager) SetProjectID(id, projectID string) error {
	return m.withSession(id, true, func(st *SessionState) error {
		st.ProjectID = projectID
		return nil
	})
}

// History returns the undo log state of a session.
func (m *Manager) History(id string) (models.HistoryState, error) {
	var out models.HistoryState
	err := m.withSession(id, true, func(st *SessionState) error {
		out = st.History.State()
		return nil
	})
	return out, err
}

// Undo steps back one history entry. At the oldest entry it does nothing.
func (m *Manager) Undo(id string) (models.HistoryState, error) {
	return m.travel(id, (*history.Log).Undo)
}

// Redo steps forward one history entry. At the newest entry it does nothing.
func (m *Manager) Redo(id string) (models.HistoryState, error) {
	return m.travel(id, (*history.Log).Redo)
}

// JumpTo moves to a history entry by index. Out of range indexes do nothing.
func (m *Manager) JumpTo(id string, index int) (models.HistoryState, error) {
	return m.travel(id, func(l *history.Log) (history.Entry, bool) {
		return l.JumpTo(index)
	})
}

func (m *Manager) travel(id string, move func(*history.Log) (history.Entry, bool)) (models.HistoryState, error) {
	var out models.HistoryState
	err := m.withSession(id, true, func(st *SessionState) error {
		if e, ok := move(st.History); ok {
			st.Store.Restore(e.Scene)
		}
		out = st.History.State()
		return nil
	})
	return out, err
}

// Render compiles the current scene of a session to SVG. The markup is
// cached until the session's history moves.
func (m *Manager) Render(id string) (string, error) {
	var out string
	err := m.withSession(id, true, func(st *SessionState) error {
		key := st.History.CurrentID()
		if st.renderedAt != key {
			st.rendered = m.compiler.Compile(st.Store.Snapshot())
			st.renderedAt = key
		}
		out = st.rendered
		return nil
	})
	return out, err
}

// withSession runs fn under the session's lock.
func (m *Manager) withSession(id string, touch bool, fn func(*SessionState) error) error {
	m.mu.RLock()
	state, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if touch {
		state.LastAccessed = time.Now()
	}
	return fn(state)
}

// commit records the store's scene as a new history entry.
func (st *SessionState) commit(action, description string) {
	st.History.Push(st.Store.Snapshot(), action, description)
}

func (st *SessionState) view() *models.EditSession {
	return &models.EditSession{
		ID:              st.ID,
		ProjectID:       st.ProjectID,
		Canvas:          st.Store.Canvas(),
		LayerCount:      st.Store.Len(),
		SelectedLayerID: st.Store.SelectedID(),
		History:         st.History.State(),
		CreatedAt:       st.CreatedAt,
		LastAccessed:    st.LastAccessed,
	}
}

// shortID truncates an ID for logging.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
