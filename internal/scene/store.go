// Package scene holds the live, mutable scene of an editing session.
//
// Store operations never fail: an unknown layer id is silently ignored. The
// boolean results let callers that care find out whether anything changed.
// A Store is not safe for concurrent use; the owning session serializes
// access.
package scene

import (
	"github.com/google/uuid"
	"github.com/logo-studio/backend/internal/models"
)

// Store is the scene graph of one editing session plus its selection.
type Store struct {
	scene    models.Scene
	selected string
	newID    func() string
}

// NewStore creates an empty store for the given canvas.
func NewStore(canvas models.CanvasSettings) *Store {
	return &Store{
		scene: models.Scene{Canvas: canvas, Layers: []models.Layer{}},
		newID: uuid.NewString,
	}
}

// Canvas returns the canvas settings.
func (s *Store) Canvas() models.CanvasSettings {
	return s.scene.Canvas
}

// SetCanvas replaces the canvas settings. Layers are not moved.
func (s *Store) SetCanvas(c models.CanvasSettings) {
	s.scene.Canvas = c
}

// Len returns the number of layers.
func (s *Store) Len() int {
	return len(s.scene.Layers)
}

// Layer returns a copy of the layer with the given id.
func (s *Store) Layer(id string) (models.Layer, bool) {
	i := s.scene.IndexOf(id)
	if i < 0 {
		return models.Layer{}, false
	}
	return s.scene.Layers[i].Clone(), true
}

// Layers returns copies of all layers in array order.
func (s *Store) Layers() []models.Layer {
	return s.Snapshot().Layers
}

// SelectedID returns the id of the selected layer, or "".
func (s *Store) SelectedID() string {
	return s.selected
}

// Select marks a layer as selected. An empty id clears the selection; an
// unknown id is ignored.
func (s *Store) Select(id string) bool {
	if id == "" {
		s.selected = ""
		return true
	}
	if s.scene.IndexOf(id) < 0 {
		return false
	}
	s.selected = id
	return true
}

// Snapshot returns a deep copy of the scene.
func (s *Store) Snapshot() models.Scene {
	return s.scene.Clone()
}

// Restore replaces the scene with a deep copy of sc. The selection survives
// only if the selected layer still exists.
func (s *Store) Restore(sc models.Scene) {
	s.scene = sc.Clone()
	if s.selected != "" && s.scene.IndexOf(s.selected) < 0 {
		s.selected = ""
	}
}

// AddLayer appends a new layer of type t centered on the canvas and selects
// it. Unknown types add nothing.
func (s *Store) AddLayer(t models.LayerType) (models.Layer, bool) {
	l, ok := NewLayer(t, s.scene.Canvas)
	if !ok {
		return models.Layer{}, false
	}
	return s.insert(l), true
}

// UpdateLayer shallow-merges patch into the layer with the given id.
func (s *Store) UpdateLayer(id string, patch models.LayerPatch) bool {
	i := s.scene.IndexOf(id)
	if i < 0 {
		return false
	}
	patch.ApplyTo(&s.scene.Layers[i])
	return true
}

// DeleteLayer removes a layer. Remaining zIndex values are left as they are.
func (s *Store) DeleteLayer(id string) bool {
	i := s.scene.IndexOf(id)
	if i < 0 {
		return false
	}
	s.scene.Layers = append(s.scene.Layers[:i], s.scene.Layers[i+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	return true
}

// DuplicateLayer appends a copy of a layer with a fresh id, shifted by
// DuplicateOffset on both axes, and selects it.
func (s *Store) DuplicateLayer(id string) (models.Layer, bool) {
	i := s.scene.IndexOf(id)
	if i < 0 {
		return models.Layer{}, false
	}
	l := s.scene.Layers[i].Clone()
	l.Name += " Copy"
	return s.insert(offset(l)), true
}

// PasteLayer appends a copy of l, which may come from another scene, with a
// fresh id and shifted by DuplicateOffset, and selects it.
func (s *Store) PasteLayer(l models.Layer) (models.Layer, bool) {
	if !l.Type.Valid() || l.Payload == nil || l.Payload.LayerType() != l.Type {
		return models.Layer{}, false
	}
	return s.insert(offset(l.Clone())), true
}

// ReorderLayer moves a layer to newIndex in the array, clamped into range,
// and then renumbers every zIndex to its array position.
func (s *Store) ReorderLayer(id string, newIndex int) bool {
	i := s.scene.IndexOf(id)
	if i < 0 {
		return false
	}
	layers := s.scene.Layers
	l := layers[i]
	layers = append(layers[:i], layers[i+1:]...)

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(layers) {
		newIndex = len(layers)
	}
	layers = append(layers, models.Layer{})
	copy(layers[newIndex+1:], layers[newIndex:])
	layers[newIndex] = l

	for j := range layers {
		layers[j].ZIndex = j
	}
	s.scene.Layers = layers
	return true
}

// insert gives l a fresh id and the next zIndex, appends it and selects it.
func (s *Store) insert(l models.Layer) models.Layer {
	l.ID = s.newID()
	l.ZIndex = s.nextZIndex()
	s.scene.Layers = append(s.scene.Layers, l)
	s.selected = l.ID
	return l.Clone()
}

// nextZIndex is the layer count, or one above the highest zIndex when
// deletions have left it behind, so new layers always paint on top.
func (s *Store) nextZIndex() int {
	z := len(s.scene.Layers)
	for _, l := range s.scene.Layers {
		if l.ZIndex >= z {
			z = l.ZIndex + 1
		}
	}
	return z
}

func offset(l models.Layer) models.Layer {
	l.Transform.Position.X += DuplicateOffset
	l.Transform.Position.Y += DuplicateOffset
	return l
}
