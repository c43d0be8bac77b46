package history

import (
	"fmt"
	"testing"

	"github.com/logo-studio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneWithWidth(w float64) models.Scene {
	return models.Scene{
		Canvas: models.CanvasSettings{Width: w, Height: 100},
		Layers: []models.Layer{},
	}
}

func actions(l *Log) []string {
	var out []string
	for _, e := range l.Entries() {
		out = append(out, e.Action)
	}
	return out
}

func TestNew_SeedsInitialEntry(t *testing.T) {
	l := New(sceneWithWidth(1), 10)

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, l.CurrentIndex())
	assert.Equal(t, InitialAction, l.Current().Action)
	assert.False(t, l.CanUndo())
	assert.False(t, l.CanRedo())
}

func TestNew_DefaultMaxSize(t *testing.T) {
	assert.Equal(t, DefaultMaxSize, New(sceneWithWidth(1), 0).MaxSize())
	assert.Equal(t, DefaultMaxSize, New(sceneWithWidth(1), -4).MaxSize())
}

func TestPush_EvictsOldestFirst(t *testing.T) {
	l := New(sceneWithWidth(0), 2)
	l.Push(sceneWithWidth(1), "A", "")
	l.Push(sceneWithWidth(2), "B", "")
	l.Push(sceneWithWidth(3), "C", "")

	assert.Equal(t, []string{"B", "C"}, actions(l))
	assert.Equal(t, 1, l.CurrentIndex())
}

func TestPush_Bound(t *testing.T) {
	const maxSize = 5
	l := New(sceneWithWidth(0), maxSize)
	for i := 1; i <= maxSize+3; i++ {
		l.Push(sceneWithWidth(float64(i)), fmt.Sprintf("p%d", i), "")
	}

	require.Equal(t, maxSize, l.Len())
	// the initial entry and p1..p3 are gone
	assert.Equal(t, []string{"p4", "p5", "p6", "p7", "p8"}, actions(l))
	assert.Equal(t, maxSize-1, l.CurrentIndex())
}

func TestPush_DiscardsBranch(t *testing.T) {
	l := New(sceneWithWidth(0), 10)
	l.Push(sceneWithWidth(1), "A", "")
	l.Push(sceneWithWidth(2), "B", "")
	before := l.Len()

	_, ok := l.Undo()
	require.True(t, ok)
	l.Push(sceneWithWidth(3), "C", "")

	assert.Equal(t, before, l.Len())
	assert.Equal(t, []string{InitialAction, "A", "C"}, actions(l))
	assert.False(t, l.CanRedo())
}

func TestUndoRedo(t *testing.T) {
	l := New(sceneWithWidth(0), 10)
	l.Push(sceneWithWidth(1), "A", "")
	l.Push(sceneWithWidth(2), "B", "")

	e, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, "A", e.Action)
	assert.Equal(t, 1.0, e.Scene.Canvas.Width)
	assert.True(t, l.CanRedo())

	e, ok = l.Redo()
	require.True(t, ok)
	assert.Equal(t, "B", e.Action)

	_, ok = l.Redo()
	assert.False(t, ok)
	assert.Equal(t, 2, l.CurrentIndex())

	l.Undo()
	l.Undo()
	_, ok = l.Undo()
	assert.False(t, ok)
	assert.Equal(t, 0, l.CurrentIndex())
}

func TestJumpTo(t *testing.T) {
	l := New(sceneWithWidth(0), 10)
	l.Push(sceneWithWidth(1), "A", "")
	l.Push(sceneWithWidth(2), "B", "")

	tests := []struct {
		index     int
		wantOK    bool
		wantIndex int
	}{
		{0, true, 0},
		{2, true, 2},
		{3, false, 2},
		{-1, false, 2},
		{1, true, 1},
	}
	for _, tt := range tests {
		_, ok := l.JumpTo(tt.index)
		assert.Equal(t, tt.wantOK, ok, "jump to %d", tt.index)
		assert.Equal(t, tt.wantIndex, l.CurrentIndex(), "jump to %d", tt.index)
	}
}

func TestEntriesAreIndependentCopies(t *testing.T) {
	s := models.Scene{
		Canvas: models.DefaultCanvas(),
		Layers: []models.Layer{{
			ID:      "a",
			Type:    models.LayerTypeText,
			Payload: &models.TextPayload{Content: "before"},
		}},
	}
	l := New(models.Scene{Canvas: models.DefaultCanvas()}, 10)
	l.Push(s, "edit", "")

	// mutating the caller's scene does not reach the log
	s.Layers[0].Text().Content = "after"
	assert.Equal(t, "before", l.Current().Scene.Layers[0].Text().Content)

	// nor does mutating a returned entry
	e := l.Current()
	e.Scene.Layers[0].Text().Content = "changed"
	assert.Equal(t, "before", l.Current().Scene.Layers[0].Text().Content)
}

func TestState(t *testing.T) {
	l := New(sceneWithWidth(0), 10)
	pushed := l.Push(sceneWithWidth(1), "add_layer", "Added text layer")
	l.Undo()

	st := l.State()
	require.Len(t, st.Entries, 2)
	assert.Equal(t, pushed.ID, st.Entries[1].ID)
	assert.Equal(t, "Added text layer", st.Entries[1].Description)
	assert.Equal(t, 0, st.CurrentIndex)
	assert.False(t, st.CanUndo)
	assert.True(t, st.CanRedo)
}

func TestClear(t *testing.T) {
	l := New(sceneWithWidth(0), 10)
	l.Push(sceneWithWidth(1), "A", "")
	l.Clear(sceneWithWidth(9))

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 9.0, l.Current().Scene.Canvas.Width)
}
