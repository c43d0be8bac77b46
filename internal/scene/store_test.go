package scene

import (
	"testing"

	"github.com/logo-studio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(models.CanvasSettings{Width: 400, Height: 300, BackgroundColor: "#fafafa"})
}

func zIndexes(s *Store) []int {
	var out []int
	for _, l := range s.Layers() {
		out = append(out, l.ZIndex)
	}
	return out
}

func TestAddLayer_Defaults(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		typ     models.LayerType
		wantPos models.Position
	}{
		{models.LayerTypeText, models.Position{X: 200, Y: 150}},
		{models.LayerTypeShape, models.Position{X: 140, Y: 90}},
		{models.LayerTypeIcon, models.Position{X: 168, Y: 118}},
		{models.LayerTypeBackground, models.Position{}},
	}
	for i, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			l, ok := s.AddLayer(tt.typ)
			require.True(t, ok)

			assert.NotEmpty(t, l.ID)
			assert.Equal(t, tt.typ, l.Type)
			assert.Equal(t, tt.typ, l.Payload.LayerType())
			assert.Equal(t, i, l.ZIndex)
			assert.True(t, l.Visible)
			assert.Equal(t, 1.0, l.Opacity)
			assert.Equal(t, tt.wantPos, l.Transform.Position)
			assert.Equal(t, models.NeutralEffects(), l.Effects)
			assert.Equal(t, l.ID, s.SelectedID())
		})
	}

	assert.Equal(t, "#fafafa", s.Layers()[3].Background().Fill.Solid)
}

func TestAddLayer_UnknownType(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.AddLayer("sticker")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestAddLayer_ZIndexAfterDelete(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.AddLayer(models.LayerTypeShape)
	s.AddLayer(models.LayerTypeShape)
	s.AddLayer(models.LayerTypeShape)

	require.True(t, s.DeleteLayer(a.ID))
	assert.Equal(t, []int{1, 2}, zIndexes(s))

	l, _ := s.AddLayer(models.LayerTypeText)
	assert.Equal(t, 3, l.ZIndex)
	assert.Equal(t, []int{1, 2, 3}, zIndexes(s))
}

func TestUpdateLayer(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.AddLayer(models.LayerTypeText)

	name := "Title"
	content := "ACME"
	width := 10.0
	ok := s.UpdateLayer(l.ID, models.LayerPatch{Name: &name, Content: &content, Width: &width})
	require.True(t, ok)

	got, ok := s.Layer(l.ID)
	require.True(t, ok)
	assert.Equal(t, "Title", got.Name)
	assert.Equal(t, "ACME", got.Text().Content)
	assert.Equal(t, models.DefaultFont(), got.Text().Font)
	assert.Equal(t, models.LayerTypeText, got.Type)
}

func TestUpdateLayer_UnknownIDIsSilent(t *testing.T) {
	s := newTestStore(t)
	s.AddLayer(models.LayerTypeShape)
	before := s.Snapshot()

	name := "x"
	assert.False(t, s.UpdateLayer("missing", models.LayerPatch{Name: &name}))
	assert.False(t, s.DeleteLayer("missing"))
	assert.False(t, s.ReorderLayer("missing", 0))
	_, ok := s.DuplicateLayer("missing")
	assert.False(t, ok)

	assert.Equal(t, before, s.Snapshot())
}

func TestDeleteLayer_ClearsSelection(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.AddLayer(models.LayerTypeShape)
	b, _ := s.AddLayer(models.LayerTypeShape)

	require.True(t, s.Select(a.ID))
	require.True(t, s.DeleteLayer(b.ID))
	assert.Equal(t, a.ID, s.SelectedID())

	require.True(t, s.DeleteLayer(a.ID))
	assert.Empty(t, s.SelectedID())
}

func TestDuplicateLayer(t *testing.T) {
	s := newTestStore(t)
	src, _ := s.AddLayer(models.LayerTypeShape)
	s.AddLayer(models.LayerTypeText)

	dup, ok := s.DuplicateLayer(src.ID)
	require.True(t, ok)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "Shape Copy", dup.Name)
	assert.Equal(t, 2, dup.ZIndex)
	assert.Equal(t, src.Transform.Position.X+DuplicateOffset, dup.Transform.Position.X)
	assert.Equal(t, src.Transform.Position.Y+DuplicateOffset, dup.Transform.Position.Y)
	assert.Equal(t, dup.ID, s.SelectedID())

	// the copy is independent of its source
	w := 999.0
	s.UpdateLayer(dup.ID, models.LayerPatch{Width: &w})
	orig, _ := s.Layer(src.ID)
	assert.Equal(t, 120.0, orig.Shape().Width)
}

func TestReorderLayer_Renumbers(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.AddLayer(models.LayerTypeShape)
	b, _ := s.AddLayer(models.LayerTypeShape)
	c, _ := s.AddLayer(models.LayerTypeShape)

	require.True(t, s.ReorderLayer(c.ID, 0))

	layers := s.Layers()
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{layers[0].ID, layers[1].ID, layers[2].ID})
	assert.Equal(t, []int{0, 1, 2}, zIndexes(s))
}

func TestReorderLayer_DeleteMiddleThenReorder(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.AddLayer(models.LayerTypeShape)
	b, _ := s.AddLayer(models.LayerTypeShape)
	c, _ := s.AddLayer(models.LayerTypeShape)

	s.DeleteLayer(b.ID)
	assert.Equal(t, []int{0, 2}, zIndexes(s))

	require.True(t, s.ReorderLayer(a.ID, 0))
	require.True(t, s.ReorderLayer(c.ID, 1))
	assert.Equal(t, []int{0, 1}, zIndexes(s))
}

func TestReorderLayer_ClampsIndex(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.AddLayer(models.LayerTypeShape)
	b, _ := s.AddLayer(models.LayerTypeShape)

	require.True(t, s.ReorderLayer(a.ID, 50))
	assert.Equal(t, b.ID, s.Layers()[0].ID)
	assert.Equal(t, a.ID, s.Layers()[1].ID)

	require.True(t, s.ReorderLayer(a.ID, -3))
	assert.Equal(t, a.ID, s.Layers()[0].ID)
	assert.Equal(t, []int{0, 1}, zIndexes(s))
}

func TestSnapshotRestore(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.AddLayer(models.LayerTypeText)
	snap := s.Snapshot()

	content := "changed"
	s.UpdateLayer(l.ID, models.LayerPatch{Content: &content})
	assert.Equal(t, "Your Logo", snap.Layers[0].Text().Content)

	s.DeleteLayer(l.ID)
	s.Restore(snap)
	got, ok := s.Layer(l.ID)
	require.True(t, ok)
	assert.Equal(t, "Your Logo", got.Text().Content)

	// mutating the restored store leaves the snapshot alone
	s.UpdateLayer(l.ID, models.LayerPatch{Content: &content})
	assert.Equal(t, "Your Logo", snap.Layers[0].Text().Content)
}

func TestRestore_DropsStaleSelection(t *testing.T) {
	s := newTestStore(t)
	empty := s.Snapshot()
	s.AddLayer(models.LayerTypeShape)
	require.NotEmpty(t, s.SelectedID())

	s.Restore(empty)
	assert.Empty(t, s.SelectedID())
}

func TestPasteLayer(t *testing.T) {
	other := newTestStore(t)
	src, _ := other.AddLayer(models.LayerTypeIcon)

	s := newTestStore(t)
	s.AddLayer(models.LayerTypeBackground)
	pasted, ok := s.PasteLayer(src)
	require.True(t, ok)

	assert.NotEqual(t, src.ID, pasted.ID)
	assert.Equal(t, 1, pasted.ZIndex)
	assert.Equal(t, src.Transform.Position.X+DuplicateOffset, pasted.Transform.Position.X)
	assert.Equal(t, pasted.ID, s.SelectedID())

	_, ok = s.PasteLayer(models.Layer{Type: models.LayerTypeText})
	assert.False(t, ok)
}
