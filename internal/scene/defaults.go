package scene

import "github.com/logo-studio/backend/internal/models"

// DuplicateOffset is how far a duplicated or pasted layer is moved from
// its source so both stay visible.
const DuplicateOffset = 20.0

const (
	defaultShapeSize = 120.0
	defaultIconSize  = 64.0
	defaultInk       = "#1f2937"
	defaultAccent    = "#3b82f6"
)

var defaultNames = map[models.LayerType]string{
	models.LayerTypeText:       "Text",
	models.LayerTypeShape:      "Shape",
	models.LayerTypeIcon:       "Icon",
	models.LayerTypeBackground: "Background",
}

// NewLayer builds a layer of type t with neutral effects and placed at the
// center of canvas. Content is laid out from the layer origin, so boxed
// content is offset by half its size while text is anchored on its middle.
func NewLayer(t models.LayerType, canvas models.CanvasSettings) (models.Layer, bool) {
	if !t.Valid() {
		return models.Layer{}, false
	}

	l := models.Layer{
		Name:      defaultNames[t],
		Type:      t,
		Visible:   true,
		Opacity:   1,
		BlendMode: models.BlendNormal,
		Transform: models.IdentityTransform(),
		Effects:   models.NeutralEffects(),
		Animation: models.DefaultAnimation(),
	}
	cx, cy := canvas.Width/2, canvas.Height/2

	switch t {
	case models.LayerTypeText:
		l.Payload = &models.TextPayload{
			Content:       "Your Logo",
			Font:          models.DefaultFont(),
			Color:         models.SolidColor(defaultInk),
			TextAlign:     "center",
			VerticalAlign: "middle",
		}
		l.Transform.Position = models.Position{X: cx, Y: cy}
	case models.LayerTypeShape:
		l.Payload = &models.ShapePayload{
			ShapeType: models.ShapeRectangle,
			Width:     defaultShapeSize,
			Height:    defaultShapeSize,
			Fill:      models.SolidColor(defaultAccent),
			Sides:     6,
		}
		l.Transform.Position = models.Position{X: cx - defaultShapeSize/2, Y: cy - defaultShapeSize/2}
	case models.LayerTypeIcon:
		l.Payload = &models.IconPayload{
			IconName: "star",
			Size:     defaultIconSize,
			Color:    models.SolidColor(defaultAccent),
		}
		l.Transform.Position = models.Position{X: cx - defaultIconSize/2, Y: cy - defaultIconSize/2}
	case models.LayerTypeBackground:
		bg := canvas.BackgroundColor
		if bg == "" {
			bg = "#ffffff"
		}
		l.Payload = &models.BackgroundPayload{Fill: models.SolidColor(bg)}
	}
	return l, true
}
