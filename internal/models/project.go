package models

import "time"

// ProjectVersion is written into every saved document. Documents are not
// migrated; loading another shape is undefined.
const ProjectVersion = "1.0"

// LogoSettings are the document-level settings of a saved project.
type LogoSettings struct {
	Name            string  `json:"name"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	BackgroundColor string  `json:"backgroundColor"`
}

// ExportSettings are the last raster/vector export options used.
type ExportSettings struct {
	Format      string  `json:"format"` // svg, png, jpeg
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Quality     float64 `json:"quality"`
	Transparent bool    `json:"transparent"`
}

// ProjectDocument is the persisted project layout.
type ProjectDocument struct {
	LogoSettings   LogoSettings   `json:"logoSettings"`
	Layers         []Layer        `json:"layers"`
	ExportSettings ExportSettings `json:"exportSettings"`
	Timestamp      int64          `json:"timestamp"` // Unix ms
	Version        string         `json:"version"`
}

// ProjectInfo is the metadata of a stored project.
type ProjectInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	LayerCount int       `json:"layerCount"`
	Size       int64     `json:"size"`
	SavedAt    time.Time `json:"savedAt"`
}

// NewProjectDocument captures a scene as a saveable document.
func NewProjectDocument(name string, scene Scene) *ProjectDocument {
	s := scene.Clone()
	return &ProjectDocument{
		LogoSettings: LogoSettings{
			Name:            name,
			Width:           s.Canvas.Width,
			Height:          s.Canvas.Height,
			BackgroundColor: s.Canvas.BackgroundColor,
		},
		Layers: s.Layers,
		ExportSettings: ExportSettings{
			Format:  "svg",
			Width:   s.Canvas.Width,
			Height:  s.Canvas.Height,
			Quality: 1,
		},
		Timestamp: time.Now().UnixMilli(),
		Version:   ProjectVersion,
	}
}

// Scene returns the document's canvas and layers as an independent scene.
func (d *ProjectDocument) Scene() Scene {
	s := Scene{
		Canvas: CanvasSettings{
			Width:           d.LogoSettings.Width,
			Height:          d.LogoSettings.Height,
			BackgroundColor: d.LogoSettings.BackgroundColor,
		},
		Layers: d.Layers,
	}
	return s.Clone()
}
