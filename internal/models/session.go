package models

import "time"

// EditSession is the public view of an editing session.
type EditSession struct {
	ID              string         `json:"id"`
	ProjectID       string         `json:"projectId,omitempty"`
	Canvas          CanvasSettings `json:"canvasSettings"`
	LayerCount      int            `json:"layerCount"`
	SelectedLayerID string         `json:"selectedLayerId,omitempty"`
	History         HistoryState   `json:"history"`
	CreatedAt       time.Time      `json:"createdAt"`
	LastAccessed    time.Time      `json:"lastAccessed"`
}

// HistoryEntrySummary is a history entry without its snapshot.
type HistoryEntrySummary struct {
	ID          string `json:"id"`
	Timestamp   int64  `json:"timestamp"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// HistoryState describes the undo log of a session.
type HistoryState struct {
	Entries      []HistoryEntrySummary `json:"entries"`
	CurrentIndex int                   `json:"currentIndex"`
	CanUndo      bool                  `json:"canUndo"`
	CanRedo      bool                  `json:"canRedo"`
}
