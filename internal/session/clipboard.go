package session

import (
	"sync"

	"github.com/logo-studio/backend/internal/models"
)

// ClipboardPort holds the layer last copied by the editor. It is shared by
// every session so layers can be pasted across logos.
type ClipboardPort interface {
	Write(l models.Layer)
	Read() (models.Layer, bool)
}

// MemoryClipboard is a single-slot in-memory ClipboardPort.
type MemoryClipboard struct {
	mu    sync.Mutex
	layer models.Layer
	full  bool
}

// NewMemoryClipboard creates an empty clipboard.
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

// Write replaces the clipboard content with a copy of l.
func (c *MemoryClipboard) Write(l models.Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layer = l.Clone()
	c.full = true
}

// Read returns a copy of the clipboard content.
func (c *MemoryClipboard) Read() (models.Layer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.full {
		return models.Layer{}, false
	}
	return c.layer.Clone(), true
}
