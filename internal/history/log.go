// Package history implements the bounded undo log of an editing session.
//
// The log is linear: pushing after an undo discards every entry past the
// current one. It always holds at least one entry and never more than its
// maximum size, evicting the oldest entries first. Undo, redo and jumps
// outside the log are no-ops. A Log is not safe for concurrent use.
package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/logo-studio/backend/internal/models"
)

// DefaultMaxSize is used when a log is created without a positive bound.
const DefaultMaxSize = 50

// InitialAction labels the entry every log is seeded with.
const InitialAction = "initial"

// Entry is one snapshot of the scene.
type Entry struct {
	ID          string
	Timestamp   int64 // Unix milliseconds
	Action      string
	Description string
	Scene       models.Scene
}

func (e Entry) clone() Entry {
	e.Scene = e.Scene.Clone()
	return e
}

// Summary describes the entry without its scene.
func (e Entry) Summary() models.HistoryEntrySummary {
	return models.HistoryEntrySummary{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		Action:      e.Action,
		Description: e.Description,
	}
}

// Log is a bounded, branch-discarding list of snapshots with a cursor.
type Log struct {
	entries []Entry
	current int
	maxSize int
	now     func() time.Time
}

// New creates a log seeded with an "Initial" entry holding initial.
func New(initial models.Scene, maxSize int) *Log {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	l := &Log{maxSize: maxSize, now: time.Now}
	l.Clear(initial)
	return l
}

// Clear drops every entry and reseeds the log with scene.
func (l *Log) Clear(scene models.Scene) {
	l.entries = []Entry{l.newEntry(scene, InitialAction, "Initial")}
	l.current = 0
}

// Push records scene as the newest entry. Entries after the cursor are
// discarded first, and the oldest entries are evicted beyond the bound.
func (l *Log) Push(scene models.Scene, action, description string) Entry {
	l.entries = l.entries[:l.current+1]
	e := l.newEntry(scene, action, description)
	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.maxSize; over > 0 {
		l.entries = append([]Entry(nil), l.entries[over:]...)
	}
	l.current = len(l.entries) - 1
	return e.clone()
}

// Undo moves the cursor back one entry and returns it.
func (l *Log) Undo() (Entry, bool) {
	if !l.CanUndo() {
		return Entry{}, false
	}
	l.current--
	return l.entries[l.current].clone(), true
}

// Redo moves the cursor forward one entry and returns it.
func (l *Log) Redo() (Entry, bool) {
	if !l.CanRedo() {
		return Entry{}, false
	}
	l.current++
	return l.entries[l.current].clone(), true
}

// JumpTo moves the cursor to index and returns that entry.
func (l *Log) JumpTo(index int) (Entry, bool) {
	if index < 0 || index >= len(l.entries) {
		return Entry{}, false
	}
	l.current = index
	return l.entries[index].clone(), true
}

func (l *Log) CanUndo() bool { return l.current > 0 }

func (l *Log) CanRedo() bool { return l.current < len(l.entries)-1 }

// CurrentIndex returns the cursor position.
func (l *Log) CurrentIndex() int { return l.current }

// Len returns the number of entries.
func (l *Log) Len() int { return len(l.entries) }

// MaxSize returns the bound on the number of entries.
func (l *Log) MaxSize() int { return l.maxSize }

// CurrentID returns the id of the entry under the cursor.
func (l *Log) CurrentID() string { return l.entries[l.current].ID }

// Current returns a copy of the entry under the cursor.
func (l *Log) Current() Entry {
	return l.entries[l.current].clone()
}

// Entries returns copies of every entry, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.clone()
	}
	return out
}

// State summarizes the log for clients.
func (l *Log) State() models.HistoryState {
	s := models.HistoryState{
		Entries:      make([]models.HistoryEntrySummary, len(l.entries)),
		CurrentIndex: l.current,
		CanUndo:      l.CanUndo(),
		CanRedo:      l.CanRedo(),
	}
	for i, e := range l.entries {
		s.Entries[i] = e.Summary()
	}
	return s
}

func (l *Log) newEntry(scene models.Scene, action, description string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Timestamp:   l.now().UnixMilli(),
		Action:      action,
		Description: description,
		Scene:       scene.Clone(),
	}
}
