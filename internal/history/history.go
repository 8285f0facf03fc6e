// Package history keeps the undo/redo stack of a topology.
//
// Snapshots are the JSON encoding of the graph's persisted elements. Derived
// fields are never part of a snapshot, so callers must re-run the metrics
// projection after Undo or Redo.
package history

import (
	"encoding/json"
	"fmt"

	"noctopo/internal/domain"
)

// Snapshot is the serialized persisted state of a graph
type Snapshot string

// Encode serializes the persisted elements of g
func Encode(g *domain.Graph) (Snapshot, error) {
	data, err := json.Marshal(g.Elements())
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return Snapshot(data), nil
}

// Restore replaces the contents of g with the snapshot
func (s Snapshot) Restore(g *domain.Graph) error {
	var defs []domain.ElementDefinition
	if err := json.Unmarshal([]byte(s), &defs); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	return g.Load(defs)
}

// Manager is a linear history with a cursor. Pushing after an undo drops
// the redo branch.
type Manager struct {
	snapshots []Snapshot
	cursor    int
	saved     int
}

// New creates an empty history
func New() *Manager {
	return &Manager{cursor: -1, saved: -1}
}

// Push records the current state of g
func (m *Manager) Push(g *domain.Graph) error {
	snap, err := Encode(g)
	if err != nil {
		return err
	}
	m.snapshots = append(m.snapshots[:m.cursor+1], snap)
	m.cursor++
	return nil
}

// Undo restores the previous snapshot into g. It reports false when there
// is nothing to undo.
func (m *Manager) Undo(g *domain.Graph) (bool, error) {
	if m.cursor <= 0 {
		return false, nil
	}
	if err := m.snapshots[m.cursor-1].Restore(g); err != nil {
		return false, err
	}
	m.cursor--
	return true, nil
}

// Redo restores the next snapshot into g. It reports false when there is
// nothing to redo.
func (m *Manager) Redo(g *domain.Graph) (bool, error) {
	if m.cursor >= len(m.snapshots)-1 {
		return false, nil
	}
	if err := m.snapshots[m.cursor+1].Restore(g); err != nil {
		return false, err
	}
	m.cursor++
	return true, nil
}

// Reset discards all history and records g as the only snapshot, which is
// also considered saved
func (m *Manager) Reset(g *domain.Graph) error {
	snap, err := Encode(g)
	if err != nil {
		return err
	}
	m.snapshots = []Snapshot{snap}
	m.cursor = 0
	m.saved = 0
	return nil
}

// MarkSaved records the current cursor as persisted
func (m *Manager) MarkSaved() {
	m.saved = m.cursor
}

// Dirty reports whether the state changed since the last save
func (m *Manager) Dirty() bool {
	return m.cursor != m.saved
}

// CanUndo reports whether Undo would change anything
func (m *Manager) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether Redo would change anything
func (m *Manager) CanRedo() bool {
	return m.cursor < len(m.snapshots)-1
}

// Position returns the cursor and the number of snapshots
func (m *Manager) Position() (cursor, length int) {
	return m.cursor, len(m.snapshots)
}

// State summarizes the history for the UI
type State struct {
	Cursor  int  `json:"cursor"`
	Length  int  `json:"length"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
	Dirty   bool `json:"dirty"`
}

// State returns the current summary
func (m *Manager) State() State {
	return State{
		Cursor:  m.cursor,
		Length:  len(m.snapshots),
		CanUndo: m.CanUndo(),
		CanRedo: m.CanRedo(),
		Dirty:   m.Dirty(),
	}
}
