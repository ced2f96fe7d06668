// Package history keeps a bounded, linear undo/redo log of segment snapshots.
package history

import "github.com/mgpai22/subtrack/internal/subtitle"

const DefaultCapacity = 50

// Manager is a fixed-capacity ring buffer of snapshots with a cursor.
// Logical index i lives at slots[(head+i)%len(slots)].
type Manager struct {
	slots  [][]subtitle.Segment
	head   int
	length int
	cursor int
}

// New starts a history holding only initial. capacity <= 0 means DefaultCapacity.
func New(initial []subtitle.Segment, capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	m := &Manager{slots: make([][]subtitle.Segment, capacity)}
	m.Reset(initial)
	return m
}

// Reset drops every snapshot and starts over from initial.
func (m *Manager) Reset(initial []subtitle.Segment) {
	for i := range m.slots {
		m.slots[i] = nil
	}
	m.head = 0
	m.slots[0] = snapshot(initial)
	m.length = 1
	m.cursor = 0
}

// Commit discards the redo branch, appends s and moves the cursor onto it.
// When full, the oldest snapshot is evicted.
func (m *Manager) Commit(s []subtitle.Segment) {
	for i := m.cursor + 1; i < m.length; i++ {
		m.slots[m.slot(i)] = nil
	}
	m.length = m.cursor + 1

	if m.length == len(m.slots) {
		m.slots[m.head] = nil
		m.head = (m.head + 1) % len(m.slots)
		m.length--
		m.cursor--
	}

	m.slots[m.slot(m.length)] = snapshot(s)
	m.length++
	m.cursor = m.length - 1
}

// Undo steps the cursor back; it reports false at the oldest snapshot.
func (m *Manager) Undo() bool {
	if m.cursor == 0 {
		return false
	}
	m.cursor--
	return true
}

// Redo steps the cursor forward; it reports false at the newest snapshot.
func (m *Manager) Redo() bool {
	if m.cursor >= m.length-1 {
		return false
	}
	m.cursor++
	return true
}

// Current returns a copy of the snapshot under the cursor.
func (m *Manager) Current() []subtitle.Segment {
	return snapshot(m.slots[m.slot(m.cursor)])
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }

func (m *Manager) CanRedo() bool { return m.cursor < m.length-1 }

func (m *Manager) Len() int { return m.length }

func (m *Manager) Cursor() int { return m.cursor }

func (m *Manager) Capacity() int { return len(m.slots) }

func (m *Manager) slot(i int) int {
	return (m.head + i) % len(m.slots)
}

func snapshot(s []subtitle.Segment) []subtitle.Segment {
	out := subtitle.CloneSegments(s)
	if out == nil {
		out = []subtitle.Segment{}
	}
	return out
}
