package logic

import (
	"path/filepath"
	"sync"

	"mazereplay/internal/replay"
)

// MemoryPaneStore is an in-memory implementation of PaneStore.
// Panes keep the order they were added in; labels are unique.
type MemoryPaneStore struct {
	mu    sync.RWMutex
	panes []*replay.Pane
}

// NewMemoryPaneStore creates a new memory-based pane store
func NewMemoryPaneStore() *MemoryPaneStore {
	return &MemoryPaneStore{}
}

func (s *MemoryPaneStore) indexOf(label string) int {
	for i, p := range s.panes {
		if p.Label == label {
			return i
		}
	}
	return -1
}

func (s *MemoryPaneStore) GetPane(label string) *replay.Pane {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(label); i >= 0 {
		return s.panes[i]
	}
	return nil
}

func (s *MemoryPaneStore) GetAllPanes() []*replay.Pane {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]*replay.Pane, len(s.panes))
	copy(result, s.panes)
	return result
}

// AddPane appends a pane; a pane with the same label is replaced in place
func (s *MemoryPaneStore) AddPane(pane *replay.Pane) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(pane.Label); i >= 0 {
		s.panes[i] = pane
		return
	}
	s.panes = append(s.panes, pane)
}

func (s *MemoryPaneStore) RemovePane(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(label); i >= 0 {
		s.panes = append(s.panes[:i], s.panes[i+1:]...)
	}
}

// PanesForTrace returns the panes replaying the given file
func (s *MemoryPaneStore) PanesForTrace(path string) []*replay.Pane {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := filepath.Clean(path)
	var result []*replay.Pane
	for _, p := range s.panes {
		if p.TracePath != "" && filepath.Clean(p.TracePath) == want {
			result = append(result, p)
		}
	}
	return result
}

func (s *MemoryPaneStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.panes)
}
