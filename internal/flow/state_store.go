// Package flow implements the conversation engine and its state store.
package flow

import (
	"log/slog"
	"sync"

	"github.com/pobut/PobutBot/internal/models"
)

// StateStore holds the single live ConversationState of the admin user, in
// memory, for the process lifetime. An in-progress flow is abandoned on
// restart. Safe under concurrent access; the engine additionally serializes
// its whole read-transition-write sequence under its own mutex.
type StateStore struct {
	mu    sync.Mutex
	state models.ConversationState
}

// NewStateStore creates a StateStore with the empty state.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Get returns the current state, or the empty state if none was set.
func (s *StateStore) Get() models.ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Copy scratch so callers cannot mutate the stored map.
	state := s.state
	if state.Scratch != nil {
		scratch := make(map[models.DataKey]string, len(state.Scratch))
		for k, v := range state.Scratch {
			scratch[k] = v
		}
		state.Scratch = scratch
	}
	return state
}

// Set replaces the current state.
func (s *StateStore) Set(state models.ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	slog.Debug("StateStore set", "flow", state.Flow, "step", state.Step)
}

// Clear resets to the empty state.
func (s *StateStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.ConversationState{}
	slog.Debug("StateStore cleared")
}
