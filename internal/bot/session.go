package bot

import "sync"

// sessionState is a per-user conversational state.
type sessionState int

const (
	stateIdle sessionState = iota
	// stateAwaitFavoriteTitle means /remove_favorite was issued and the
	// next text message names the favorite to delete.
	stateAwaitFavoriteTitle
)

// sessionStore keeps per-user conversational state for multi-step command
// flows. Safe for concurrent use.
type sessionStore struct {
	mu     sync.Mutex
	states map[int64]sessionState
}

func newSessionStore() *sessionStore {
	return &sessionStore{states: make(map[int64]sessionState)}
}

func (s *sessionStore) get(userID int64) sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[userID]
}

func (s *sessionStore) set(userID int64, state sessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == stateIdle {
		delete(s.states, userID)
		return
	}
	s.states[userID] = state
}
