package store

import "sync"

// Scope is a string key/value store with a defined lifetime. The client
// uses two scopes: a durable one that survives restarts and a session
// one that lives only for the current process, used to tell a restart
// of the engine apart from a fresh run.
type Scope interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Durable storage keys. Last-writer-wins, no multi-key transactions.
const (
	KeyAPIBase       = "api_base"
	KeyView          = "view"
	KeyStudyEnded    = "study_ended"
	KeyDocumentName  = "document_name"
	KeyCompletedDays = "completed_days"
	KeyScores        = "scores"
	KeyResults       = "results"
	KeyDeckCards     = "deck_cards"
	KeyDeckIndex     = "deck_index"
	KeyDeckFlipped   = "deck_flipped"
)

// KeySessionID marks an initialized session. It lives in the session
// scope only.
const KeySessionID = "session_id"

// StudyKeys lists every durable key owned by a study, in the order they
// are cleared on a new session or a delete-study action.
var StudyKeys = []string{
	KeyView,
	KeyStudyEnded,
	KeyDocumentName,
	KeyCompletedDays,
	KeyScores,
	KeyResults,
	KeyDeckCards,
	KeyDeckIndex,
	KeyDeckFlipped,
}

// MemoryScope is a process-lifetime Scope backed by a map. It is the
// session-scoped half of the store: contents vanish with the process.
type MemoryScope struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryScope creates an empty in-memory scope.
func NewMemoryScope() *MemoryScope {
	return &MemoryScope{m: make(map[string]string)}
}

func (s *MemoryScope) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *MemoryScope) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemoryScope) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
