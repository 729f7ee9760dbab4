package token

import "sync"

// MemoryStore keeps the credential in process memory. It is the tab-local
// store: changes are only observable within the owning process.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	present bool
	nextID  int
	subs    map[int]func()
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[int]func())}
}

// Get returns the current credential, or false when none is set.
func (s *MemoryStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.present
}

// Set stores the credential and synchronously notifies subscribers.
func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	s.token = token
	s.present = true
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return nil
}

// Clear removes the credential and synchronously notifies subscribers.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.present = false
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return nil
}

// Subscribe registers fn for change notifications until cancel is called.
func (s *MemoryStore) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// snapshot copies the subscriber list so notification runs outside the lock.
// Callers must hold mu.
func (s *MemoryStore) snapshot() []func() {
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}
