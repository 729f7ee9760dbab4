package token

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists the credential in a file so it survives across CLI
// invocations, the way browser storage survives reloads. Notification is
// process-local only; use RedisStore when changes must cross processes.
type FileStore struct {
	path string

	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewFileStore creates a store backed by the given file path. The parent
// directory is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, subs: make(map[int]func())}
}

// DefaultTokenPath is where the CLI keeps its credential.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "triply", Key), nil
}

// Get reads the credential from disk. Any read failure reads as logged out.
func (s *FileStore) Get() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	tok := strings.TrimSpace(string(data))
	if tok == "" {
		return "", false
	}
	return tok, true
}

// Set writes the credential with owner-only permissions and notifies.
func (s *FileStore) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Clear removes the credential file and notifies. Missing files are fine.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	s.notify()
	return nil
}

// Subscribe registers fn for change notifications until cancel is called.
func (s *FileStore) Subscribe(fn func()) func() {
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

func (s *FileStore) notify() {
	s.mu.Lock()
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
