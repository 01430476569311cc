// Package score persists the high score and an optional log of finished games.
package score

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Store loads and saves the best score.
// Save never lowers the stored value.
type Store interface {
	Load() (int, error)
	Save(highScore int) error
}

// FileStore keeps the high score as a single decimal number in a text file.
// Safe for concurrent use by several game sessions in one process.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored high score. A missing file yields 0.
func (s *FileStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading high score: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parsing high score %q: %w", text, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative high score %d", v)
	}
	return v, nil
}

// Save writes highScore if it beats the stored value. The file is replaced
// atomically so a crash never leaves a truncated number behind.
func (s *FileStore) Save(highScore int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A corrupt file is overwritten
	current, _ := s.read()
	if highScore <= current {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating high score directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("creating high score temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.Itoa(highScore) + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("writing high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing high score: %w", err)
	}
	return nil
}

// MemoryStore keeps the high score in memory only.
type MemoryStore struct {
	mu   sync.Mutex
	best int
}

// NewMemoryStore creates an in-memory store seeded with initial.
func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{best: initial}
}

// Load returns the stored high score.
func (m *MemoryStore) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// Save keeps highScore if it beats the stored value.
func (m *MemoryStore) Save(highScore int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if highScore > m.best {
		m.best = highScore
	}
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
