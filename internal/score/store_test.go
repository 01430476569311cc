package score

import (
	"os"
	"path/filepath"
	"testing"
)

// TestFileStoreHighScore covers the 100 → 150 / 100 → 80 scenarios.
func TestFileStoreHighScore(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		session int
		want    int
	}{
		{"new best", 100, 150, 150},
		{"below best", 100, 80, 100},
		{"equal to best", 100, 100, 100},
		{"first game", 0, 30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "high_score.txt")
			s := NewFileStore(path)
			if tt.initial > 0 {
				if err := s.Save(tt.initial); err != nil {
					t.Fatalf("Save(%d) error = %v", tt.initial, err)
				}
			}

			if err := s.Save(tt.session); err != nil {
				t.Fatalf("Save(%d) error = %v", tt.session, err)
			}

			// A fresh store sees the persisted value
			got, err := NewFileStore(path).Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "high_score.txt"))
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != 0 {
		t.Errorf("Load() = %d, want 0", got)
	}

	// Save creates the missing directory
	if err := s.Save(10); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got, _ := s.Load(); got != 10 {
		t.Errorf("Load() after Save = %d, want 10", got)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_score.txt")
	if err := os.WriteFile(path, []byte("lots\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)
	if _, err := s.Load(); err == nil {
		t.Error("Load() of corrupt file error = nil, want error")
	}

	// Saving repairs the file
	if err := s.Save(5); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got, err := s.Load(); err != nil || got != 5 {
		t.Errorf("Load() = %d, %v; want 5, nil", got, err)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore(100)
	_ = m.Save(80)
	if got, _ := m.Load(); got != 100 {
		t.Errorf("Load() = %d, want 100", got)
	}
	_ = m.Save(150)
	if got, _ := m.Load(); got != 150 {
		t.Errorf("Load() = %d, want 150", got)
	}
}
