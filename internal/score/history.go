package score

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
)

// Record describes one finished game.
type Record struct {
	FinishedAt string `csv:"finished_at"` // RFC 3339
	Score      int    `csv:"score"`
	Level      int    `csv:"level"`
	HighScore  int    `csv:"high_score"`
}

// NewRecord creates a record stamped with t.
func NewRecord(t time.Time, score, level, highScore int) Record {
	return Record{
		FinishedAt: t.UTC().Format(time.RFC3339),
		Score:      score,
		Level:      level,
		HighScore:  highScore,
	}
}

// Recorder receives finished games.
type Recorder interface {
	Record(r Record) error
}

// History appends finished games to a CSV file.
type History struct {
	path string
	mu   sync.Mutex
}

// NewHistory creates a history log at path. The file is created on first write.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Record appends r, writing the CSV header if the file is new or empty.
func (h *History) Record(r Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat history: %w", err)
	}

	records := []Record{r}
	if info.Size() == 0 {
		err = gocsv.Marshal(records, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(records, f)
	}
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Load reads every record in the history file. A missing file yields no records.
func (h *History) Load() ([]Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.Open(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	return readRecords(f)
}

func readRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	return records, nil
}

// Top returns up to n records with the highest scores, best first.
// Ties keep file order.
func Top(records []Record, n int) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

var _ Recorder = (*History)(nil)
