package score

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHistoryAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	h := NewHistory(path)

	records, err := h.Load()
	if err != nil || records != nil {
		t.Fatalf("Load() of missing file = %v, %v; want nil, nil", records, err)
	}

	at := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	for i, sc := range []int{120, 300, 50} {
		if err := h.Record(NewRecord(at.Add(time.Duration(i)*time.Minute), sc, i+1, 300)); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	records, err = h.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Load() returned %d records, want 3", len(records))
	}
	if records[0].FinishedAt != "2026-10-16T12:00:00Z" {
		t.Errorf("FinishedAt = %q", records[0].FinishedAt)
	}
	if records[1].Score != 300 || records[1].Level != 2 {
		t.Errorf("records[1] = %+v", records[1])
	}
}

func TestReadRecordsEmpty(t *testing.T) {
	records, err := readRecords(strings.NewReader(""))
	if err != nil {
		t.Fatalf("readRecords() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("readRecords() = %v, want none", records)
	}
}

func TestTop(t *testing.T) {
	records := []Record{
		{Score: 10, Level: 1},
		{Score: 40, Level: 2},
		{Score: 40, Level: 3},
		{Score: 20, Level: 4},
	}

	top := Top(records, 3)
	if len(top) != 3 {
		t.Fatalf("Top() returned %d records, want 3", len(top))
	}
	// Stable: the earlier 40 stays first
	if top[0].Level != 2 || top[1].Level != 3 || top[2].Level != 4 {
		t.Errorf("Top() = %+v", top)
	}
	if records[0].Score != 10 {
		t.Error("Top() must not reorder its input")
	}
	if got := Top(records, 10); len(got) != 4 {
		t.Errorf("Top(10) returned %d records, want 4", len(got))
	}
}
