package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Journal records order events as an append-only audit trail.
type Journal interface {
	Record(event string, data map[string]any) error
}

type NopJournal struct{}

func NewNopJournal() *NopJournal { return &NopJournal{} }

func (j *NopJournal) Record(_ string, _ map[string]any) error { return nil }

// FileJournal writes one JSON object per line.
type FileJournal struct {
	mu  sync.Mutex
	f   *os.File
	now func() time.Time
}

func NewFileJournal(path string) (*FileJournal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileJournal{f: f, now: time.Now}, nil
}

func (j *FileJournal) Record(event string, data map[string]any) error {
	line, err := json.Marshal(map[string]any{
		"timestamp": j.now().UTC().Format(time.RFC3339),
		"event":     event,
		"data":      data,
	})
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

func (j *FileJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.f.Close()
}

var _ Journal = (*NopJournal)(nil)
var _ Journal = (*FileJournal)(nil)
