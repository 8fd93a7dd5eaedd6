package fleet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"sustainabot/src/model"
)

// FileRecord is one line of the findings file
type FileRecord struct {
	RunID      string        `json:"run_id,omitempty"`
	RecordedAt time.Time     `json:"recorded_at"`
	Finding    model.Finding `json:"finding"`
}

// FileSink appends findings as JSON lines to a file shared by fleet bots
type FileSink struct {
	mu    sync.Mutex
	path  string
	runID string
}

// NewFileSink creates a sink appending to path, creating parent directories
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating findings directory: %w", err)
	}
	return &FileSink{path: path}, nil
}

// BeginBatch tags subsequent records with runID
func (s *FileSink) BeginBatch(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID = runID
}

// AddFinding appends one JSON line
func (s *FileSink) AddFinding(_ context.Context, f model.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(FileRecord{
		RunID:      s.runID,
		RecordedAt: time.Now().UTC(),
		Finding:    f,
	})
	if err != nil {
		return fmt.Errorf("marshaling finding: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening findings file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing findings file: %w", err)
	}
	return nil
}
