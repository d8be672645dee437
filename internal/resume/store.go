package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const recordFile = "resume-content.json"

// Record is the stored extraction of the most recently uploaded resume. The
// text is written once at ingestion and never mutated afterwards.
type Record struct {
	ExtractedText string    `json:"extracted_text"`
	FileName      string    `json:"file_name,omitempty"`
	PageCount     int       `json:"page_count"`
	ExtractedAt   time.Time `json:"extracted_at"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

var (
	// ErrNotFound reports that no resume has been uploaded yet.
	ErrNotFound = errors.New("resume record not found")
	// ErrCorrupted reports an unreadable or unparseable stored record.
	ErrCorrupted = errors.New("resume record corrupted")
)

// Store keeps a single resume record as a JSON file under dir.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the record's location on disk.
func (s *Store) Path() string {
	return filepath.Join(s.dir, recordFile)
}

// Save writes the record, replacing any previous one.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Load reads the current record. A missing file is ErrNotFound; an unreadable
// or unparseable one is ErrCorrupted.
func (s *Store) Load(ctx context.Context) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return rec, nil
}
