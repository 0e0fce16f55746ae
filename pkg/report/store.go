package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// JSONStore implements Store using a single JSON file.
type JSONStore struct {
	path    string
	mu      sync.RWMutex
	reports map[string]SessionReport
}

// storeData is the JSON structure of the store file.
type storeData struct {
	Version   int             `json:"version"`
	UpdatedAt string          `json:"updated_at"`
	Reports   []SessionReport `json:"reports"`
}

const storeVersion = 1

// NewJSONStore opens or creates a store at the given path. The parent
// directory is created if needed; an existing file is loaded.
func NewJSONStore(path string) (*JSONStore, error) {
	store := &JSONStore{
		path:    path,
		reports: make(map[string]SessionReport),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("report: create directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := store.load(); err != nil {
			return nil, fmt.Errorf("report: load store: %w", err)
		}
	}

	return store, nil
}

// load reads the store file into memory.
func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var stored storeData
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}

	s.reports = make(map[string]SessionReport, len(stored.Reports))
	for _, rep := range stored.Reports {
		s.reports[rep.ID] = rep
	}
	return nil
}

// save writes the store to disk via a temp file and rename.
func (s *JSONStore) save() error {
	reports := make([]SessionReport, 0, len(s.reports))
	for _, rep := range s.reports {
		reports = append(reports, rep)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].EndedAt.After(reports[j].EndedAt)
	})

	stored := storeData{
		Version:   storeVersion,
		UpdatedAt: time.Now().Format(time.RFC3339),
		Reports:   reports,
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("report: write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("report: rename temp file: %w", err)
	}
	return nil
}

// Save creates or replaces the report for its session id.
func (s *JSONStore) Save(rep SessionReport) error {
	if rep.ID == "" {
		return ErrNoID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[rep.ID] = rep
	return s.save()
}

// Get retrieves a report by session id.
func (s *JSONStore) Get(id string) (SessionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rep, ok := s.reports[id]
	if !ok {
		return SessionReport{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rep, nil
}

// List returns all reports, newest first by end time.
func (s *JSONStore) List() ([]SessionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]SessionReport, 0, len(s.reports))
	for _, rep := range s.reports {
		reports = append(reports, rep)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].EndedAt.After(reports[j].EndedAt)
	})
	return reports, nil
}

// Delete removes a report by session id.
func (s *JSONStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.reports, id)
	return s.save()
}

// Count returns the number of stored reports.
func (s *JSONStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// Path returns the file path of the store.
func (s *JSONStore) Path() string {
	return s.path
}
