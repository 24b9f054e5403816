package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"kevlar/internal/domain"
)

// Save writes the summary to the result file in summary.Workspace.
func (s *JSONStorage) Save(summary *domain.RecordSummary) error {
	if summary.Workspace == "" {
		return fmt.Errorf("summary for %s has no workspace", summary.Name)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := filepath.Join(summary.Workspace, s.fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads a summary from a result file, or from the result file inside a
// workspace directory.
func (s *JSONStorage) Load(path string) (*domain.RecordSummary, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, s.fileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var summary domain.RecordSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &summary, nil
}
