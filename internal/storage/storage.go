package storage

import (
	"kevlar/internal/domain"
)

// Storage persists and loads run summaries (e.g. for the show and view commands).
type Storage interface {
	Save(summary *domain.RecordSummary) error
	// Load reads a summary back. The key is storage specific: a workspace or
	// result file for JSONStorage, a run id for MySQLStorage.
	Load(key string) (*domain.RecordSummary, error)
}

// JSONStorage stores a run summary as a JSON file inside the run's workspace.
type JSONStorage struct {
	fileName string
}

// NewJSONStorage returns a Storage that reads/writes fileName inside each workspace.
func NewJSONStorage(fileName string) *JSONStorage {
	return &JSONStorage{fileName: fileName}
}
