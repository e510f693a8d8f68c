package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/abdidvp/expectfix/internal/domain"
)

const historyFile = ".expectfix/history/runs.json"

// FileHistory implements domain.RunHistory using JSON file storage.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return errors.Errorf("creating history dir: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(fp, data, 0644); err != nil {
		return errors.Errorf("writing history: %w", err)
	}
	return nil
}

func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Errorf("reading history: %w", err)
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Errorf("decoding history: %w", err)
	}

	return entries, nil
}
