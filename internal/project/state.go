package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const maxRecentFiles = 10

// AppState is remembered between runs.
type AppState struct {
	RecentFiles []string `json:"recent_files"`
	LastDir     string   `json:"last_dir,omitempty"`
}

// DefaultStatePath returns the default path for the state file.
func DefaultStatePath() string {
	return filepath.Join(DefaultConfigDir(), "state.json")
}

// AddRecent moves path to the front of the recent list.
func (s *AppState) AddRecent(path string) {
	recent := []string{path}
	for _, p := range s.RecentFiles {
		if p != path && len(recent) < maxRecentFiles {
			recent = append(recent, p)
		}
	}
	s.RecentFiles = recent
	s.LastDir = filepath.Dir(path)
}

// SaveState persists an AppState to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveState(path string, state AppState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadState reads an AppState from the given path.
// If the file does not exist, it returns an empty state with no error.
func LoadState(path string) (AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return AppState{RecentFiles: []string{}}, nil
		}
		return AppState{}, err
	}
	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return AppState{}, err
	}
	if state.RecentFiles == nil {
		state.RecentFiles = []string{}
	}
	return state, nil
}
